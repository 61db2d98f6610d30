/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package solver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaiveNoConflict(t *testing.T) {
	p := NewOfflineDependencyProvider[string, vn]()
	p.AddDependencies("root", 1, deps(Dep("foo", Between[vn](1, 3))))
	p.AddDependencies("foo", 1, deps(Dep("bar", Between[vn](1, 3))))
	p.AddDependencies("bar", 1, nil)
	p.AddDependencies("bar", 2, nil)

	solution, err := NaiveResolve(p, "root", 1)
	require.NoError(t, err)
	assert.Equal(t, Solution[string, vn]{"root": 1, "foo": 1, "bar": 2}, solution)
}

func TestNaiveBacktracking(t *testing.T) {
	p := NewOfflineDependencyProvider[string, vn]()
	p.AddDependencies("root", 1, deps(Dep("foo", HigherThan[vn](1))))
	p.AddDependencies("foo", 2, deps(Dep("bar", Between[vn](1, 2))))
	p.AddDependencies("foo", 1, nil)
	p.AddDependencies("bar", 1, deps(Dep("foo", Between[vn](1, 2))))

	solution, err := NaiveResolve(p, "root", 1)
	require.NoError(t, err)
	assert.Equal(t, Solution[string, vn]{"root": 1, "foo": 1}, solution)
}

func TestNaiveUnsatisfiable(t *testing.T) {
	p := NewOfflineDependencyProvider[string, vn]()
	p.AddDependencies("root", 1, deps(
		Dep("foo", Full[vn]()),
		Dep("baz", Full[vn]()),
	))
	for i := 1; i <= 5; i++ {
		p.AddDependencies("foo", vn(i), deps(Dep("bar", Full[vn]())))
	}
	p.AddDependencies("baz", 1, nil)

	solution, err := NaiveResolve(p, "root", 1)
	assert.Nil(t, solution)
	var noSolution *NoSolutionError
	require.ErrorAs(t, err, &noSolution)
}

func TestNaiveDependencyCycle(t *testing.T) {
	p := NewOfflineDependencyProvider[string, vn]()
	p.AddDependencies("root", 1, deps(Dep("a", Full[vn]())))
	p.AddDependencies("a", 1, deps(Dep("b", Full[vn]())))
	p.AddDependencies("b", 1, deps(Dep("a", Full[vn]())))

	solution, err := NaiveResolve(p, "root", 1)
	require.NoError(t, err)
	assert.Equal(t, Solution[string, vn]{"root": 1, "a": 1, "b": 1}, solution)
}

// buildRandomish constructs a deterministic pseudo-random instance with a
// guaranteed solvable core.
func buildRandomish(pkgs, versions int) *OfflineDependencyProvider[string, vn] {
	p := NewOfflineDependencyProvider[string, vn]()
	p.AddDependencies("root", 1, deps(Dep("pkg0", Full[vn]())))
	seed := uint32(0x9e3779b9)
	next := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>16) % n
	}
	for i := 0; i < pkgs; i++ {
		for v := 1; v <= versions; v++ {
			var d []Dependency[string, vn]
			if i+1 < pkgs {
				target := i + 1 + next(pkgs-i-1)
				lo := 1 + next(versions)
				d = deps(Dep(fmt.Sprintf("pkg%d", target), Between(vn(lo), vn(versions+1))))
			}
			p.AddDependencies(fmt.Sprintf("pkg%d", i), vn(v), d)
		}
	}
	return p
}

func TestResolversAgreeOnValidity(t *testing.T) {
	// Both resolvers must accept the same instances; each accepted
	// solution must satisfy every declared dependency it covers.
	p := buildRandomish(12, 4)

	cdcl, cdclErr := resolveTest(p, "root", 1)
	naive, naiveErr := NaiveResolve(p, "root", 1)
	require.Equal(t, cdclErr == nil, naiveErr == nil,
		"resolvers disagree on solvability: cdcl=%v naive=%v", cdclErr, naiveErr)
	if cdclErr != nil {
		return
	}

	for name, solution := range map[string]Solution[string, vn]{"cdcl": cdcl, "naive": naive} {
		assert.Equal(t, vn(1), solution["root"], "%s misses the root", name)
		for pkg, version := range solution {
			declared, ok := p.Dependencies(pkg, version)
			require.True(t, ok, "%s: %s %d unknown", name, pkg, version)
			for _, dep := range declared {
				chosen, decided := solution[dep.Pkg]
				assert.True(t, decided, "%s: %s %d needs %s", name, pkg, version, dep.Pkg)
				assert.True(t, dep.Versions.Contains(chosen),
					"%s: %s %d needs %s in %s, got %d", name, pkg, version, dep.Pkg, dep.Versions, chosen)
			}
		}
	}
}

func TestResolversAgreeOnUniqueSolution(t *testing.T) {
	// A chain of singleton constraints has exactly one solution, so the
	// two resolvers must return identical mappings.
	p := NewOfflineDependencyProvider[string, vn]()
	p.AddDependencies("root", 1, deps(Dep("a", Singleton[vn](2))))
	p.AddDependencies("a", 1, nil)
	p.AddDependencies("a", 2, deps(Dep("b", Singleton[vn](1))))
	p.AddDependencies("b", 1, deps(Dep("c", Singleton[vn](3))))
	p.AddDependencies("b", 2, nil)
	p.AddDependencies("c", 3, nil)
	p.AddDependencies("c", 4, nil)

	cdcl, err := resolveTest(p, "root", 1)
	require.NoError(t, err)
	naive, err := NaiveResolve(p, "root", 1)
	require.NoError(t, err)
	assert.Equal(t, cdcl, naive)
}
