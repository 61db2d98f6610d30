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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineProviderBasics(t *testing.T) {
	is := assert.New(t)

	p := NewOfflineDependencyProvider[string, vn]()
	p.AddDependencies("foo", 2, nil)
	p.AddDependencies("foo", 1, deps(Dep("bar", Between[vn](1, 3))))
	p.AddDependencies("bar", 1, nil)

	is.Equal([]string{"foo", "bar"}, p.Packages())

	vs, ok := p.Versions("foo")
	is.True(ok)
	is.Equal([]vn{1, 2}, vs, "versions must come back ascending")

	_, ok = p.Versions("missing")
	is.False(ok)

	d, ok := p.Dependencies("foo", 1)
	is.True(ok)
	require.Len(t, d, 1)
	is.Equal("bar", d[0].Pkg)

	// Redeclaring a version replaces its dependency list.
	p.AddDependencies("foo", 1, nil)
	d, ok = p.Dependencies("foo", 1)
	is.True(ok)
	is.Nil(d)
}

func TestOfflineProviderChooseVersion(t *testing.T) {
	is := assert.New(t)

	p := NewOfflineDependencyProvider[string, vn]()
	for _, v := range []vn{1, 3, 5, 7} {
		p.AddDependencies("foo", v, nil)
	}

	v, ok := p.ChooseVersion("foo", Full[vn]())
	is.True(ok)
	is.Equal(vn(7), v, "highest version wins")

	v, ok = p.ChooseVersion("foo", Between[vn](2, 6))
	is.True(ok)
	is.Equal(vn(5), v)

	_, ok = p.ChooseVersion("foo", Between[vn](8, 10))
	is.False(ok)

	_, ok = p.ChooseVersion("missing", Full[vn]())
	is.False(ok)
}

func TestOfflineProviderGetDependencies(t *testing.T) {
	is := assert.New(t)

	p := NewOfflineDependencyProvider[string, vn]()
	p.AddDependencies("foo", 1, deps(Dep("bar", Singleton[vn](1))))

	d := p.GetDependencies("foo", 1)
	is.True(d.Available)
	require.Len(t, d.Constraints, 1)
	is.Equal("bar", d.Constraints[0].Pkg)

	is.False(p.GetDependencies("foo", 9).Available)
	is.False(p.GetDependencies("missing", 1).Available)
}

func TestOfflineProviderPrioritize(t *testing.T) {
	is := assert.New(t)

	p := NewOfflineDependencyProvider[string, vn]()
	for _, v := range []vn{1, 2, 3} {
		p.AddDependencies("many", v, nil)
	}
	p.AddDependencies("single", 1, nil)

	quiet := ResolutionStats{}
	noisy := ResolutionStats{UnitPropagationAffected: 2, DependenciesCulprit: 1}
	is.Equal(uint64(3), noisy.ConflictCount())

	many := p.Prioritize("many", Full[vn](), quiet)
	single := p.Prioritize("single", Full[vn](), quiet)
	is.Positive(single.Compare(many), "fewer candidates ranks higher")

	loud := p.Prioritize("many", Full[vn](), noisy)
	is.Positive(loud.Compare(single), "conflicts trump scarcity")

	// No candidate at all outranks everything.
	hopeless := p.Prioritize("many", Between[vn](10, 20), quiet)
	is.Positive(hopeless.Compare(loud))
	is.Zero(hopeless.Compare(p.Prioritize("missing", Full[vn](), quiet)))
}
