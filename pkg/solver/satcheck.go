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

	"github.com/crillab/gophersat/maxsat"
)

// CrossCheck validates a solution independently of the resolver that
// produced it. The whole dependency universe of the provider is encoded as
// a pseudo-boolean problem with one variable per (package, version), the
// solution is pinned with hard clauses, and the SAT solver confirms that
// the pinned assignment extends to a consistent world:
//
//   - at most one version of each package may hold,
//   - holding a version implies holding some satisfying version of each of
//     its dependencies.
//
// A nil error means the solution is consistent with the universe.
func CrossCheck[P comparable, V Ordered[V]](provider *OfflineDependencyProvider[P, V], solution Solution[P, V]) error {
	fingerprint := func(pkg P, version V) string {
		return fmt.Sprintf("%v@%v", pkg, version)
	}

	var constrs []maxsat.Constr
	for _, pkg := range provider.Packages() {
		versions, _ := provider.Versions(pkg)

		// At most one version of pkg: at least len-1 of the negations.
		if len(versions) > 1 {
			lits := make([]maxsat.Lit, 0, len(versions))
			coeffs := make([]int, 0, len(versions))
			for _, v := range versions {
				lits = append(lits, maxsat.Not(fingerprint(pkg, v)))
				coeffs = append(coeffs, 1)
			}
			constrs = append(constrs, maxsat.HardPBConstr(lits, coeffs, len(lits)-1))
		}

		// Holding pkg@v implies holding a version of every dependency.
		for _, v := range versions {
			deps, _ := provider.Dependencies(pkg, v)
			for _, dep := range deps {
				lits := []maxsat.Lit{maxsat.Not(fingerprint(pkg, v))}
				depVersions, _ := provider.Versions(dep.Pkg)
				for _, w := range depVersions {
					if dep.Versions.Contains(w) {
						lits = append(lits, maxsat.Var(fingerprint(dep.Pkg, w)))
					}
				}
				constrs = append(constrs, maxsat.HardClause(lits...))
			}
		}
	}

	// Pin the solution, iterating the provider's order for determinism.
	pinned := 0
	for _, pkg := range provider.Packages() {
		version, ok := solution[pkg]
		if !ok {
			continue
		}
		if versions, _ := provider.Versions(pkg); !containsVersion(versions, version) {
			return fmt.Errorf("solution assigns %v to unknown version %v", pkg, version)
		}
		constrs = append(constrs, maxsat.HardClause(maxsat.Var(fingerprint(pkg, version))))
		pinned++
	}
	if pinned != len(solution) {
		return fmt.Errorf("solution mentions %d package(s) unknown to the provider", len(solution)-pinned)
	}

	result := maxsat.New(constrs...).Solver().Optimal(nil, nil)
	if result.Status.String() != "SAT" || result.Weight != 0 {
		return fmt.Errorf("solution contradicts the dependency universe")
	}
	return nil
}

func containsVersion[V Ordered[V]](versions []V, version V) bool {
	for _, v := range versions {
		if v.Compare(version) == 0 {
			return true
		}
	}
	return false
}
