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

	"github.com/Masterminds/log-go"
)

// Solution maps every package that had to be decided to its chosen
// version. The root package is always present.
type Solution[P comparable, V any] map[P]V

// NoSolutionError reports that resolution derived a terminal
// incompatibility: no assignment of versions can satisfy the constraints.
type NoSolutionError struct {
	// Explanation is the human-readable terminal incompatibility.
	Explanation string
}

func (e *NoSolutionError) Error() string {
	return "version solving failed: " + e.Explanation
}

// Resolve computes a version for the root package and every package it
// transitively depends on, or returns *NoSolutionError. Provider errors
// never escape: a version without dependencies and an exhausted range are
// both absorbed as no-versions clauses and resolution continues.
func Resolve[P comparable, V Ordered[V], M any, Pr Ordered[Pr]](provider DependencyProvider[P, V, M, Pr], rootPkg P, rootVersion V) (Solution[P, V], error) {
	s := newState[P, V, M, Pr](rootPkg, rootVersion)
	tracker := make(map[pkgID]*ResolutionStats)
	statsFor := func(p pkgID) *ResolutionStats {
		st, ok := tracker[p]
		if !ok {
			st = &ResolutionStats{}
			tracker[p] = st
		}
		return st
	}
	// Versions already expanded per package; re-reaching one after a
	// backjump decides it without re-adding its dependency clauses.
	expanded := make(map[pkgID][]V)
	isExpanded := func(p pkgID, v V) bool {
		for _, seen := range expanded[p] {
			if seen.Compare(v) == 0 {
				return true
			}
		}
		return false
	}

	next := s.rootPackage
	for {
		causes, err := s.unitPropagation(next)
		for _, c := range causes {
			statsFor(c.pkg).UnitPropagationAffected++
			s.store[c.incomp].terms.each(func(p pkgID, _ Term[V]) {
				if p != c.pkg {
					statsFor(p).UnitPropagationCulprit++
				}
			})
		}
		if err != nil {
			return nil, err
		}

		picked, allowed, ok := s.partial.pickHighestPriorityPkg(func(p pkgID, r Ranges[V]) Pr {
			return provider.Prioritize(s.packages.pkg(p), r, *statsFor(p))
		})
		if !ok {
			solution := make(Solution[P, V])
			for _, d := range s.partial.extractSolution() {
				solution[s.packages.pkg(d.pkg)] = d.version
			}
			return solution, nil
		}
		next = picked

		version, ok := provider.ChooseVersion(s.packages.pkg(next), allowed)
		if !ok {
			// Range exhausted; learn it and move on.
			s.addIncompatibility(noVersions[P, V, M](next, Positive(allowed)))
			continue
		}
		if !allowed.Contains(version) {
			panic(fmt.Sprintf("solver: provider chose version %v outside the allowed range %s", version, allowed))
		}

		if isExpanded(next, version) {
			s.partial.addDecision(next, version)
			continue
		}
		expanded[next] = append(expanded[next], version)

		deps := provider.GetDependencies(s.packages.pkg(next), version)
		if !deps.Available {
			log.Debugf("solver: %v %v unavailable, excluding it", s.packages.pkg(next), version)
			s.addIncompatibility(noVersions[P, V, M](next, Exact(version)))
			continue
		}

		if conflictID, conflicted := s.addPackageVersionDependencies(next, version, deps.Constraints); conflicted {
			statsFor(next).DependenciesAffected++
			s.store[conflictID].terms.each(func(p pkgID, _ Term[V]) {
				if p != next {
					statsFor(p).DependenciesCulprit++
				}
			})
		}
	}
}
