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
	"github.com/Masterminds/log-go"
)

// pkgPair keys the sibling-merge index by (dependent, dependee).
type pkgPair struct {
	p1, p2 pkgID
}

// satisfierCause records, for conflict statistics, which incompatibility
// forced a derivation on which package during propagation.
type satisfierCause struct {
	pkg    pkgID
	incomp incompID
}

// state is the complete CDCL solver state for one resolution.
type state[P comparable, V Ordered[V], M any, Pr Ordered[Pr]] struct {
	rootPackage pkgID
	rootVersion V

	// incompatibilities indexes, per package, every non-retracted clause
	// mentioning it.
	incompatibilities map[pkgID][]incompID
	// contradicted remembers clauses that cannot fire again until the
	// solver backtracks below the recorded level. A clause observed
	// contradicted at several levels keeps the smallest one.
	contradicted map[incompID]decisionLevel
	// mergedDependencies groups dependency clauses by package pair for
	// sibling merging.
	mergedDependencies map[pkgPair][]incompID

	partial  partialSolution[P, V, M, Pr]
	store    []incompatibility[P, V, M]
	packages *packageStore[P]

	buffer []pkgID
}

func newState[P comparable, V Ordered[V], M any, Pr Ordered[Pr]](rootPkg P, rootVersion V) *state[P, V, M, Pr] {
	s := &state[P, V, M, Pr]{
		rootVersion:        rootVersion,
		incompatibilities:  make(map[pkgID][]incompID),
		contradicted:       make(map[incompID]decisionLevel),
		mergedDependencies: make(map[pkgPair][]incompID),
		partial:            newPartialSolution[P, V, M, Pr](),
		packages:           newPackageStore[P](),
	}
	s.rootPackage = s.packages.alloc(rootPkg)
	id := s.alloc(notRoot[P, V, M](s.rootPackage, rootVersion))
	s.incompatibilities[s.rootPackage] = []incompID{id}
	return s
}

func (s *state[P, V, M, Pr]) alloc(inc incompatibility[P, V, M]) incompID {
	s.store = append(s.store, inc)
	return incompID(len(s.store) - 1)
}

// markContradicted records the level, keeping the smallest seen.
func (s *state[P, V, M, Pr]) markContradicted(id incompID) {
	if prev, ok := s.contradicted[id]; ok && prev <= s.partial.currentDecisionLevel {
		return
	}
	s.contradicted[id] = s.partial.currentDecisionLevel
}

// addIncompatibility stores a new clause and indexes it, merging with
// sibling dependency clauses when possible.
func (s *state[P, V, M, Pr]) addIncompatibility(inc incompatibility[P, V, M]) {
	s.mergeIncompatibility(s.alloc(inc))
}

// mergeIncompatibility indexes id under every package it mentions. A
// dependency clause is first merged with any sibling sharing the same
// package pair and dependee term: the merged clause gets a fresh id, and
// the superseded sibling disappears from the per-package indices.
func (s *state[P, V, M, Pr]) mergeIncompatibility(id incompID) {
	if p1, p2, ok := s.store[id].asDependency(); ok {
		pair := pkgPair{p1, p2}
		siblings := s.mergedDependencies[pair]
		mergedAny := false
		for i := range siblings {
			past := siblings[i]
			merged, ok := s.store[id].mergeDependents(&s.store[past])
			if !ok {
				continue
			}
			newID := s.alloc(merged)
			s.store[newID].terms.each(func(pkg pkgID, _ Term[V]) {
				list := s.incompatibilities[pkg]
				kept := list[:0]
				for _, other := range list {
					if other != past {
						kept = append(kept, other)
					}
				}
				s.incompatibilities[pkg] = kept
			})
			siblings[i] = newID
			id = newID
			mergedAny = true
		}
		if !mergedAny {
			s.mergedDependencies[pair] = append(siblings, id)
		}
	}
	s.store[id].terms.each(func(pkg pkgID, _ Term[V]) {
		s.incompatibilities[pkg] = append(s.incompatibilities[pkg], id)
	})
}

// addPackageVersionDependencies turns the declared dependencies of one
// (package, version) into dependency clauses and then tries to decide the
// version. On conflict the offending clause id is returned.
func (s *state[P, V, M, Pr]) addPackageVersionDependencies(p pkgID, version V, deps []Dependency[P, V]) (incompID, bool) {
	first := incompID(len(s.store))
	for _, dep := range deps {
		depID := s.packages.alloc(dep.Pkg)
		id := s.alloc(fromDependency[P, V, M](p, Singleton(version), depID, dep.Versions))
		s.mergeIncompatibility(id)
	}
	// The window also covers clauses allocated by merging.
	last := incompID(len(s.store))
	return s.partial.addPackageVersionIncompatibilities(p, version, first, last, s.store)
}

// backtrack rewinds the partial solution, forgets contradiction marks
// above the target, and re-indexes the learned clause when resolution
// rebuilt it.
func (s *state[P, V, M, Pr]) backtrack(incompat incompID, incompatChanged bool, target decisionLevel) {
	s.partial.backtrack(target)
	for id, level := range s.contradicted {
		if level > target {
			delete(s.contradicted, id)
		}
	}
	if incompatChanged {
		s.mergeIncompatibility(incompat)
	}
}

// unitPropagation applies the recorded incompatibilities starting from
// package p until a fixpoint. Conflicts are resolved on the spot; the
// returned causes feed the conflict statistics. The error is the terminal
// no-solution failure.
func (s *state[P, V, M, Pr]) unitPropagation(p pkgID) ([]satisfierCause, error) {
	s.buffer = s.buffer[:0]
	s.buffer = append(s.buffer, p)
	var causes []satisfierCause

	for len(s.buffer) > 0 {
		current := s.buffer[len(s.buffer)-1]
		s.buffer = s.buffer[:len(s.buffer)-1]

		conflict := incompID(0)
		hasConflict := false

		// Most recently added clauses first: learned clauses and fresh
		// dependencies are the likeliest to fire.
		list := s.incompatibilities[current]
		for i := len(list) - 1; i >= 0 && !hasConflict; i-- {
			id := list[i]
			if _, ok := s.contradicted[id]; ok {
				continue
			}
			switch rel := s.partial.relation(&s.store[id]); rel.kind {
			case incompSatisfied:
				conflict = id
				hasConflict = true
			case incompAlmostSatisfied:
				almost := rel.pkg
				if !s.buffered(almost) {
					s.buffer = append(s.buffer, almost)
				}
				s.partial.addDerivation(almost, id, s.store)
				s.markContradicted(id)
			case incompContradicted:
				s.markContradicted(id)
			}
		}

		if hasConflict {
			pivot, rootCause, err := s.conflictResolution(conflict, &causes)
			if err != nil {
				return causes, err
			}
			s.buffer = s.buffer[:0]
			s.buffer = append(s.buffer, pivot)
			s.partial.addDerivation(pivot, rootCause, s.store)
			s.markContradicted(rootCause)
		}
	}
	return causes, nil
}

func (s *state[P, V, M, Pr]) buffered(p pkgID) bool {
	for _, q := range s.buffer {
		if q == p {
			return true
		}
	}
	return false
}

// conflictResolution turns a satisfied incompatibility into a learned
// clause and backjumps. It returns the pivot package and the clause that
// will drive its re-derivation, or the terminal failure.
func (s *state[P, V, M, Pr]) conflictResolution(conflict incompID, causes *[]satisfierCause) (pkgID, incompID, error) {
	current := conflict
	changed := false
	for {
		if s.store[current].isTerminal(s.rootPackage, s.rootVersion) {
			return 0, 0, &NoSolutionError{Explanation: s.store[current].display(s.packages)}
		}
		search := s.partial.satisfierSearch(&s.store[current], s.store)
		if !search.sameLevels {
			log.Debugf("solver: backjumping to level %d over %s", search.previousLevel, s.store[current].display(s.packages))
			s.backtrack(current, changed, search.previousLevel)
			*causes = append(*causes, satisfierCause{pkg: search.pkg, incomp: current})
			return search.pkg, current, nil
		}
		prior := priorCause(current, search.satisfierCause, search.pkg, s.store)
		current = s.alloc(prior)
		*causes = append(*causes, satisfierCause{pkg: search.pkg, incomp: current})
		changed = true
	}
}
