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
	"strings"
)

// incompKind records where an incompatibility came from.
type incompKind int

const (
	// kindNotRoot seeds propagation: "the root package is not at the
	// root version" is forbidden.
	kindNotRoot incompKind = iota
	// kindNoVersions: the provider had no version satisfying the term.
	kindNoVersions
	// kindFromDependency: "pkg1 in ranges1" forbids "pkg2 outside
	// ranges2".
	kindFromDependency
	// kindDerivedFrom: learned by resolving two prior incompatibilities.
	kindDerivedFrom
	// kindCustom: asserted by the caller.
	kindCustom
)

// incompatibility is a clause over package versions: the conjunction of its
// terms can never hold in a valid assignment, i.e. at least one term must
// end up false. The zero-term incompatibility is an outright contradiction.
type incompatibility[P comparable, V Ordered[V], M any] struct {
	terms smallMap[pkgID, Term[V]]
	kind  incompKind

	// Provenance payload; which fields are meaningful depends on kind.
	pkg1, pkg2       pkgID
	ranges1, ranges2 Ranges[V]
	version          V
	cause1, cause2   incompID
	meta             M
}

func notRoot[P comparable, V Ordered[V], M any](pkg pkgID, version V) incompatibility[P, V, M] {
	inc := incompatibility[P, V, M]{kind: kindNotRoot, pkg1: pkg, version: version}
	inc.terms.insert(pkg, Negative(Singleton(version)))
	return inc
}

func noVersions[P comparable, V Ordered[V], M any](pkg pkgID, term Term[V]) incompatibility[P, V, M] {
	if term.IsNegative() {
		panic("solver: noVersions requires a positive term")
	}
	inc := incompatibility[P, V, M]{kind: kindNoVersions, pkg1: pkg, ranges1: term.Ranges()}
	inc.terms.insert(pkg, term)
	return inc
}

func customTerm[P comparable, V Ordered[V], M any](pkg pkgID, term Term[V], meta M) incompatibility[P, V, M] {
	if term.IsPositive() {
		panic("solver: customTerm requires a negative term")
	}
	inc := incompatibility[P, V, M]{kind: kindCustom, pkg1: pkg, ranges1: term.Ranges(), meta: meta}
	inc.terms.insert(pkg, term)
	return inc
}

func customVersion[P comparable, V Ordered[V], M any](pkg pkgID, version V, meta M) incompatibility[P, V, M] {
	set := Singleton(version)
	inc := incompatibility[P, V, M]{kind: kindCustom, pkg1: pkg, ranges1: set, meta: meta}
	inc.terms.insert(pkg, Positive(set))
	return inc
}

// fromDependency builds the clause "pkg in versions forbids dep outside
// depVersions". A dependency on an empty set keeps only the dependent
// term: no version of pkg in the range is installable at all.
func fromDependency[P comparable, V Ordered[V], M any](pkg pkgID, versions Ranges[V], dep pkgID, depVersions Ranges[V]) incompatibility[P, V, M] {
	inc := incompatibility[P, V, M]{
		kind:    kindFromDependency,
		pkg1:    pkg,
		ranges1: versions,
		pkg2:    dep,
		ranges2: depVersions,
	}
	inc.terms.insert(pkg, Positive(versions))
	if !depVersions.IsEmpty() {
		inc.terms.insert(dep, Negative(depVersions))
	}
	return inc
}

// asDependency returns the (dependent, dependee) pair for dependency
// clauses.
func (inc *incompatibility[P, V, M]) asDependency() (pkgID, pkgID, bool) {
	if inc.kind != kindFromDependency {
		return 0, 0, false
	}
	return inc.pkg1, inc.pkg2, true
}

// causes returns the two incompatibilities a learned clause was derived
// from.
func (inc *incompatibility[P, V, M]) causes() (incompID, incompID, bool) {
	if inc.kind != kindDerivedFrom {
		return 0, 0, false
	}
	return inc.cause1, inc.cause2, true
}

func (inc *incompatibility[P, V, M]) get(p pkgID) *Term[V] {
	return inc.terms.get(p)
}

func (inc *incompatibility[P, V, M]) size() int { return inc.terms.len() }

// mergeDependents combines two dependency clauses that share the same
// dependent and dependee packages and an identical dependee term, unioning
// the dependent ranges. This keeps the clause database linear when many
// versions of one package declare the same dependency.
func (inc *incompatibility[P, V, M]) mergeDependents(other *incompatibility[P, V, M]) (incompatibility[P, V, M], bool) {
	var none incompatibility[P, V, M]
	p1, p2, ok := inc.asDependency()
	if !ok {
		return none, false
	}
	o1, o2, ok := other.asDependency()
	if !ok || p1 != o1 || p2 != o2 || p1 == p2 {
		return none, false
	}
	depTerm := inc.get(p2)
	otherDepTerm := other.get(p2)
	if depTerm == nil || otherDepTerm == nil || !depTerm.Equal(*otherDepTerm) {
		return none, false
	}
	t1, t2 := inc.get(p1), other.get(p1)
	if t1 == nil || t2 == nil || !t1.IsPositive() || !t2.IsPositive() {
		panic("solver: dependency incompatibility with non-positive dependent term")
	}
	merged := t1.Ranges().Union(t2.Ranges())
	depSet := Empty[V]()
	if depTerm.IsNegative() {
		depSet = depTerm.Ranges()
	}
	return fromDependency[P, V, M](p1, merged, p2, depSet), true
}

// priorCause resolves a conflicting incompatibility against the cause of
// its most recent satisfier, eliminating (or narrowing) the pivot package.
// Non-pivot terms of the cause intersect into the accumulator; the pivot's
// terms union, and a union equal to the vacuous term (not in {}) drops the
// pivot from the clause.
func priorCause[P comparable, V Ordered[V], M any](current, satisfierCause incompID, pivot pkgID, store []incompatibility[P, V, M]) incompatibility[P, V, M] {
	inc := &store[current]
	cause := &store[satisfierCause]

	t1 := inc.get(pivot)
	if t1 == nil {
		panic("solver: priorCause pivot missing from incompatibility")
	}
	merged := inc.terms.clone()
	cause.terms.each(func(p pkgID, t2 Term[V]) {
		if p == pivot {
			return
		}
		if existing := merged.get(p); existing != nil {
			merged.insert(p, existing.Intersection(t2))
		} else {
			merged.insert(p, t2)
		}
	})
	if t2 := cause.get(pivot); t2 != nil {
		union := t1.Union(*t2)
		if union.IsNegative() && union.Ranges().IsEmpty() {
			merged.remove(pivot)
		} else {
			merged.insert(pivot, union)
		}
	}
	return incompatibility[P, V, M]{
		terms:  merged,
		kind:   kindDerivedFrom,
		cause1: current,
		cause2: satisfierCause,
	}
}

// isTerminal reports whether the incompatibility proves there is no
// solution: no terms left, or a lone term covering the root version.
func (inc *incompatibility[P, V, M]) isTerminal(rootPackage pkgID, rootVersion V) bool {
	if inc.terms.len() == 0 {
		return true
	}
	if inc.terms.len() > 1 {
		return false
	}
	p := inc.terms.keys[0]
	return p == rootPackage && inc.terms.vals[0].Contains(rootVersion)
}

// incompRelationKind classifies an incompatibility against a partial
// solution.
type incompRelationKind int

const (
	// incompSatisfied: every term holds, which is a conflict.
	incompSatisfied incompRelationKind = iota
	// incompAlmostSatisfied: every term but one holds; unit propagation
	// derives the negation of the remaining term.
	incompAlmostSatisfied
	// incompContradicted: some term can no longer hold, so the clause is
	// inert.
	incompContradicted
	// incompInconclusive: at least two terms are still undetermined.
	incompInconclusive
)

type incompRelation struct {
	kind incompRelationKind
	pkg  pkgID
}

// relation classifies the incompatibility against the per-package term
// intersections returned by lookup (nil for unconstrained packages).
func (inc *incompatibility[P, V, M]) relation(lookup func(pkgID) *Term[V]) incompRelation {
	rel := incompRelation{kind: incompSatisfied}
	for i := range inc.terms.keys {
		p := inc.terms.keys[i]
		incompTerm := inc.terms.vals[i]
		if current := lookup(p); current != nil {
			switch incompTerm.RelationWith(*current) {
			case RelationSatisfied:
				continue
			case RelationContradicted:
				return incompRelation{kind: incompContradicted, pkg: p}
			}
		}
		// Undetermined, either inconclusive or unconstrained.
		if rel.kind == incompSatisfied {
			rel = incompRelation{kind: incompAlmostSatisfied, pkg: p}
		} else {
			return incompRelation{kind: incompInconclusive}
		}
	}
	return rel
}

// display renders the incompatibility with package names resolved, for
// error reporting.
func (inc *incompatibility[P, V, M]) display(pkgs *packageStore[P]) string {
	if inc.terms.len() == 0 {
		return "version solving failed"
	}
	parts := make([]string, 0, inc.terms.len())
	inc.terms.each(func(p pkgID, t Term[V]) {
		parts = append(parts, fmt.Sprintf("%v %s", pkgs.pkg(p), t))
	})
	out := strings.Join(parts, ", ")
	if len(parts) > 1 {
		out += " are incompatible"
	}
	return out
}
