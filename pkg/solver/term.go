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

import "fmt"

// Relation is the three-valued outcome of comparing a term against the
// versions currently allowed for its package.
type Relation int

const (
	// RelationSatisfied: the allowed versions are a subset of the term.
	RelationSatisfied Relation = iota
	// RelationContradicted: the allowed versions and the term are disjoint.
	RelationContradicted
	// RelationInconclusive: neither of the above.
	RelationInconclusive
)

// Term is a signed predicate on one package's version. A positive term
// asserts that the version lies in the range; a negative term asserts that
// it lies outside. Negative terms arise from dependency clauses ("choosing
// the dependent forbids versions of the dependee outside this range") and
// from negating derivations.
type Term[V Ordered[V]] struct {
	positive bool
	ranges   Ranges[V]
}

// Positive returns the term "version in r".
func Positive[V Ordered[V]](r Ranges[V]) Term[V] {
	return Term[V]{positive: true, ranges: r}
}

// Negative returns the term "version not in r".
func Negative[V Ordered[V]](r Ranges[V]) Term[V] {
	return Term[V]{ranges: r}
}

// AnyTerm is the vacuous term, satisfied by every version: "not in {}".
func AnyTerm[V Ordered[V]]() Term[V] { return Negative(Empty[V]()) }

// EmptyTerm is the contradictory term, satisfied by no version: "in {}".
func EmptyTerm[V Ordered[V]]() Term[V] { return Positive(Empty[V]()) }

// Exact returns the term satisfied only by v.
func Exact[V Ordered[V]](v V) Term[V] { return Positive(Singleton(v)) }

func (t Term[V]) IsPositive() bool { return t.positive }
func (t Term[V]) IsNegative() bool { return !t.positive }

// Ranges returns the underlying range, regardless of polarity.
func (t Term[V]) Ranges() Ranges[V] { return t.ranges }

// Negate flips the polarity; the range is untouched.
func (t Term[V]) Negate() Term[V] {
	t.positive = !t.positive
	return t
}

// Contains reports whether v satisfies the term.
func (t Term[V]) Contains(v V) bool {
	if t.positive {
		return t.ranges.Contains(v)
	}
	return !t.ranges.Contains(v)
}

// Intersection returns the term satisfied exactly when both t and other
// are.
func (t Term[V]) Intersection(other Term[V]) Term[V] {
	switch {
	case t.positive && other.positive:
		return Positive(t.ranges.Intersection(other.ranges))
	case t.positive != other.positive:
		p, n := t.ranges, other.ranges
		if !t.positive {
			p, n = other.ranges, t.ranges
		}
		return Positive(p.Intersection(n.Complement()))
	default:
		return Negative(t.ranges.Union(other.ranges))
	}
}

// Union returns the term satisfied exactly when t or other is, derived
// from Intersection by De Morgan.
func (t Term[V]) Union(other Term[V]) Term[V] {
	switch {
	case t.positive && other.positive:
		return Positive(t.ranges.Union(other.ranges))
	case t.positive != other.positive:
		p, n := t.ranges, other.ranges
		if !t.positive {
			p, n = other.ranges, t.ranges
		}
		return Negative(p.Complement().Intersection(n))
	default:
		return Negative(t.ranges.Intersection(other.ranges))
	}
}

// IsDisjoint reports whether no version satisfies both t and other.
func (t Term[V]) IsDisjoint(other Term[V]) bool {
	switch {
	case t.positive && other.positive:
		return t.ranges.IsDisjoint(other.ranges)
	case !t.positive && !other.positive:
		// The complements are disjoint only when the union covers
		// every version.
		return t.ranges.Union(other.ranges).IsFull()
	default:
		p, n := t.ranges, other.ranges
		if !t.positive {
			p, n = other.ranges, t.ranges
		}
		return p.SubsetOf(n)
	}
}

// SubsetOf reports whether every version satisfying t satisfies other.
func (t Term[V]) SubsetOf(other Term[V]) bool {
	switch {
	case t.positive && other.positive:
		return t.ranges.SubsetOf(other.ranges)
	case t.positive && !other.positive:
		return t.ranges.IsDisjoint(other.ranges)
	case !t.positive && other.positive:
		// A complement fits inside a plain range only when the
		// complement is empty, i.e. t excludes everything.
		return t.ranges.IsFull()
	default:
		return other.ranges.SubsetOf(t.ranges)
	}
}

// RelationWith classifies t against the intersection of the other terms
// recorded for the same package: Satisfied when that intersection implies
// t, Contradicted when it rules t out, Inconclusive otherwise.
func (t Term[V]) RelationWith(assignment Term[V]) Relation {
	if assignment.SubsetOf(t) {
		return RelationSatisfied
	}
	if t.IsDisjoint(assignment) {
		return RelationContradicted
	}
	return RelationInconclusive
}

// Equal reports structural equality.
func (t Term[V]) Equal(other Term[V]) bool {
	return t.positive == other.positive && t.ranges.Equal(other.ranges)
}

func (t Term[V]) String() string {
	if t.positive {
		return t.ranges.String()
	}
	return fmt.Sprintf("not (%s)", t.ranges)
}
