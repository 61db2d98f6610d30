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
)

func TestTermConstants(t *testing.T) {
	is := assert.New(t)

	any := AnyTerm[vn]()
	is.True(any.IsNegative())
	is.True(any.Contains(0))
	is.True(any.Contains(-100))
	is.True(any.Contains(100))

	empty := EmptyTerm[vn]()
	is.True(empty.IsPositive())
	is.False(empty.Contains(0))
	is.False(empty.Contains(100))

	exact := Exact[vn](5)
	is.True(exact.Contains(5))
	is.False(exact.Contains(6))
}

func TestTermNegate(t *testing.T) {
	is := assert.New(t)

	pos := Positive(Between[vn](1, 5))
	neg := pos.Negate()
	is.True(neg.IsNegative())
	is.True(pos.Ranges().Equal(neg.Ranges()))
	is.True(pos.Contains(3))
	is.False(neg.Contains(3))
	is.True(neg.Contains(7))

	// Double negation is the identity.
	is.True(pos.Negate().Negate().Equal(pos))
}

func TestTermIntersection(t *testing.T) {
	is := assert.New(t)

	p1 := Positive(Between[vn](1, 10))
	p2 := Positive(Between[vn](5, 15))
	n1 := Negative(Between[vn](5, 15))
	n2 := Negative(Between[vn](8, 20))

	is.True(p1.Intersection(p2).Equal(Positive(Between[vn](5, 10))))
	// positive x negative keeps only versions in the range but outside
	// the excluded set.
	is.True(p1.Intersection(n1).Equal(Positive(Between[vn](1, 5))))
	// negative x negative excludes the union.
	is.True(n1.Intersection(n2).Equal(Negative(Between[vn](5, 20))))

	// Intersection with itself is the identity.
	for _, term := range []Term[vn]{p1, n1, AnyTerm[vn](), EmptyTerm[vn]()} {
		is.True(term.Intersection(term).Equal(term))
	}
}

func TestTermUnion(t *testing.T) {
	is := assert.New(t)

	p1 := Positive(Between[vn](1, 5))
	p2 := Positive(Between[vn](5, 10))
	is.True(p1.Union(p2).Equal(Positive(Between[vn](1, 10))))

	// A term united with its negation is vacuous.
	u := p1.Union(p1.Negate())
	is.True(u.Contains(0))
	is.True(u.Contains(3))
	is.True(u.Contains(100))

	// Union with itself is the identity.
	for _, term := range []Term[vn]{p1, p1.Negate(), AnyTerm[vn]()} {
		is.True(term.Union(term).Equal(term))
	}
}

func TestTermDisjoint(t *testing.T) {
	is := assert.New(t)

	p1 := Positive(Between[vn](1, 5))
	is.True(p1.IsDisjoint(Positive(Between[vn](6, 9))))
	is.False(p1.IsDisjoint(Positive(Between[vn](4, 9))))

	// A non-empty term is disjoint from its own negation.
	is.True(p1.IsDisjoint(p1.Negate()))
	is.True(Negative(Between[vn](1, 5)).IsDisjoint(Positive(Between[vn](1, 5))))

	// Two negatives are disjoint only when their ranges cover everything.
	is.True(Negative(LowerThan[vn](5)).IsDisjoint(Negative(StrictlyHigherThan[vn](5))))
	is.False(Negative(LowerThan[vn](5)).IsDisjoint(Negative(HigherThan[vn](10))))
}

func TestTermSubsetOf(t *testing.T) {
	is := assert.New(t)

	is.True(Positive(Between[vn](3, 5)).SubsetOf(Positive(Between[vn](1, 10))))
	is.False(Positive(Between[vn](1, 10)).SubsetOf(Positive(Between[vn](3, 5))))

	// positive fits in a negative iff the ranges are disjoint.
	is.True(Positive(Between[vn](1, 5)).SubsetOf(Negative(Between[vn](6, 9))))
	is.False(Positive(Between[vn](1, 5)).SubsetOf(Negative(Between[vn](4, 9))))

	// negative in negative flips the range inclusion.
	is.True(Negative(Between[vn](1, 10)).SubsetOf(Negative(Between[vn](3, 5))))
	is.False(Negative(Between[vn](3, 5)).SubsetOf(Negative(Between[vn](1, 10))))

	// Every term fits in the vacuous term.
	is.True(Positive(Between[vn](1, 5)).SubsetOf(AnyTerm[vn]()))
	is.True(EmptyTerm[vn]().SubsetOf(Positive(Between[vn](1, 5))))
}

func TestTermRelationWith(t *testing.T) {
	for _, tc := range []struct {
		name       string
		term       Term[vn]
		assignment Term[vn]
		want       Relation
	}{
		{
			name:       "assignment implies the term",
			term:       Positive(Between[vn](1, 10)),
			assignment: Positive(Between[vn](3, 5)),
			want:       RelationSatisfied,
		},
		{
			name:       "assignment rules the term out",
			term:       Positive(Between[vn](1, 5)),
			assignment: Positive(Between[vn](6, 9)),
			want:       RelationContradicted,
		},
		{
			name:       "overlap without implication",
			term:       Positive(Between[vn](1, 5)),
			assignment: Positive(Between[vn](4, 9)),
			want:       RelationInconclusive,
		},
		{
			name:       "negative term satisfied by disjoint positive",
			term:       Negative(Between[vn](10, 20)),
			assignment: Positive(Between[vn](1, 5)),
			want:       RelationSatisfied,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.term.RelationWith(tc.assignment))
		})
	}
}
