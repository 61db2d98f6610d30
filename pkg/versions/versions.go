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

// Package versions supplies the version domains the solver is driven with:
// plain integers for fixtures and benchmarks, and semantic versions backed
// by Masterminds/semver for real package worlds.
package versions

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/rancher-sandbox/solvent/pkg/solver"
)

// Number is a plain integer version, the domain of the text fixture
// format.
type Number int

// Compare implements solver.Ordered.
func (n Number) Compare(other Number) int {
	switch {
	case n < other:
		return -1
	case n > other:
		return 1
	default:
		return 0
	}
}

func (n Number) String() string { return fmt.Sprintf("%d", int(n)) }

// SemVer is a semantic version in the ordering the solver needs. The zero
// value is not usable; build values with Parse or MustParse.
type SemVer struct {
	v *semver.Version
}

// Parse reads a semantic version string.
func Parse(s string) (SemVer, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return SemVer{}, err
	}
	return SemVer{v: v}, nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) SemVer {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare implements solver.Ordered with semver precedence rules.
func (s SemVer) Compare(other SemVer) int {
	return s.v.Compare(other.v)
}

func (s SemVer) String() string {
	if s.v == nil {
		return "<nil>"
	}
	return s.v.String()
}

// MatchingRange filters the known versions through a semver constraint and
// returns the matching ones as a solver range. Constraint expressions
// cannot be mapped onto intervals directly (prerelease handling is not
// interval-shaped), so the range is built from the versions that actually
// exist, the way a package database is filtered against a semver range.
func MatchingRange(c *semver.Constraints, known []SemVer) solver.Ranges[SemVer] {
	r := solver.Empty[SemVer]()
	for _, v := range known {
		if c.Check(v.v) {
			r = r.Union(solver.Singleton(v))
		}
	}
	return r
}

// MatchingRangeString is MatchingRange for a textual constraint.
func MatchingRangeString(constraint string, known []SemVer) (solver.Ranges[SemVer], error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return solver.Ranges[SemVer]{}, err
	}
	return MatchingRange(c, known), nil
}
