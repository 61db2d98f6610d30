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

import "math"

// ResolutionStats counts, per package, how often the package was involved
// in conflicts. Providers may use it to prioritize quarrelsome packages;
// the counters are advisory only.
type ResolutionStats struct {
	UnitPropagationAffected uint64
	UnitPropagationCulprit  uint64
	DependenciesAffected    uint64
	DependenciesCulprit     uint64
}

// ConflictCount is the total involvement of the package in conflicts.
func (s ResolutionStats) ConflictCount() uint64 {
	return s.UnitPropagationAffected + s.UnitPropagationCulprit +
		s.DependenciesAffected + s.DependenciesCulprit
}

// Dependency is one declared requirement: the dependee package and the
// versions of it that satisfy the dependent.
type Dependency[P comparable, V Ordered[V]] struct {
	Pkg      P
	Versions Ranges[V]
}

// Dep is a convenience constructor for dependency lists.
func Dep[P comparable, V Ordered[V]](pkg P, versions Ranges[V]) Dependency[P, V] {
	return Dependency[P, V]{Pkg: pkg, Versions: versions}
}

// Dependencies is the provider's answer for one (package, version):
// either the ordered list of requirements, or unavailability. The order of
// Constraints is meaningful: it fixes package id allocation and therefore
// tie-breaking, so providers must keep it deterministic.
type Dependencies[P comparable, V Ordered[V], M any] struct {
	Available   bool
	Constraints []Dependency[P, V]
	Meta        M
}

// AvailableDependencies wraps a constraint list.
func AvailableDependencies[P comparable, V Ordered[V], M any](constraints []Dependency[P, V], meta M) Dependencies[P, V, M] {
	return Dependencies[P, V, M]{Available: true, Constraints: constraints, Meta: meta}
}

// UnavailableDependencies marks a version the resolver must not use.
func UnavailableDependencies[P comparable, V Ordered[V], M any](meta M) Dependencies[P, V, M] {
	return Dependencies[P, V, M]{Meta: meta}
}

// DependencyProvider is how the resolver sees the outside world. All three
// calls are synchronous and must not reenter the resolver; for a given
// resolution they must behave as pure functions of their inputs.
type DependencyProvider[P comparable, V Ordered[V], M any, Pr Ordered[Pr]] interface {
	// Prioritize ranks an undecided package; the highest priority is
	// decided next.
	Prioritize(pkg P, allowed Ranges[V], stats ResolutionStats) Pr
	// ChooseVersion proposes a version inside allowed, or reports that
	// none is left.
	ChooseVersion(pkg P, allowed Ranges[V]) (V, bool)
	// GetDependencies returns the declared dependencies of a version. It
	// must be deterministic for a given (pkg, version).
	GetDependencies(pkg P, version V) Dependencies[P, V, M]
}

// Priority is the ranking used by OfflineDependencyProvider: packages with
// more recorded conflicts first, then packages with fewer candidate
// versions. A package with no candidate at all ranks above everything so
// its no-versions clause is learned immediately.
type Priority struct {
	Conflicts  uint64
	Candidates int64 // negated candidate count
}

// Compare orders priorities; the larger compares greater.
func (p Priority) Compare(other Priority) int {
	if p.Conflicts != other.Conflicts {
		if p.Conflicts < other.Conflicts {
			return -1
		}
		return 1
	}
	if p.Candidates != other.Candidates {
		if p.Candidates < other.Candidates {
			return -1
		}
		return 1
	}
	return 0
}

type offlineEntry[P comparable, V Ordered[V]] struct {
	versions []V // ascending
	deps     [][]Dependency[P, V]
}

// OfflineDependencyProvider serves dependencies from memory. It is the
// provider used by the text-fixture loader, the naive resolver and the
// tests; version choice is "highest in range".
type OfflineDependencyProvider[P comparable, V Ordered[V]] struct {
	order   []P
	entries map[P]*offlineEntry[P, V]
}

// NewOfflineDependencyProvider returns an empty provider.
func NewOfflineDependencyProvider[P comparable, V Ordered[V]]() *OfflineDependencyProvider[P, V] {
	return &OfflineDependencyProvider[P, V]{entries: make(map[P]*offlineEntry[P, V])}
}

// AddDependencies declares the dependency list of one (package, version),
// replacing any earlier declaration for the same version.
func (o *OfflineDependencyProvider[P, V]) AddDependencies(pkg P, version V, deps []Dependency[P, V]) {
	e, ok := o.entries[pkg]
	if !ok {
		e = &offlineEntry[P, V]{}
		o.entries[pkg] = e
		o.order = append(o.order, pkg)
	}
	for i, v := range e.versions {
		c := version.Compare(v)
		if c == 0 {
			e.deps[i] = deps
			return
		}
		if c < 0 {
			e.versions = append(e.versions, version)
			copy(e.versions[i+1:], e.versions[i:])
			e.versions[i] = version
			e.deps = append(e.deps, nil)
			copy(e.deps[i+1:], e.deps[i:])
			e.deps[i] = deps
			return
		}
	}
	e.versions = append(e.versions, version)
	e.deps = append(e.deps, deps)
}

// Packages lists the known packages in declaration order.
func (o *OfflineDependencyProvider[P, V]) Packages() []P {
	return append([]P(nil), o.order...)
}

// Versions lists the known versions of pkg in ascending order.
func (o *OfflineDependencyProvider[P, V]) Versions(pkg P) ([]V, bool) {
	e, ok := o.entries[pkg]
	if !ok {
		return nil, false
	}
	return append([]V(nil), e.versions...), true
}

// Dependencies returns the declared list for one known (package, version).
func (o *OfflineDependencyProvider[P, V]) Dependencies(pkg P, version V) ([]Dependency[P, V], bool) {
	e, ok := o.entries[pkg]
	if !ok {
		return nil, false
	}
	for i, v := range e.versions {
		if v.Compare(version) == 0 {
			return e.deps[i], true
		}
	}
	return nil, false
}

// ChooseVersion returns the highest known version inside allowed.
func (o *OfflineDependencyProvider[P, V]) ChooseVersion(pkg P, allowed Ranges[V]) (V, bool) {
	var zero V
	e, ok := o.entries[pkg]
	if !ok {
		return zero, false
	}
	for i := len(e.versions) - 1; i >= 0; i-- {
		if allowed.Contains(e.versions[i]) {
			return e.versions[i], true
		}
	}
	return zero, false
}

// GetDependencies serves the declared list, or unavailability for unknown
// packages and versions.
func (o *OfflineDependencyProvider[P, V]) GetDependencies(pkg P, version V) Dependencies[P, V, string] {
	e, ok := o.entries[pkg]
	if !ok {
		return UnavailableDependencies[P, V, string]("package not found")
	}
	for i, v := range e.versions {
		if v.Compare(version) == 0 {
			return AvailableDependencies[P, V](e.deps[i], "ok")
		}
	}
	return UnavailableDependencies[P, V, string]("version not found")
}

// Prioritize ranks by conflict count, then by scarcity of candidates.
func (o *OfflineDependencyProvider[P, V]) Prioritize(pkg P, allowed Ranges[V], stats ResolutionStats) Priority {
	count := int64(0)
	if e, ok := o.entries[pkg]; ok {
		for _, v := range e.versions {
			if allowed.Contains(v) {
				count++
			}
		}
	}
	if count == 0 {
		return Priority{Conflicts: math.MaxUint64}
	}
	return Priority{Conflicts: stats.ConflictCount(), Candidates: -count}
}
