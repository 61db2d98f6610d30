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

// Package loader reads dependency universes from the fixture text format:
// one line per (package, version), each followed by its dependency specs.
//
//	# comment
//	root 1 foo:range:1:3
//	foo 1 bar:singleton:2
//	bar 2
//
// A spec is name:singleton:<v>, name:range:<lo>:<hi> (half-open), or
// name:any.
package loader

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/solvent/pkg/solver"
	"github.com/rancher-sandbox/solvent/pkg/versions"
)

// World is a parsed dependency universe.
type World struct {
	Provider *solver.OfflineDependencyProvider[string, versions.Number]
	// RootVersion is the version of the last "root" line, when present.
	RootVersion    versions.Number
	HasRootVersion bool
}

// Load parses the fixture format.
func Load(r io.Reader) (*World, error) {
	w := &World{Provider: solver.NewOfflineDependencyProvider[string, versions.Number]()}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.Errorf("line %d: expected \"package version [deps...]\", got %q", lineNum, line)
		}
		name := fields[0]
		version, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: version of %s", lineNum, name)
		}
		if name == "root" {
			w.RootVersion = versions.Number(version)
			w.HasRootVersion = true
		}

		var deps []solver.Dependency[string, versions.Number]
		for _, spec := range fields[2:] {
			dep, err := parseSpec(spec)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			deps = append(deps, dep)
		}
		w.Provider.AddDependencies(name, versions.Number(version), deps)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading dependency file")
	}
	return w, nil
}

func parseSpec(spec string) (solver.Dependency[string, versions.Number], error) {
	var dep solver.Dependency[string, versions.Number]
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return dep, errors.Errorf("invalid dependency spec %q", spec)
	}
	dep.Pkg = parts[0]
	switch parts[1] {
	case "singleton":
		if len(parts) != 3 {
			return dep, errors.Errorf("singleton constraint %q wants one version", spec)
		}
		v, err := strconv.Atoi(parts[2])
		if err != nil {
			return dep, errors.Wrapf(err, "constraint %q", spec)
		}
		dep.Versions = solver.Singleton(versions.Number(v))
	case "range":
		if len(parts) != 4 {
			return dep, errors.Errorf("range constraint %q wants low and high", spec)
		}
		lo, err := strconv.Atoi(parts[2])
		if err != nil {
			return dep, errors.Wrapf(err, "constraint %q", spec)
		}
		hi, err := strconv.Atoi(parts[3])
		if err != nil {
			return dep, errors.Wrapf(err, "constraint %q", spec)
		}
		dep.Versions = solver.Between(versions.Number(lo), versions.Number(hi))
	case "any":
		dep.Versions = solver.Full[versions.Number]()
	default:
		return dep, errors.Errorf("unknown constraint kind %q in %q", parts[1], spec)
	}
	return dep, nil
}
