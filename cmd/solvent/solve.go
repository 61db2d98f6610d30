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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Masterminds/log-go"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/rancher-sandbox/solvent/internal/loader"
	"github.com/rancher-sandbox/solvent/pkg/eyecandy"
	"github.com/rancher-sandbox/solvent/pkg/solver"
	"github.com/rancher-sandbox/solvent/pkg/versions"
)

const solveDesc = `
This command resolves a dependency file and prints the chosen versions.

The file holds one line per (package, version), followed by its dependency
constraints:

    root 1 foo:range:1:3
    foo 1 bar:singleton:2
    bar 2

Resolution starts from the package given with --root at the version of its
line in the file (override with --root-version).
`

type solveOptions struct {
	rootPkg     string
	rootVersion int
	output      string
	oracle      bool
}

func newSolveCmd(logger log.Logger) *cobra.Command {
	o := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "resolve a dependency file",
		Long:  solveDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			solution, err := runSolve(args[0], o, cmd.Flags().Changed("root-version"), logger)
			if err != nil {
				return err
			}
			return writeSolution(cmd.OutOrStdout(), solution, o.output)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.rootPkg, "root", "root", "package to resolve for")
	f.IntVar(&o.rootVersion, "root-version", 0, "root version (defaults to the root line of the file)")
	f.StringVarP(&o.output, "output", "o", "table", "output format (table, yaml, json)")
	f.BoolVar(&o.oracle, "oracle", false, "use the naive depth-first resolver instead")
	return cmd
}

func runSolve(path string, o *solveOptions, rootVersionSet bool, logger log.Logger) (solver.Solution[string, versions.Number], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening dependency file")
	}
	defer f.Close()

	world, err := loader.Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	rootVersion := versions.Number(o.rootVersion)
	if !rootVersionSet {
		if vs, ok := world.Provider.Versions(o.rootPkg); ok && len(vs) > 0 {
			rootVersion = vs[len(vs)-1]
		} else if world.HasRootVersion {
			rootVersion = world.RootVersion
		}
	}
	logger.Debugf("resolving %s %s from %s", o.rootPkg, rootVersion, path)

	var solution solver.Solution[string, versions.Number]
	if o.oracle {
		solution, err = solver.NaiveResolve(world.Provider, o.rootPkg, rootVersion)
	} else {
		solution, err = solver.Resolve[string, versions.Number, string, solver.Priority](world.Provider, o.rootPkg, rootVersion)
	}
	if err != nil {
		logger.Error(eyecandy.ESPrint(settings.NoEmojis, "No solution :cross_mark:"))
		return nil, err
	}
	logger.Info(eyecandy.ESPrintf(settings.NoEmojis, "Solved %d package(s) :check_mark_button:", len(solution)))
	return solution, nil
}

type solutionElement struct {
	Package string `json:"package" yaml:"package"`
	Version int    `json:"version" yaml:"version"`
}

func solutionElements(solution solver.Solution[string, versions.Number]) []solutionElement {
	elements := make([]solutionElement, 0, len(solution))
	for pkg, v := range solution {
		elements = append(elements, solutionElement{Package: pkg, Version: int(v)})
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i].Package < elements[j].Package })
	return elements
}

func writeSolution(out io.Writer, solution solver.Solution[string, versions.Number], format string) error {
	elements := solutionElements(solution)
	switch format {
	case "table":
		table := uitable.New()
		table.AddRow("PACKAGE", "VERSION")
		for _, e := range elements {
			table.AddRow(e.Package, e.Version)
		}
		_, err := fmt.Fprintln(out, table.String())
		return err
	case "yaml":
		o, err := yaml.Marshal(elements)
		if err != nil {
			return err
		}
		_, err = out.Write(o)
		return err
	case "json":
		o, err := json.Marshal(elements)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(o))
		return err
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}
