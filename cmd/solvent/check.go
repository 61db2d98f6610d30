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
	"os"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/solvent/internal/loader"
	"github.com/rancher-sandbox/solvent/pkg/eyecandy"
	"github.com/rancher-sandbox/solvent/pkg/solver"
	"github.com/rancher-sandbox/solvent/pkg/versions"
)

const checkDesc = `
This command resolves a dependency file with both the clause-learning
resolver and the naive depth-first one, validates each solution against a
pseudo-boolean encoding of the whole file, and reports disagreements.
Instances with several valid solutions may resolve differently; both
solutions are accepted as long as each one checks out.
`

type checkOptions struct {
	rootPkg     string
	rootVersion int
}

func newCheckCmd(logger log.Logger) *cobra.Command {
	o := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "cross-check both resolvers on a dependency file",
		Long:  checkDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], o, cmd.Flags().Changed("root-version"), logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.rootPkg, "root", "root", "package to resolve for")
	f.IntVar(&o.rootVersion, "root-version", 0, "root version (defaults to the root line of the file)")
	return cmd
}

func runCheck(path string, o *checkOptions, rootVersionSet bool, logger log.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening dependency file")
	}
	defer f.Close()

	world, err := loader.Load(f)
	if err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}

	rootVersion := versions.Number(o.rootVersion)
	if !rootVersionSet {
		if vs, ok := world.Provider.Versions(o.rootPkg); ok && len(vs) > 0 {
			rootVersion = vs[len(vs)-1]
		} else if world.HasRootVersion {
			rootVersion = world.RootVersion
		}
	}

	cdcl, cdclErr := solver.Resolve[string, versions.Number, string, solver.Priority](world.Provider, o.rootPkg, rootVersion)
	naive, naiveErr := solver.NaiveResolve(world.Provider, o.rootPkg, rootVersion)

	if (cdclErr == nil) != (naiveErr == nil) {
		return errors.Errorf("resolvers disagree on solvability: cdcl=%v, naive=%v", cdclErr, naiveErr)
	}
	if cdclErr != nil {
		logger.Info(eyecandy.ESPrint(settings.NoEmojis, "Both resolvers agree: no solution :cross_mark:"))
		logger.Infof("%s", cdclErr)
		return nil
	}

	if err := solver.CrossCheck(world.Provider, cdcl); err != nil {
		return errors.Wrap(err, "clause-learning solution failed the encoding check")
	}
	if err := solver.CrossCheck(world.Provider, naive); err != nil {
		return errors.Wrap(err, "naive solution failed the encoding check")
	}

	logger.Info(eyecandy.ESPrintf(settings.NoEmojis,
		"Both solutions check out (cdcl: %d packages, naive: %d packages) :check_mark_button:",
		len(cdcl), len(naive)))
	return nil
}
