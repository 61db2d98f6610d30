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
	"fmt"

	"github.com/Masterminds/log-go"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/solvent/internal/version"
)

type versionOptions struct {
	short bool
}

func newVersionCmd(logger log.Logger) *cobra.Command {
	o := &versionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "show the version for solvent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Debug("starting 'version' command")
			if o.short {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetVersion())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", version.Get())
			return nil
		},
	}
	cmd.Flags().BoolVar(&o.short, "short", false, "print the version number only")
	return cmd
}
