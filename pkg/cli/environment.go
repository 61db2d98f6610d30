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

// Package cli describes the operating environment of the solvent CLI.
package cli

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// EnvSettings are the process-wide knobs of the CLI, seeded from the
// environment and overridable by flags.
type EnvSettings struct {
	// Debug enables verbose solver tracing.
	Debug bool
	// NoColors disables colorized output.
	NoColors bool
	// NoEmojis strips emojis from output.
	NoEmojis bool
}

func New() *EnvSettings {
	env := &EnvSettings{}
	env.Debug, _ = strconv.ParseBool(os.Getenv("SOLVENT_DEBUG"))
	env.NoColors, _ = strconv.ParseBool(os.Getenv("SOLVENT_NOCOLORS"))
	env.NoEmojis, _ = strconv.ParseBool(os.Getenv("SOLVENT_NOEMOJIS"))
	return env
}

// AddFlags binds the settings to the root command's persistent flags.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
	fs.BoolVar(&s.NoColors, "nocolor", s.NoColors, "disable colors in output")
	fs.BoolVar(&s.NoEmojis, "noemoji", s.NoEmojis, "disable emojis in output")
}

// EnvVars lists the environment variables the settings are read from.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		"SOLVENT_DEBUG":    strconv.FormatBool(s.Debug),
		"SOLVENT_NOCOLORS": strconv.FormatBool(s.NoColors),
		"SOLVENT_NOEMOJIS": strconv.FormatBool(s.NoEmojis),
	}
}
