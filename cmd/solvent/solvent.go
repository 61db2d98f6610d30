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
	logcli "github.com/Masterminds/log-go/impl/cli"
	mlogrus "github.com/Masterminds/log-go/impl/logrus"
	"github.com/sirupsen/logrus"

	"github.com/rancher-sandbox/solvent/pkg/cli"
)

var settings = cli.New()

// newLogger builds the CLI logger; debug runs get the logrus backend with
// debug level so solver traces show up.
func newLogger() log.Logger {
	if settings.Debug {
		backend := logrus.New()
		backend.SetLevel(logrus.DebugLevel)
		backend.SetOutput(os.Stderr)
		return mlogrus.New(backend)
	}
	return logcli.NewStandard()
}

func main() {
	cmd, err := newRootCmd(newLogger(), os.Args[1:])
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
