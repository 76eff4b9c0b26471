// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli is the surrealctl command tree. Grounded in the teacher's
// cli/cli.go root cobra.Command, trimmed to the query and version
// subcommands — full argument parsing for the
// clustered server (ports, certs, node tags, ...) is an explicit non-goal.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abcum/surreal/cnf"
	"github.com/abcum/surreal/log"
)

var conf string

var rootCmd = &cobra.Command{
	Use:   "surrealctl",
	Short: "Query execution core command-line interface",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.AddCommand(queryCmd, versionCmd)
	rootCmd.PersistentFlags().StringVarP(&conf, "conf", "c", "", "Path to an hjson configuration file")
}

// setup loads cnf.Settings from --conf (falling back to the compiled-in
// defaults) and wires the configured log level/format/output, mirroring the
// teacher's cli/setup.go without the clustering, cert, and auth-CIDR
// handling that belonged to the out-of-scope server surface.
func setup() error {

	if conf != "" {
		if err := cnf.Load(conf); err != nil {
			return err
		}
	}

	cnf.Env()

	log.SetLevel(cnf.Settings.Logging.Level)
	log.SetFormat(cnf.Settings.Logging.Format)
	log.SetOutput(cnf.Settings.Logging.Output)

	return nil

}

// Run executes the command tree, exiting non-zero on failure.
func Run() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}
