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

package cli

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/abcum/surreal/cnf"
	"github.com/abcum/surreal/db"
	"github.com/abcum/surreal/kvs"
	_ "github.com/abcum/surreal/kvs/mem"
)

var (
	queryNS   string
	queryDB   string
	queryRoot bool
)

var queryCmd = &cobra.Command{
	Use:     "query [flags] <file>",
	Short:   "Run a query file through the executor and print each statement's result",
	Example: "  surrealctl query --ns test --db test script.surql",
	Args:    cobra.ExactArgs(1),
	RunE:    runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryNS, "ns", "", "Namespace to authenticate to (used only with --root=false)")
	queryCmd.Flags().StringVar(&queryDB, "db", "", "Database to authenticate to, with --ns (used only with --root=false)")
	queryCmd.Flags().BoolVar(&queryRoot, "root", true, "Authenticate as root; with --root=false, --ns/--db select namespace or database auth")
}

// runQuery loads the configured kvs.Store, opens a fresh db.Executor
// against it, and runs the file's contents as a single request, printing
// one line per statement result. Grounded in the teacher's cli/sql.go,
// replacing its HTTP round-trip to a running server with a direct,
// in-process call to the executor this module actually implements.
func runQuery(cmd *cobra.Command, args []string) error {

	text, err := ioutil.ReadFile(args[0])
	if err != nil {
		return err
	}

	store, err := kvs.Open(cnf.Settings)
	if err != nil {
		return err
	}
	defer store.Close()

	exec := db.NewExecutor(store)

	auth := cnf.NoAuth()
	switch {
	case queryRoot:
		auth = cnf.RootAuth()
	case queryNS != "" && queryDB != "":
		auth = cnf.DbAuth(queryNS, queryDB)
	case queryNS != "":
		auth = cnf.NsAuth(queryNS)
	}

	vars := make(map[string]interface{})

	res, err := exec.Execute(context.Background(), auth, string(text), vars)
	if err != nil {
		return err
	}

	for i, r := range res {
		if r.Err != nil {
			fmt.Fprintf(os.Stdout, "%d: ERR %s (%s)\n", i, r.Detail(), r.Time)
			continue
		}
		fmt.Fprintf(os.Stdout, "%d: OK %v (%s)\n", i, r.Result, r.Time)
	}

	return nil

}
