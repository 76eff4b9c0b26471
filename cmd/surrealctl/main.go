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

// Command surrealctl is the ambient CLI surface described in SPEC_FULL.md's
// "[AMBIENT] CLI" section. It wires cnf.Settings, a kvs.Store and a
// db.Executor together the way cli/cli.go wired the teacher's full server,
// minus the web/tcp listeners and clustering flags that belong to the
// out-of-scope server surface.
package main

import (
	"os"

	"github.com/pkg/profile"

	"github.com/abcum/surreal/cmd/surrealctl/cli"
)

func main() {

	switch os.Getenv("DEBUG") {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "block":
		defer profile.Start(profile.BlockProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	cli.Run()

}
