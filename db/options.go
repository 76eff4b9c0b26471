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

package db

import "github.com/abcum/surreal/cnf"

// Level is the strength of a session's authentication, ordered weakest
// to strongest so that `levelOf(auth) >= min` reads naturally as "at
// least as strong as". Ported from the Rust Options' opt.needs(Level::Db)
// calls.
type Level int

const (
	LevelNo Level = iota
	LevelDb
	LevelNs
	LevelKv
)

func levelOf(auth *cnf.Auth) Level {
	switch auth.Kind {
	case cnf.AuthKV:
		return LevelKv
	case cnf.AuthNS:
		return LevelNs
	case cnf.AuthDB:
		return LevelDb
	default:
		return LevelNo
	}
}

// Options is the mutable, per-connection session state the statement
// executor reads and writes as it runs a request: the active namespace/
// database, and the handful of boolean toggles a DEFINE/REMOVE-style
// import flow would rely on. Grounded in db/opt.go's `options` struct,
// extended with the NS/DB fields db/use.go previously kept on the
// executor itself, and with the FORCE toggle and Needs/Check levels
// supplemented from the Rust Options this spec was distilled from.
type Options struct {
	NS string
	DB string

	Fields bool
	Events bool
	Tables bool
	Force  bool
}

// NewOptions returns an Options with every query path enabled and FORCE
// disabled, matching db/opt.go's newOptions defaults.
func NewOptions() *Options {
	return &Options{
		Fields: true,
		Events: true,
		Tables: true,
	}
}

// needs reports whether auth is at least as strong as min, gating
// privileged operations the way the Rust `opt.needs(Level::Db)?` call
// does before an OPTION statement is allowed to run.
func needs(auth *cnf.Auth, min Level) bool {
	return levelOf(auth) >= min
}

// check reports whether auth is at least as strong as min, the same
// comparison needs makes. The Rust source keeps needs/check as two
// separate guard calls (`opt.needs(Level::Db)?; opt.check(Level::Db)?`)
// because its Options additionally carries a per-request "selected"
// level that check compares against where needs compares against the
// session's own auth; this port has no such second axis, so check is
// kept only to preserve the two-call shape at each call site.
func check(auth *cnf.Auth, min Level) bool {
	return levelOf(auth) >= min
}
