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

import (
	"context"
	"strings"

	"github.com/abcum/surreal/sql"
)

// executeOption toggles a named session option. Ported from db/opt.go's
// executeOpt, gated by the needs/check Level pair supplemented from the
// Rust Options (opt.needs(Level::Db)?; opt.check(Level::Db)?) rather than
// the teacher's single `perm(ctx) >= cnf.AuthSC` comparison. Insufficient
// privilege and an unrecognised option name are distinct failures — the
// former surfaces as OptionNotAllowed, the latter as UnknownOption — and
// either one breaks statement processing with an error (spec §4.3)
// instead of being silently ignored.
func (e *Executor) executeOption(ctx context.Context, stm *sql.OptionStatement) error {

	auth := authOf(ctx)

	if !needs(auth, LevelDb) || !check(auth, LevelDb) {
		return &OptionNotAllowed{Name: stm.Name}
	}

	switch strings.ToUpper(stm.Name) {
	case "FIELDS":
		e.opt.Fields = stm.Value
	case "EVENTS":
		e.opt.Events = stm.Value
	case "TABLES":
		e.opt.Tables = stm.Value
	case "FORCE":
		e.opt.Force = stm.Value
	case "IMPORT":
		if stm.Value {
			e.opt.Fields, e.opt.Events, e.opt.Tables = false, false, true
		} else {
			e.opt.Fields, e.opt.Events, e.opt.Tables = true, true, true
		}
	default:
		return &UnknownOption{Name: stm.Name}
	}

	return nil

}
