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

	"github.com/abcum/surreal/cnf"
	"github.com/abcum/surreal/sql"
)

// executeUse switches the session's active namespace and/or database,
// gated by the session's authentication level (spec §4.3's Use
// dispatch):
//
//	No or Kv   - always permitted
//	Ns(v)      - may set ns only when v == ns; may always set db
//	Db(ns, db) - may set ns only when its ns == ns; may set db only
//	             when its db == db
//
// A failed check clears only the field that failed and returns
// NsNotAllowed/DbNotAllowed; an unrelated already-set field is left
// untouched, matching the Rust executor's Statement::Use arm which
// clears opt.ns and opt.db independently. A successful switch writes
// through to e.opt and to the "session" Value held in ctx (spec §6),
// so that every successful Use is observable to both the executor and
// anything reading the session out of the context.
func (e *Executor) executeUse(ctx context.Context, stm *sql.UseStatement) error {

	auth := authOf(ctx)
	sess := sessionOf(ctx)

	if stm.NS != "" {
		allowed := true
		switch auth.Kind {
		case cnf.AuthNS, cnf.AuthDB:
			allowed = auth.NS == stm.NS
		}
		if !allowed {
			e.opt.NS = ""
			if sess != nil {
				sess.NS = ""
			}
			return &NsNotAllowed{NS: stm.NS}
		}
		e.opt.NS = stm.NS
		if sess != nil {
			sess.NS = stm.NS
		}
	}

	if stm.DB != "" {
		allowed := true
		if auth.Kind == cnf.AuthDB {
			allowed = auth.DB == stm.DB
		}
		if !allowed {
			e.opt.DB = ""
			if sess != nil {
				sess.DB = ""
			}
			return &DbNotAllowed{DB: stm.DB}
		}
		e.opt.DB = stm.DB
		if sess != nil {
			sess.DB = stm.DB
		}
	}

	return nil

}
