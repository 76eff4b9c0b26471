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

// executeSet binds the (best-effort, uncomputed) value of a SET
// statement's expression to its name in the request's variable table.
// Ported from db/let.go's executeLetStatement, generalized to reject
// protected parameter names (spec §4.3 / §8) since the teacher predates
// that guard.
func (e *Executor) executeSet(ctx context.Context, stm *sql.SetStatement) error {

	for _, protected := range cnf.Settings.Query.ProtectedParams {
		if stm.Name == protected {
			return &InvalidParam{Name: stm.Name}
		}
	}

	vars := varsOf(ctx)
	if vars == nil {
		return nil
	}

	vars[stm.Name] = resolveExpr(vars, stm.Expr)

	return nil

}

// resolveExpr is the stand-in for the compute layer's expr.compute():
// it resolves Param references against the variable table and returns
// every other expression kind (literals, idents, binary expressions,
// parens) unevaluated, since algebraic evaluation is explicitly out of
// scope for this module (spec §1 Non-goals).
func resolveExpr(vars map[string]interface{}, expr sql.Value) interface{} {
	switch v := expr.(type) {
	case sql.Param:
		return vars[string(v)]
	case *sql.Paren:
		return resolveExpr(vars, v.Expr)
	default:
		return v
	}
}
