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

	"github.com/abcum/surreal/sql"
)

// executeOutput resolves a RETURN statement's expression. Ported from
// db/return.go's executeReturn, trimmed to this module's single
// expression (rather than a comma-separated What list, which belonged
// to the full SELECT-like grammar this module does not implement).
func (e *Executor) executeOutput(ctx context.Context, stm *sql.OutputStatement) (interface{}, error) {
	return resolveExpr(varsOf(ctx), stm.Expr), nil
}
