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

package sql

// Value is any scalar or compound result the parser or the executor can
// hand back to a caller. It mirrors the teacher's loosely-typed approach
// to SQL values without reinstating the full casting/coercion machinery,
// which belongs to the compute layer this spec treats as a black box.
type Value interface{}

// None is the sentinel Value for NULL/NONE/VOID/EMPTY literals, matching
// the teacher's three-way distinction between "absent", "null", and
// "none" collapsed here into a single sentinel since the expression
// grammar this parser supports has no use for the distinction.
var None = struct{ none bool }{true}

// Ident is a bare identifier appearing in an expression (a field name, a
// variable reference resolved later by the compute layer).
type Ident string

// Param is a `$name` bound parameter reference.
type Param string

// BinaryExpr is `Left Op Right`, the only compound expression this
// grammar builds explicitly; everything else terminates at a literal,
// Ident, or Param.
type BinaryExpr struct {
	Op    Token
	Left  Value
	Right Value
}

// Paren is an explicitly parenthesised sub-expression. Keeping this as
// its own node (rather than flattening into Left/Right) lets the
// executor and tests observe exactly how deep the parser recursed.
type Paren struct {
	Expr Value
}
