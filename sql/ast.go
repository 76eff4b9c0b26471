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

import "time"

// Query is the parsed form of a full request: one or more Statements,
// executed in order by the statement executor. Grounded in the
// teacher's sql/ast.go Query{Statements Statements}.
type Query struct {
	Statements Statements
}

// Statements is an ordered list of parsed Statement values.
type Statements []Statement

// Statement is implemented by every statement this grammar recognises.
// Unlike the teacher, which gives every SQL verb (SELECT, CREATE, ...)
// its own AST type carrying the full clause set a compute layer would
// need, this grammar only distinguishes the handful of statement kinds
// the executor itself branches on (spec §4.3); anything else is an
// OtherStatement, opaque past its leading verb.
type Statement interface {
	// Writeable reports whether running the statement should begin an
	// implicit read-write transaction when none is already open.
	Writeable() bool
}

// Killable is implemented by every non-control statement (everything
// but Begin/Cancel/Commit), exposing the optional per-statement
// deadline the executor enforces with context.WithTimeout (spec §3's
// timeout() query). Only OtherStatement's grammar accepts an actual
// TIMEOUT clause; the rest report zero, meaning "no deadline".
type Killable interface {
	Timeout() time.Duration
}

// BeginStatement starts an explicit transaction.
type BeginStatement struct{}

func (s *BeginStatement) Writeable() bool { return false }

// CancelStatement aborts the open transaction.
type CancelStatement struct{}

func (s *CancelStatement) Writeable() bool { return false }

// CommitStatement finalises the open transaction.
type CommitStatement struct{}

func (s *CommitStatement) Writeable() bool { return false }

// UseStatement switches the session's active namespace and/or database.
// Either field may be empty, meaning "leave unchanged".
type UseStatement struct {
	NS string
	DB string
}

func (s *UseStatement) Writeable() bool { return false }
func (s *UseStatement) Timeout() time.Duration { return 0 }

// OptionStatement toggles a named Options flag (spec §4.2's "session
// options", e.g. FORCE) for the remainder of the connection.
type OptionStatement struct {
	Name  string
	Value bool
}

func (s *OptionStatement) Writeable() bool { return false }
func (s *OptionStatement) Timeout() time.Duration { return 0 }

// SetStatement binds the result of Expr to Name for the remainder of the
// request (a LET statement). Name must not collide with a protected
// parameter name (spec §8, cnf.Settings.Query.ProtectedParams).
type SetStatement struct {
	Name string
	Expr Value
}

func (s *SetStatement) Writeable() bool {
	if w, ok := s.Expr.(interface{ Writeable() bool }); ok {
		return w.Writeable()
	}
	return false
}

func (s *SetStatement) Timeout() time.Duration { return 0 }

// OutputStatement (RETURN) computes Expr. Inside an open transaction
// block it clears the responses buffered by earlier statements of that
// block, replacing them; outside a block it clears nothing.
type OutputStatement struct {
	Expr Value
}

func (s *OutputStatement) Writeable() bool {
	if w, ok := s.Expr.(interface{ Writeable() bool }); ok {
		return w.Writeable()
	}
	return false
}

func (s *OutputStatement) Timeout() time.Duration { return 0 }

// OtherStatement is any data-manipulation statement (SELECT, CREATE,
// UPDATE, UPSERT, DELETE, INSERT, RELATE). Its Expr is the first
// expression after the verb (Ident("*") for a bare `*`); later clauses
// are parsed, under the recursion guard, but not kept. Evaluating it is
// the compute layer's job and is explicitly out of scope for this
// module (spec Non-goals).
type OtherStatement struct {
	Verb Token
	Expr Value

	// TimeoutDur is the duration parsed from an optional trailing
	// TIMEOUT clause; zero means no deadline.
	TimeoutDur time.Duration
}

func (s *OtherStatement) Writeable() bool        { return s.Verb.Writeable() }
func (s *OtherStatement) Timeout() time.Duration { return s.TimeoutDur }
