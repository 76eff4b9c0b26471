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

import "fmt"

// QueryCancelled is the result every buffered Response in a transaction
// block is rewritten to when the block ends in CANCEL.
var QueryCancelled = fmt.Errorf("the query was not executed due to a cancelled transaction")

// QueryNotExecuted is returned for statements skipped because the
// transaction they belong to is already poisoned by an earlier error,
// and for buffered responses rewritten at COMMIT time when the commit
// itself failed.
type QueryNotExecuted struct {
	Message string
}

func (e *QueryNotExecuted) Error() string {
	if e.Message == "" {
		return "the query was not executed due to a failed transaction"
	}
	return fmt.Sprintf("the query was not executed due to a failed transaction: %s", e.Message)
}

// QueryTimedout is returned when a statement's per-statement TIMEOUT
// elapses before its implicit transaction finalises.
var QueryTimedout = fmt.Errorf("the query was not executed in time")

// InvalidParam is returned when a SET statement names a protected
// parameter (cnf.Settings.Query.ProtectedParams).
type InvalidParam struct {
	Name string
}

func (e *InvalidParam) Error() string {
	return fmt.Sprintf("found $%s but this is a reserved parameter name", e.Name)
}

// NsNotAllowed is returned when a USE statement requests a namespace the
// session's authentication level does not permit.
type NsNotAllowed struct {
	NS string
}

func (e *NsNotAllowed) Error() string {
	return fmt.Sprintf("you don't have permission to access the '%s' namespace", e.NS)
}

// DbNotAllowed is returned when a USE statement requests a database the
// session's authentication level does not permit.
type DbNotAllowed struct {
	DB string
}

func (e *DbNotAllowed) Error() string {
	return fmt.Sprintf("you don't have permission to access the '%s' database", e.DB)
}

// TxFailure is returned when the underlying kvs.Store fails to open a
// transaction.
type TxFailure struct {
	Message string
}

func (e *TxFailure) Error() string {
	return fmt.Sprintf("failed to open a transaction: %s", e.Message)
}

// InvalidArguments is returned by the (currently unimplemented) compute
// layer when a statement's arguments do not type-check; carried here so
// the executor has a stable error shape to surface once compute exists.
type InvalidArguments struct {
	Name    string
	Message string
}

func (e *InvalidArguments) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Name, e.Message)
}

// OptionNotAllowed is returned by OPTION when the session's
// authentication level does not satisfy needs(Db)/check(Db) — an
// authorization failure, not a typo in the option's name. Sits
// alongside NsNotAllowed/DbNotAllowed in the Authorization kind (§7).
type OptionNotAllowed struct {
	Name string
}

func (e *OptionNotAllowed) Error() string {
	return fmt.Sprintf("you don't have permission to set the '%s' option", e.Name)
}

// UnknownOption is returned by OPTION when given a name this executor
// does not recognise. §9's open question flags "unknown name breaks
// the loop vs. is silently ignored" as a design choice; this module
// chooses to break the loop with an error (DESIGN.md records the
// decision).
type UnknownOption struct {
	Name string
}

func (e *UnknownOption) Error() string {
	return fmt.Sprintf("unknown option '%s'", e.Name)
}
