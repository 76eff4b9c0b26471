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

package kvs

import "fmt"

// ErrKeyNotFound is returned by Txn.Get when the requested key is absent.
var ErrKeyNotFound = fmt.Errorf("key not found")

// ErrTxClosed is returned when Commit, Cancel, Get, Put, or Del is called
// on a transaction that has already been closed.
var ErrTxClosed = fmt.Errorf("transaction is already closed")

// ErrTxReadOnly is returned when Put or Del is attempted on a transaction
// opened with write set to false.
var ErrTxReadOnly = fmt.Errorf("transaction is read-only")

// UnknownSchemeError occurs when Open is asked for a storage backend which
// has not been registered.
type UnknownSchemeError struct {
	Scheme string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("no kvs.Store registered for scheme %q", e.Scheme)
}
