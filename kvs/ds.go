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

// Package kvs declares the key/value storage contract consumed by the
// query execution core. The storage engine itself — on-disk or in-memory,
// single-node or distributed — is an external collaborator (see spec §1
// and §6): this package only names the shape the executor and the
// statement evaluators rely on.
package kvs

import (
	"strings"

	"github.com/abcum/surreal/cnf"
)

// Store is a backing datastore capable of handing out transactions.
// Concrete implementations (an on-disk engine, a test double, ...) are
// registered with Register and selected by the scheme of cnf.Options.DB.Path.
type Store interface {
	// Transaction begins a new transaction against the store. When write
	// is true the transaction may mutate keys; when lock is true the
	// transaction additionally takes a row-level lock on touched keys.
	Transaction(write, lock bool) (Txn, error)
	// Close releases any resources held by the store.
	Close() error
}

// Txn represents a single key/value transaction. Exactly one of Commit or
// Cancel must be called before the transaction is discarded; calling
// either more than once, or using the transaction afterwards, is a
// programmer error.
type Txn interface {
	// Closed reports whether Commit or Cancel has already run.
	Closed() bool
	// Commit finalises every write performed through this transaction.
	Commit() error
	// Cancel discards every write performed through this transaction.
	Cancel() error

	// Get fetches the value stored under key, or ErrKeyNotFound.
	Get(key []byte) (val []byte, err error)
	// Put writes val under key unconditionally.
	Put(key, val []byte) error
	// Del removes key, if present.
	Del(key []byte) error
}

var builders = make(map[string]func(*cnf.Options) (Store, error))

// Register makes a named Store constructor available to Open. Third-party
// storage backends call this from an init func, mirroring the teacher's
// kvs.Register hook for its rixxdb/boltdb/mysql/pgsql adapters.
func Register(name string, build func(*cnf.Options) (Store, error)) {
	builders[name] = build
}

// Open selects a Store implementation by inspecting opts.DB.Path's scheme
// and constructs it. "memory" and the empty path select the in-process
// test double in kvs/mem.
func Open(opts *cnf.Options) (Store, error) {

	name := "mem"

	switch {
	case opts.DB.Path == "" || opts.DB.Path == "memory":
		name = "mem"
	default:
		if i := strings.Index(opts.DB.Path, "://"); i > 0 {
			name = opts.DB.Path[:i]
		}
	}

	build, ok := builders[name]
	if !ok {
		return nil, &UnknownSchemeError{Scheme: name}
	}

	return build(opts)

}
