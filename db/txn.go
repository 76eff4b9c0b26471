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
	"sync"

	"github.com/abcum/surreal/kvs"
)

// Txn is the shared transaction handle a request's statements run
// against: at most one is open at a time, and every statement either
// finds it already open (an explicit BEGIN/COMMIT block) or opens and
// closes its own implicit one. Grounded in db/mutex.go's single-lock,
// shared-state idiom and in the original Rust executor's
// `Arc<Mutex<Option<Transaction>>>` handle.
type Txn struct {
	mu     sync.Mutex
	kv     kvs.Txn
	write  bool
	closed bool
}

// open reports whether a transaction is currently held.
func (t *Txn) open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.kv != nil
}

// begin acquires a new kvs.Txn from store if none is already open. It is
// a no-op (per spec §4.3's BEGIN semantics) when a transaction is
// already in progress.
func (t *Txn) begin(store kvs.Store, write bool) error {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.kv != nil {
		return nil
	}

	kv, err := store.Transaction(write, write)
	if err != nil {
		return &TxFailure{Message: err.Error()}
	}

	t.kv = kv
	t.write = write
	t.closed = false

	return nil

}

// commit finalises the open transaction, converting a failure into
// QueryNotExecuted per spec §4.3's COMMIT semantics.
func (t *Txn) commit() error {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.kv == nil {
		return nil
	}

	err := t.kv.Commit()
	t.kv, t.closed = nil, true

	if err != nil {
		return &QueryNotExecuted{Message: err.Error()}
	}

	return nil

}

// cancel discards the open transaction's writes.
func (t *Txn) cancel() error {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.kv == nil {
		return nil
	}

	err := t.kv.Cancel()
	t.kv, t.closed = nil, true

	return err

}

// get/put/del proxy to the held kvs.Txn, for statement evaluators that
// need to read or write keys. The compute layer (out of scope for this
// module) is the only would-be caller today; these exist so the
// Transaction Handle component is a complete, usable abstraction on its
// own rather than inert plumbing.
func (t *Txn) get(key []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.kv == nil {
		return nil, kvs.ErrTxClosed
	}
	return t.kv.Get(key)
}

func (t *Txn) put(key, val []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.kv == nil {
		return kvs.ErrTxClosed
	}
	return t.kv.Put(key, val)
}

func (t *Txn) del(key []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.kv == nil {
		return kvs.ErrTxClosed
	}
	return t.kv.Del(key)
}
