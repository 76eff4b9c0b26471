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

// Package mem is an in-process kvs.Store, registered under the "mem" and
// "memory" schemes. It is the test double the executor's own test suite
// runs against; the teacher's equivalent (db/cache.go's sync.Map-backed
// cache) has no notion of transaction isolation, so this adds the
// snapshot-on-Begin / copy-on-Commit semantics a real engine would provide,
// fronted by a github.com/dgraph-io/ristretto read-through cache the same
// way a real storage engine fronts its B-tree with a hot-key cache.
package mem

import (
	"sync"

	"github.com/dgraph-io/ristretto"

	"github.com/abcum/surreal/cnf"
	"github.com/abcum/surreal/kvs"
)

func init() {
	build := func(*cnf.Options) (kvs.Store, error) { return New() }
	kvs.Register("mem", build)
	kvs.Register("memory", build)
}

// Store is a process-local, map-backed kvs.Store.
type Store struct {
	mu   sync.Mutex
	data map[string][]byte
	gen  uint64
	hot  *ristretto.Cache
}

// New creates an empty Store with its read-through cache warmed up.
func New() (*Store, error) {

	hot, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &Store{
		data: make(map[string][]byte),
		hot:  hot,
	}, nil

}

// Close releases the read-through cache.
func (s *Store) Close() error {
	s.hot.Close()
	return nil
}

// Transaction begins a new Txn over a consistent snapshot of the store.
// The lock argument is ignored: no keys are locked, and isolation comes
// from the snapshot alone.
func (s *Store) Transaction(write, lock bool) (kvs.Txn, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		snap[k] = v
	}

	return &Tx{
		store: s,
		write: write,
		base:  s.gen,
		view:  snap,
		puts:  make(map[string][]byte),
		dels:  make(map[string]bool),
	}, nil

}

// Tx is a single kvs.Txn over Store. Reads are served from an
// immutable snapshot taken at Begin; writes are buffered locally and
// only applied to the shared map on Commit, matching the "exactly one
// commit/cancel" contract the executor relies on.
type Tx struct {
	store *Store
	write bool
	base  uint64
	view  map[string][]byte
	puts  map[string][]byte
	dels  map[string]bool
	done  bool
}

// Closed reports whether Commit or Cancel has already been called.
func (tx *Tx) Closed() bool {
	return tx.done
}

// Get returns the value at key as seen at the start of the transaction,
// overlaid with this transaction's own uncommitted writes.
func (tx *Tx) Get(key []byte) ([]byte, error) {

	if tx.done {
		return nil, kvs.ErrTxClosed
	}

	k := string(key)

	if tx.dels[k] {
		return nil, kvs.ErrKeyNotFound
	}
	if v, ok := tx.puts[k]; ok {
		return v, nil
	}
	if v, ok := tx.hotGet(k); ok {
		return v, nil
	}
	if v, ok := tx.view[k]; ok {
		return v, nil
	}

	return nil, kvs.ErrKeyNotFound

}

func (tx *Tx) hotGet(k string) ([]byte, bool) {
	// The shared cache holds the latest committed values, so it is only
	// consulted while no commit has landed since this snapshot was taken.
	tx.store.mu.Lock()
	fresh := tx.store.gen == tx.base
	tx.store.mu.Unlock()
	if !fresh {
		return nil, false
	}
	if v, ok := tx.store.hot.Get(k); ok {
		if b, ok := v.([]byte); ok {
			return b, true
		}
	}
	return nil, false
}

// Put buffers a write, visible to this transaction but not to others
// until Commit.
func (tx *Tx) Put(key, val []byte) error {

	if tx.done {
		return kvs.ErrTxClosed
	}
	if !tx.write {
		return kvs.ErrTxReadOnly
	}

	k := string(key)
	delete(tx.dels, k)
	tx.puts[k] = append([]byte{}, val...)

	return nil

}

// Del buffers a delete, visible to this transaction but not to others
// until Commit.
func (tx *Tx) Del(key []byte) error {

	if tx.done {
		return kvs.ErrTxClosed
	}
	if !tx.write {
		return kvs.ErrTxReadOnly
	}

	k := string(key)
	delete(tx.puts, k)
	tx.dels[k] = true

	return nil

}

// Commit applies every buffered write to the shared map and warms the
// read-through cache with the new values.
func (tx *Tx) Commit() error {

	if tx.done {
		return kvs.ErrTxClosed
	}
	tx.done = true

	if !tx.write {
		return nil
	}

	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()

	for k, v := range tx.puts {
		tx.store.data[k] = v
		tx.store.hot.Set(k, v, int64(len(v)))
	}
	for k := range tx.dels {
		delete(tx.store.data, k)
		tx.store.hot.Del(k)
	}
	tx.store.gen++

	return nil

}

// Cancel discards every buffered write.
func (tx *Tx) Cancel() error {

	if tx.done {
		return kvs.ErrTxClosed
	}
	tx.done = true
	tx.puts = nil
	tx.dels = nil

	return nil

}
