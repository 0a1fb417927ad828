// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nfthub/kv"
	"github.com/vechain/nfthub/metrics"
	"github.com/vechain/nfthub/stackedmap"
)

// StoreBucket is the kv bucket holding all contract storage.
const StoreBucket = kv.Bucket("st/")

// metricStorageOps counts storage slots read from and written to the db.
var metricStorageOps = metrics.LazyLoadCounterVec("state_storage_ops_count", []string{"op"})

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr string
	key  string
}

// State manages contract storage of the hub chain.
type State struct {
	db kv.Getter
	sm *stackedmap.StackedMap[storageKey, []byte]
}

// New create state object on top of the kv store.
func New(db kv.Getter) *State {
	s := &State{db: StoreBucket.NewGetter(db)}
	s.sm = stackedmap.New(s.load)
	return s
}

// load implements stackedmap.MapGetter.
func (s *State) load(k storageKey) ([]byte, bool, error) {
	val, err := s.db.Get(dbKey(k))
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, true, nil
		}
		return nil, false, err
	}
	metricStorageOps().AddWithLabel(1, map[string]string{"op": "read"})
	return val, true, nil
}

// GetStorage returns raw storage value for the given address and key.
// A missing value is returned as nil.
func (s *State) GetStorage(addr string, key []byte) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, string(key)})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetStorage set raw storage value for the given address and key.
// Empty value deletes the key.
func (s *State) SetStorage(addr string, key, value []byte) {
	var cpy []byte
	if len(value) > 0 {
		cpy = append([]byte(nil), value...)
	}
	s.sm.Put(storageKey{addr, string(key)}, cpy)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr string, key []byte, enc func() ([]byte, error)) error {
	data, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetStorage(addr, key, data)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr string, key []byte, dec func([]byte) error) error {
	raw, err := s.GetStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// EncodeRLP stores val rlp encoded. A nil val deletes the key.
func (s *State) EncodeRLP(addr string, key []byte, val any) error {
	return s.EncodeStorage(addr, key, func() ([]byte, error) {
		if val == nil {
			return nil, nil
		}
		return rlp.EncodeToBytes(val)
	})
}

// DecodeRLP loads the rlp encoded value into val.
// The returned bool reports whether the key was present.
func (s *State) DecodeRLP(addr string, key []byte, val any) (bool, error) {
	found := false
	err := s.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		found = true
		return rlp.DecodeBytes(raw, val)
	})
	return found, err
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 {
		panic("state: cannot revert below the base level")
	}
	s.sm.PopTo(revision)
}

// Stage makes a stage object holding all cumulative changes.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	s.sm.Journal(func(k storageKey, v []byte) bool {
		changes[k] = v
		return true
	})
	return &Stage{changes: changes}
}

func dbKey(k storageKey) []byte {
	buf := make([]byte, 0, 1+len(k.addr)+len(k.key))
	buf = append(buf, byte(len(k.addr)))
	buf = append(buf, k.addr...)
	return append(buf, k.key...)
}
