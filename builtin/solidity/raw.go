// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"
)

// Raw is a single storage slot holding an rlp encoded T.
type Raw[T any] struct {
	context *Context
	slot    []byte
}

func NewRaw[T any](context *Context, slot string) *Raw[T] {
	return &Raw[T]{context: context, slot: []byte(slot)}
}

// Get loads the slot. The bool reports whether the slot was ever set.
func (r *Raw[T]) Get() (value T, found bool, err error) {
	err = r.context.state.DecodeStorage(r.context.address, r.slot, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		found = true
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (r *Raw[T]) Set(value T) error {
	return r.context.state.EncodeStorage(r.context.address, r.slot, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
