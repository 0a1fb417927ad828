// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"errors"

	"github.com/holiman/uint256"
)

var errUnderflow = errors.New("uint256 underflow")

// Uint256 is a wrapper for storage and retrieval of an uint256. Similar to storing an uint256 in a smart contract.
// Values are stored big endian with leading zeros stripped, zero removes the slot.
type Uint256 struct {
	context *Context
	pos     []byte
}

func NewUint256(context *Context, slot string) *Uint256 {
	return &Uint256{context: context, pos: []byte(slot)}
}

func (u *Uint256) Get() (*uint256.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(storage), nil
}

func (u *Uint256) Set(value *uint256.Int) {
	if value == nil || value.IsZero() {
		u.context.state.SetStorage(u.context.address, u.pos, nil)
		return
	}
	u.context.state.SetStorage(u.context.address, u.pos, value.Bytes())
}

func (u *Uint256) Add(value *uint256.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	u.Set(storage.Add(storage, value))
	return nil
}

// Sub fails without writing if value exceeds the stored amount.
func (u *Uint256) Sub(value *uint256.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if storage.Lt(value) {
		return errUnderflow
	}
	u.Set(storage.Sub(storage, value))
	return nil
}
