// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
)

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are rlp encoded. Missing keys decode to the zero value, or a fresh V when V is a pointer.
type Mapping[K Key, V any] struct {
	context *Context
	prefix  []byte
}

func NewMapping[K Key, V any](context *Context, name string) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, prefix: append([]byte(name), '/')}
}

func (m *Mapping[K, V]) position(key K) []byte {
	return append(append([]byte(nil), m.prefix...), key.Bytes()...)
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	value, _, err = m.Lookup(key)
	return
}

// Lookup is Get that also reports whether the key is present.
func (m *Mapping[K, V]) Lookup(key K) (value V, found bool, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		found = true
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetStorage(m.context.address, m.position(key), nil)
}
