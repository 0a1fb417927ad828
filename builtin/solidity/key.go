// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import "strings"

type Key interface {
	Bytes() []byte
}

// StringKey keys a mapping by a plain string.
type StringKey string

func (k StringKey) Bytes() []byte { return []byte(k) }

// CompositeKey joins parts with a zero byte, so ("ab","c") and ("a","bc") never collide.
type CompositeKey []string

func (k CompositeKey) Bytes() []byte { return []byte(strings.Join(k, "\x00")) }
