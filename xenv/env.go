// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xenv is the environment a contract executes in.
package xenv

import (
	"github.com/vechain/nfthub/builtin/msgs"
)

// BlockContext block context.
type BlockContext struct {
	Height  uint64
	Time    uint64 // unix seconds
	ChainID string
}

// ContractContext identifies the executing contract.
type ContractContext struct {
	Address string
}

// Env is passed to every contract entry point.
type Env struct {
	Block    BlockContext
	Contract ContractContext
}

// WithContract returns a copy of env bound to another contract.
func (e Env) WithContract(addr string) Env {
	e.Contract = ContractContext{Address: addr}
	return e
}

// MessageInfo describes the caller of an execute or instantiate.
type MessageInfo struct {
	Sender string
	Funds  msgs.Coins
}
