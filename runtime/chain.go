// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/solidity"
	"github.com/vechain/nfthub/xenv"
)

// Head is the current block of the local chain.
type Head struct {
	ChainID string `json:"chain_id"`
	Height  uint64 `json:"height"`
	Time    uint64 `json:"time"`
}

func (h Head) block() xenv.BlockContext {
	return xenv.BlockContext{Height: h.Height, Time: h.Time, ChainID: h.ChainID}
}

type chain struct {
	head *solidity.Raw[Head]
}

func newChain(ctx *solidity.Context) *chain {
	return &chain{head: solidity.NewRaw[Head](ctx, "head")}
}

func (c *chain) get() (Head, error) {
	h, found, err := c.head.Get()
	if err != nil {
		return Head{}, err
	}
	if !found {
		return Head{}, errors.New("chain not initialized")
	}
	return h, nil
}
