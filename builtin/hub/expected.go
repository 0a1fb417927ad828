// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"github.com/vechain/nfthub/builtin/nft"
)

// NFTQuerier reads the NFT collection the hub mints into.
type NFTQuerier interface {
	AllNftInfo(contract, tokenID string) (*nft.AllNftInfo, error)
}

// ValidatorDirectory lists the validators delegations can go to.
type ValidatorDirectory interface {
	ListValidators() ([]string, error)
}
