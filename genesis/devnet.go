// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"

	"github.com/vechain/nfthub/builtin/hub"
)

// DevAccounts are funded in solo mode.
var DevAccounts = []string{"creator", "alice", "bob"}

// NewDevnet creates the genesis for solo mode, with a hub ready to take deposits.
func NewDevnet() *Genesis {
	launchTime := uint64(1571797419)

	gen := &Genesis{
		ChainID:    "nfthub-devnet",
		Height:     1,
		LaunchTime: launchTime,
		Staking: Staking{
			UnbondingSeconds: 100,
			RewardPPM:        100,
			RewardPool:       []Coin{{Denom: "token", Amount: "1000000000000"}},
		},
		Hub: &Hub{
			Creator: DevAccounts[0],
			Label:   "alliance-hub",
			Msg: hub.InstantiateMsg{
				NFTCodeID:        1,
				UnbondingSeconds: 100,
				Collection:       hub.CollectionInfo{Name: "Alliance NFT Collection", Symbol: "ANC"},
			},
		},
	}
	for i := 1; i <= 3; i++ {
		gen.Staking.Validators = append(gen.Staking.Validators, fmt.Sprintf("validator%d", i))
	}
	for _, addr := range DevAccounts {
		gen.Accounts = append(gen.Accounts, Account{
			Address: addr,
			Balance: []Coin{{Denom: "token", Amount: "1000000000000000000000"}},
		})
	}
	return gen
}
