// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/staking"
)

type Delegation struct {
	Validator      string    `json:"validator"`
	Amount         msgs.Coin `json:"amount"`
	PendingRewards msgs.Coin `json:"pending_rewards"`
}

type Unbonding struct {
	Validator  string    `json:"validator"`
	Amount     msgs.Coin `json:"amount"`
	Completion uint64    `json:"completion_time"`
}

func convertDelegation(d *staking.Delegation) Delegation {
	return Delegation{
		Validator:      d.Validator,
		Amount:         msgs.Coin{Denom: d.Denom, Amount: d.Amount},
		PendingRewards: msgs.Coin{Denom: d.Denom, Amount: d.Pending},
	}
}
