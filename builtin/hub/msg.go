// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

// CollectionInfo names the NFT collection created at instantiation.
type CollectionInfo struct {
	Name   string `json:"name" yaml:"name"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// InstantiateMsg provisions a hub.
type InstantiateMsg struct {
	NFTCodeID        uint64         `json:"cw721_code_id" yaml:"cw721_code_id"`
	UnbondingSeconds uint64         `json:"unbonding_seconds" yaml:"unbonding_seconds"`
	Collection       CollectionInfo `json:"cw721_collection" yaml:"cw721_collection"`
}

// ExecuteMsg is one of the hub commands.
type ExecuteMsg interface {
	Command() string
}

type Delegate struct{}

type StartUnbonding struct {
	TokenID string `json:"token_id"`
}

type Redelegate struct {
	TokenID string `json:"token_id"`
}

type ClaimRewards struct {
	TokenID string `json:"token_id"`
}

type RedeemBond struct {
	TokenID string `json:"token_id"`
}

func (Delegate) Command() string       { return "delegate" }
func (StartUnbonding) Command() string { return "start_unbonding" }
func (Redelegate) Command() string     { return "redelegate" }
func (ClaimRewards) Command() string   { return "claim_rewards" }
func (RedeemBond) Command() string     { return "redeem_bond" }

// GetConfig queries the hub configuration.
type GetConfig struct{}
