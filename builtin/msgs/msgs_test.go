// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package msgs

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestCoins(t *testing.T) {
	assert.False(t, Coins{}.AllPositive())
	assert.False(t, Coins{NewCoin("token", 0)}.AllPositive())
	assert.False(t, Coins{{Denom: "token"}}.AllPositive())
	assert.True(t, Coins{NewCoin("token", 1), NewCoin("stoken", 2)}.AllPositive())

	assert.Equal(t, "100token,5stoken", Coins{NewCoin("token", 100), NewCoin("stoken", 5)}.String())
	assert.Equal(t, "0token", Coin{Denom: "token"}.String())
}

func TestResponseBuilder(t *testing.T) {
	res := NewResponse().
		AddSubMessage(ReplyAlwaysOn(WasmExecute{Contract: "nft"}, 2)).
		AddMessage(StakingDelegate{Validator: "v", Amount: Coin{"token", uint256.NewInt(1)}}).
		AddAttribute("action", "delegate").
		AddEvent(NewEvent("instantiate").Add("_contract_address", "nft"))

	assert.Len(t, res.Messages, 2)
	assert.Equal(t, ReplyAlways, res.Messages[0].ReplyOn)
	assert.Equal(t, uint64(2), res.Messages[0].ID)
	assert.Equal(t, ReplyNever, res.Messages[1].ReplyOn)
	assert.Equal(t, "staking/delegate", res.Messages[1].Msg.Route())

	v, ok := res.Attribute("action")
	assert.True(t, ok)
	assert.Equal(t, "delegate", v)

	addr, ok := res.Events[0].Attribute("_contract_address")
	assert.True(t, ok)
	assert.Equal(t, "nft", addr)

	_, ok = res.Events[0].Attribute("missing")
	assert.False(t, ok)
}
