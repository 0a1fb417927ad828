// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nfthub/builtin/hub/reverts"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/nft"
	"github.com/vechain/nfthub/xenv"
)

func TestInstantiate(t *testing.T) {
	h := newHub(t)
	res, err := h.Instantiate(h.env, xenv.MessageInfo{Sender: creator}, InstantiateMsg{
		NFTCodeID:        7,
		UnbondingSeconds: unbonding,
		Collection:       CollectionInfo{Name: "Alliance NFT Collection", Symbol: "ANC"},
	})
	require.NoError(t, err)

	require.Len(t, res.Messages, 1)
	sub := res.Messages[0]
	assert.Equal(t, uint64(ReplyInstantiate), sub.ID)
	assert.Equal(t, msgs.ReplyAlways, sub.ReplyOn)
	assert.Equal(t, msgs.WasmInstantiate{
		Admin:  hubAddr,
		CodeID: 7,
		Label:  "Alliance NFT Collection",
		Msg:    nft.InstantiateMsg{Name: "Alliance NFT Collection", Symbol: "ANC", Minter: hubAddr},
	}, sub.Msg)
	assert.Equal(t, []msgs.Attribute{
		{Key: "action", Value: "instantiate_alliance_hub"},
		{Key: "sender", Value: creator},
		{Key: "cw721_label", Value: "Alliance NFT Collection"},
	}, res.Attributes)

	cfg, err := h.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.MintedNFTs)
	assert.Equal(t, unbonding, cfg.UnbondingSeconds)
	assert.False(t, cfg.Provisioned())

	_, err = h.Instantiate(h.env, xenv.MessageInfo{Sender: creator}, InstantiateMsg{})
	assert.True(t, reverts.IsRevertErr(err))

	q, err := h.Query(GetConfig{})
	require.NoError(t, err)
	assert.Equal(t, cfg, q)
}

func TestDelegateRequiresCollection(t *testing.T) {
	h := newHub(t)
	_, err := h.Instantiate(h.env, xenv.MessageInfo{Sender: creator}, InstantiateMsg{UnbondingSeconds: unbonding})
	require.NoError(t, err)

	_, err = h.Execute(h.env, xenv.MessageInfo{Sender: creator, Funds: msgs.Coins{msgs.NewCoin("token", 100)}}, Delegate{})
	assert.ErrorIs(t, err, reverts.ErrCollaboratorNotProvisioned)
}

func TestDelegatePreconditions(t *testing.T) {
	h := provisioned(t)

	_, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator}, Delegate{})
	assert.ErrorIs(t, err, reverts.ErrNoFundsReceived)

	_, err = h.Execute(h.env, xenv.MessageInfo{Sender: creator, Funds: msgs.Coins{msgs.NewCoin("token", 0)}}, Delegate{})
	assert.ErrorIs(t, err, reverts.ErrNoFundsReceived)

	h.validators.validators = nil
	_, err = h.Execute(h.env, xenv.MessageInfo{Sender: creator, Funds: msgs.Coins{msgs.NewCoin("token", 100)}}, Delegate{})
	assert.ErrorIs(t, err, reverts.ErrNoValidatorsFound)

	h.validators.err = errors.New("directory down")
	_, err = h.Execute(h.env, xenv.MessageInfo{Sender: creator, Funds: msgs.Coins{msgs.NewCoin("token", 100)}}, Delegate{})
	assert.Error(t, err)
	assert.False(t, reverts.IsRevertErr(err))
}

func TestDelegateSingleCoin(t *testing.T) {
	h := provisioned(t)

	res, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator, Funds: msgs.Coins{msgs.NewCoin("token", 100)}}, Delegate{})
	require.NoError(t, err)

	require.Len(t, res.Messages, 2)
	mint := res.Messages[0]
	assert.Equal(t, uint64(ReplyMintNFT), mint.ID)
	assert.Equal(t, msgs.ReplyAlways, mint.ReplyOn)
	assert.Equal(t, msgs.WasmExecute{
		Contract: nftAddr,
		Msg: nft.MintMsg{
			TokenID: "0",
			Owner:   creator,
			Extension: nft.Metadata{
				Name:        "Alliance NFT #0",
				Description: "12345",
				Attributes: []nft.Trait{{
					DisplayType: "Delegated",
					TraitType:   "validator1",
					Value:       "100@token",
					Timestamp:   blockTime,
				}},
			},
		},
	}, mint.Msg)

	// (12345 % 4) % 3 = 1
	assert.Equal(t, msgs.NewSubMsg(msgs.StakingDelegate{Validator: "validator1", Amount: msgs.NewCoin("token", 100)}), res.Messages[1])
	assert.Equal(t, []msgs.Attribute{
		{Key: "action", Value: "delegate"},
		{Key: "sender", Value: creator},
		{Key: "token_id", Value: "0"},
	}, res.Attributes)

	cfg, err := h.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.MintedNFTs, "counter moves only on acknowledgement")
}

func TestDelegateTwoCoinsFourValidators(t *testing.T) {
	h := provisioned(t)
	h.validators.validators = []string{"validator", "validator1", "validator2", "validator3"}

	funds := msgs.Coins{msgs.NewCoin("token", 100), msgs.NewCoin("stoken", 100)}
	res, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator, Funds: funds}, Delegate{})
	require.NoError(t, err)

	require.Len(t, res.Messages, 3)
	mint := res.Messages[0].Msg.(msgs.WasmExecute).Msg.(nft.MintMsg)
	assert.Len(t, mint.Extension.Attributes, 2)

	// (12345 % 5) % 4 = 0, then (12345 % 4) % 3 = 1
	assert.Equal(t, msgs.StakingDelegate{Validator: "validator", Amount: msgs.NewCoin("token", 100)}, res.Messages[1].Msg)
	assert.Equal(t, msgs.StakingDelegate{Validator: "validator1", Amount: msgs.NewCoin("stoken", 100)}, res.Messages[2].Msg)

	cfg, _ := h.GetConfig()
	assert.Equal(t, uint64(0), cfg.MintedNFTs)

	_, err = h.Reply(h.env, msgs.Reply{ID: uint64(ReplyMintNFT), Result: ok()})
	require.NoError(t, err)
	cfg, _ = h.GetConfig()
	assert.Equal(t, uint64(1), cfg.MintedNFTs)
}

func TestDelegateRejectsOversizedAmount(t *testing.T) {
	h := provisioned(t)
	huge := msgs.Coin{Denom: "token", Amount: new(uint256.Int).Lsh(uint256.NewInt(1), 130)}

	res, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator, Funds: msgs.Coins{huge}}, Delegate{})
	assert.Nil(t, res)
	var malformed *reverts.ErrMalformedRecord
	assert.True(t, errors.As(err, &malformed))
}

func TestOwnerChecks(t *testing.T) {
	h := provisioned(t)
	id := h.mint(t, msgs.Coins{msgs.NewCoin("token", 100)})

	for _, cmd := range []ExecuteMsg{
		StartUnbonding{TokenID: id},
		Redelegate{TokenID: id},
		ClaimRewards{TokenID: id},
		RedeemBond{TokenID: id},
	} {
		res, err := h.Execute(h.env, xenv.MessageInfo{Sender: "invalid_creator"}, cmd)
		assert.Nil(t, res)
		assert.EqualError(t, err, "Unauthorized NFT owner, expected 'creator', received 'invalid_creator'", cmd.Command())
	}

	_, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator}, StartUnbonding{TokenID: "42"})
	assert.ErrorIs(t, err, errNotFound)
}

func TestNoDelegations(t *testing.T) {
	h := provisioned(t)
	h.nfts.tokens["0"] = &nft.AllNftInfo{Owner: creator, Extension: nft.Metadata{Name: TokenName("0")}}

	for _, cmd := range []ExecuteMsg{
		StartUnbonding{TokenID: "0"},
		Redelegate{TokenID: "0"},
		ClaimRewards{TokenID: "0"},
		RedeemBond{TokenID: "0"},
	} {
		_, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator}, cmd)
		assert.EqualError(t, err, "NFT '0' has no delegations")
	}
}

func TestStartUnbonding(t *testing.T) {
	h := provisioned(t)
	h.validators.validators = []string{"validator", "validator1", "validator2", "validator3"}
	id := h.mint(t, msgs.Coins{msgs.NewCoin("token", 100), msgs.NewCoin("stoken", 50)})

	now := blockTime + 10
	res, err := h.Execute(h.at(now), xenv.MessageInfo{Sender: creator}, StartUnbonding{TokenID: id})
	require.NoError(t, err)

	require.Len(t, res.Messages, 3)
	assert.Equal(t, uint64(ReplyUpdateUnbonding), res.Messages[0].ID)
	update := res.Messages[0].Msg.(msgs.WasmExecute).Msg.(nft.UpdateExtensionMsg)
	assert.Equal(t, id, update.TokenID)
	assert.Equal(t, "Alliance NFT #0", update.Extension.Name)
	for _, tr := range update.Extension.Attributes {
		assert.Equal(t, "Unbonding", tr.DisplayType)
		assert.Equal(t, now+unbonding, tr.Timestamp)
	}
	assert.Equal(t, msgs.StakingUndelegate{Validator: "validator", Amount: msgs.NewCoin("token", 100)}, res.Messages[1].Msg)
	assert.Equal(t, msgs.StakingUndelegate{Validator: "validator1", Amount: msgs.NewCoin("stoken", 50)}, res.Messages[2].Msg)
	action, _ := res.Attribute("action")
	assert.Equal(t, "start_unbonding", action)

	h.nfts.apply(t, res.Messages[0].Msg)
	reply, err := h.Reply(h.env, msgs.Reply{ID: uint64(ReplyUpdateUnbonding), Result: ok()})
	require.NoError(t, err)
	action, _ = reply.Attribute("action")
	assert.Equal(t, "start_unbonding_reply", action)

	// second unbonding is rejected without emitting anything
	res, err = h.Execute(h.at(now), xenv.MessageInfo{Sender: creator}, StartUnbonding{TokenID: id})
	assert.Nil(t, res)
	assert.EqualError(t, err, "Cannot unbond the '0' NFT")
}

func TestRedelegate(t *testing.T) {
	h := provisioned(t)
	id := h.mint(t, msgs.Coins{msgs.NewCoin("token", 100)})

	res, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator}, Redelegate{TokenID: id})
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, uint64(ReplyUpdateRedelegate), res.Messages[0].ID)

	// candidates without validator1 are {validator, validator2}, (12345 % 3) % 2 = 0
	assert.Equal(t, msgs.StakingRedelegate{
		SrcValidator: "validator1",
		DstValidator: "validator",
		Amount:       msgs.NewCoin("token", 100),
	}, res.Messages[1].Msg)

	update := res.Messages[0].Msg.(msgs.WasmExecute).Msg.(nft.UpdateExtensionMsg)
	require.Len(t, update.Extension.Attributes, 1)
	assert.Equal(t, nft.Trait{
		DisplayType: "Redelegating",
		TraitType:   "validator",
		Value:       "100@token",
		Timestamp:   blockTime + unbonding,
	}, update.Extension.Attributes[0])

	h.nfts.apply(t, res.Messages[0].Msg)

	// pending redelegation blocks both redelegate and unbonding
	_, err = h.Execute(h.env, xenv.MessageInfo{Sender: creator}, Redelegate{TokenID: id})
	assert.EqualError(t, err, "Cannot redelegate the '0' NFT")
	_, err = h.Execute(h.env, xenv.MessageInfo{Sender: creator}, StartUnbonding{TokenID: id})
	assert.EqualError(t, err, "Cannot redelegate the '0' NFT")

	// settled redelegation may unbond
	_, err = h.Execute(h.at(blockTime+unbonding+1), xenv.MessageInfo{Sender: creator}, StartUnbonding{TokenID: id})
	assert.NoError(t, err)
}

func TestRedelegateWithoutAlternative(t *testing.T) {
	h := provisioned(t)
	h.validators.validators = []string{"validator"}
	id := h.mint(t, msgs.Coins{msgs.NewCoin("token", 100)})

	_, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator}, Redelegate{TokenID: id})
	assert.ErrorIs(t, err, reverts.ErrNoValidatorsFound)
}

func TestClaimRewards(t *testing.T) {
	h := provisioned(t)
	h.validators.validators = []string{"validator", "validator1", "validator2", "validator3"}
	id := h.mint(t, msgs.Coins{msgs.NewCoin("token", 100), msgs.NewCoin("stoken", 100)})
	before := h.nfts.tokens[id].Extension

	res, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator}, ClaimRewards{TokenID: id})
	require.NoError(t, err)
	assert.Equal(t, []msgs.SubMsg{
		msgs.NewSubMsg(msgs.ClaimRewards{Validator: "validator", Denom: "token"}),
		msgs.NewSubMsg(msgs.ClaimRewards{Validator: "validator1", Denom: "stoken"}),
	}, res.Messages)
	assert.Equal(t, before, h.nfts.tokens[id].Extension)
}

func TestRedeemBond(t *testing.T) {
	h := provisioned(t)
	id := h.mint(t, msgs.Coins{msgs.NewCoin("token", 100)})

	res, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator}, RedeemBond{TokenID: id})
	assert.Nil(t, res)
	assert.EqualError(t, err, "Cannot redeem bond of the '0' NFT")

	res, err = h.Execute(h.env, xenv.MessageInfo{Sender: creator}, StartUnbonding{TokenID: id})
	require.NoError(t, err)
	h.nfts.apply(t, res.Messages[0].Msg)

	res, err = h.Execute(h.at(blockTime+unbonding-1), xenv.MessageInfo{Sender: creator}, RedeemBond{TokenID: id})
	assert.Nil(t, res)
	var impossible *reverts.ErrRedeemBondImpossible
	assert.True(t, errors.As(err, &impossible))

	matured := blockTime + unbonding
	res, err = h.Execute(h.at(matured), xenv.MessageInfo{Sender: creator}, RedeemBond{TokenID: id})
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, uint64(ReplyUpdateRedeemBond), res.Messages[0].ID)
	assert.Equal(t, msgs.BankSend{ToAddress: creator, Amount: msgs.Coins{msgs.NewCoin("token", 100)}}, res.Messages[1].Msg)

	update := res.Messages[0].Msg.(msgs.WasmExecute).Msg.(nft.UpdateExtensionMsg)
	assert.Equal(t, "Unbonded", update.Extension.Attributes[0].DisplayType)
	assert.Equal(t, matured, update.Extension.Attributes[0].Timestamp)
}

func TestMalformedTraitsAreRejected(t *testing.T) {
	h := provisioned(t)
	h.nfts.tokens["0"] = &nft.AllNftInfo{Owner: creator, Extension: nft.Metadata{
		Attributes: []nft.Trait{{DisplayType: "Delegated", TraitType: "validator", Value: "100"}},
	}}

	_, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator}, ClaimRewards{TokenID: "0"})
	var malformed *reverts.ErrMalformedRecord
	assert.True(t, errors.As(err, &malformed))
}
