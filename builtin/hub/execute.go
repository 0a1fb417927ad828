// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/hub/lifecycle"
	"github.com/vechain/nfthub/builtin/hub/reverts"
	"github.com/vechain/nfthub/builtin/hub/selector"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/xenv"
)

// Execute runs one hub command. All validation happens before any message is built,
// so a failing command emits nothing.
func (h *Hub) Execute(env xenv.Env, info xenv.MessageInfo, msg ExecuteMsg) (res *msgs.Response, err error) {
	if msg == nil {
		return nil, errors.New("nil hub command")
	}
	defer func() {
		metricCommands().AddWithLabel(1, map[string]string{"command": msg.Command(), "status": status(err)})
		if err != nil {
			logger.Debug("command failed", "command", msg.Command(), "sender", info.Sender, "err", err)
		}
	}()

	switch m := msg.(type) {
	case Delegate:
		return h.delegate(env, info)
	case StartUnbonding:
		return h.startUnbonding(env, info, m.TokenID)
	case Redelegate:
		return h.redelegate(env, info, m.TokenID)
	case ClaimRewards:
		return h.claimRewards(info, m.TokenID)
	case RedeemBond:
		return h.redeemBond(env, info, m.TokenID)
	default:
		return nil, errors.Errorf("unknown hub command %T", msg)
	}
}

func (h *Hub) delegate(env xenv.Env, info xenv.MessageInfo) (*msgs.Response, error) {
	cfg, collection, err := h.cfg.RequireCollection()
	if err != nil {
		return nil, err
	}
	if !info.Funds.AllPositive() {
		return nil, reverts.ErrNoFundsReceived
	}
	validators, err := h.listValidators()
	if err != nil {
		return nil, err
	}

	round := selector.NewRound(env.Block.Height, len(validators))
	picked := make([]string, 0, len(info.Funds))
	for range info.Funds {
		v, err := round.Next(validators)
		if err != nil {
			return nil, err
		}
		picked = append(picked, v)
	}

	records, err := lifecycle.Delegated(info.Funds, picked, env.Block.Time)
	if err != nil {
		return nil, err
	}
	tokenID := strconv.FormatUint(cfg.MintedNFTs, 10)
	mint, err := mintMsg(collection, tokenID, info.Sender, env.Block.Height, records)
	if err != nil {
		return nil, err
	}

	res := msgs.NewResponse().AddSubMessage(msgs.ReplyAlwaysOn(mint, uint64(ReplyMintNFT)))
	for i, coin := range info.Funds {
		res.AddMessage(msgs.StakingDelegate{Validator: picked[i], Amount: coin})
	}
	return res.
		AddAttribute("action", "delegate").
		AddAttribute("sender", info.Sender).
		AddAttribute("token_id", tokenID), nil
}

func (h *Hub) startUnbonding(env xenv.Env, info xenv.MessageInfo, tokenID string) (*msgs.Response, error) {
	t, err := h.owned(info.Sender, tokenID)
	if err != nil {
		return nil, err
	}
	updated, err := lifecycle.StartUnbonding(tokenID, t.records, env.Block.Time, t.cfg.UnbondingSeconds)
	if err != nil {
		return nil, err
	}
	update, err := updateMsg(t, updated)
	if err != nil {
		return nil, err
	}

	res := msgs.NewResponse().AddSubMessage(msgs.ReplyAlwaysOn(update, uint64(ReplyUpdateUnbonding)))
	for _, r := range t.records {
		res.AddMessage(msgs.StakingUndelegate{Validator: r.Validator, Amount: coinOf(r)})
	}
	return res.
		AddAttribute("action", "start_unbonding").
		AddAttribute("sender", info.Sender).
		AddAttribute("token_id", tokenID), nil
}

func (h *Hub) redelegate(env xenv.Env, info xenv.MessageInfo, tokenID string) (*msgs.Response, error) {
	t, err := h.owned(info.Sender, tokenID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckRedelegate(tokenID, t.records, env.Block.Time); err != nil {
		return nil, err
	}
	validators, err := h.listValidators()
	if err != nil {
		return nil, err
	}

	round := selector.NewRound(env.Block.Height, len(validators))
	destinations := make([]string, 0, len(t.records))
	for _, r := range t.records {
		candidates := slices.DeleteFunc(slices.Clone(validators), func(v string) bool { return v == r.Validator })
		dst, err := round.Next(candidates)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, dst)
	}

	updated, err := lifecycle.Redelegate(tokenID, t.records, env.Block.Time, t.cfg.UnbondingSeconds, destinations)
	if err != nil {
		return nil, err
	}
	update, err := updateMsg(t, updated)
	if err != nil {
		return nil, err
	}

	res := msgs.NewResponse().AddSubMessage(msgs.ReplyAlwaysOn(update, uint64(ReplyUpdateRedelegate)))
	for i, r := range t.records {
		res.AddMessage(msgs.StakingRedelegate{
			SrcValidator: r.Validator,
			DstValidator: destinations[i],
			Amount:       coinOf(r),
		})
	}
	return res.
		AddAttribute("action", "redelegate").
		AddAttribute("sender", info.Sender).
		AddAttribute("token_id", tokenID), nil
}

// claimRewards leaves the records untouched.
func (h *Hub) claimRewards(info xenv.MessageInfo, tokenID string) (*msgs.Response, error) {
	t, err := h.owned(info.Sender, tokenID)
	if err != nil {
		return nil, err
	}

	res := msgs.NewResponse()
	for _, r := range t.records {
		res.AddMessage(msgs.ClaimRewards{Validator: r.Validator, Denom: r.Denom})
	}
	return res.
		AddAttribute("action", "claim_rewards").
		AddAttribute("sender", info.Sender).
		AddAttribute("token_id", tokenID), nil
}

func (h *Hub) redeemBond(env xenv.Env, info xenv.MessageInfo, tokenID string) (*msgs.Response, error) {
	t, err := h.owned(info.Sender, tokenID)
	if err != nil {
		return nil, err
	}
	updated, err := lifecycle.RedeemBond(tokenID, t.records, env.Block.Time)
	if err != nil {
		return nil, err
	}
	update, err := updateMsg(t, updated)
	if err != nil {
		return nil, err
	}

	res := msgs.NewResponse().AddSubMessage(msgs.ReplyAlwaysOn(update, uint64(ReplyUpdateRedeemBond)))
	for _, r := range t.records {
		res.AddMessage(msgs.BankSend{ToAddress: info.Sender, Amount: msgs.Coins{coinOf(r)}})
	}
	return res.
		AddAttribute("action", "redeem_bond").
		AddAttribute("sender", info.Sender).
		AddAttribute("token_id", tokenID), nil
}
