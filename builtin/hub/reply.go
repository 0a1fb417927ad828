// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"fmt"
	"strconv"

	"github.com/vechain/nfthub/builtin/hub/reverts"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/xenv"
)

// ReplyID tags the submessages whose outcome comes back to the hub.
type ReplyID uint64

const (
	ReplyInstantiate ReplyID = iota + 1
	ReplyMintNFT
	ReplyUpdateRedelegate
	ReplyUpdateUnbonding
	ReplyUpdateRedeemBond
)

func (id ReplyID) String() string {
	switch id {
	case ReplyInstantiate:
		return "instantiate"
	case ReplyMintNFT:
		return "mint_nft"
	case ReplyUpdateRedelegate:
		return "redelegate"
	case ReplyUpdateUnbonding:
		return "start_unbonding"
	case ReplyUpdateRedeemBond:
		return "redeem_bond"
	default:
		return "unknown"
	}
}

// action is the wording used when the acknowledged call failed.
func (id ReplyID) action() string {
	switch id {
	case ReplyInstantiate:
		return "instantiating nft"
	case ReplyMintNFT:
		return "minting nft"
	default:
		return "updating nft"
	}
}

// Reply handles the acknowledgement of a submessage emitted by this hub.
// A failed acknowledgement is returned as an error so the whole originating call is rolled back.
func (h *Hub) Reply(env xenv.Env, reply msgs.Reply) (res *msgs.Response, err error) {
	id := ReplyID(reply.ID)
	defer func() {
		metricReplies().AddWithLabel(1, map[string]string{"reply": id.String(), "status": status(err)})
	}()

	switch id {
	case ReplyInstantiate, ReplyMintNFT, ReplyUpdateRedelegate, ReplyUpdateUnbonding, ReplyUpdateRedeemBond:
	default:
		return nil, reverts.New(fmt.Sprintf("Unknown reply id: %d", reply.ID))
	}

	if !reply.Result.IsOk() {
		logger.Warn("acknowledgement failed", "reply", id, "err", reply.Result.Err)
		return nil, &reverts.ErrAcknowledgementFailed{Action: id.action(), Upstream: reply.Result.Err}
	}

	switch id {
	case ReplyInstantiate:
		return h.instantiated(reply.Result.Ok)
	case ReplyMintNFT:
		cfg, err := h.cfg.IncrementMinted()
		if err != nil {
			return nil, err
		}
		return msgs.NewResponse().
			AddAttribute("action", "mint_nft_reply").
			AddAttribute("minted_nfts", strconv.FormatUint(cfg.MintedNFTs, 10)), nil
	case ReplyUpdateUnbonding:
		return msgs.NewResponse().AddAttribute("action", "start_unbonding_reply"), nil
	case ReplyUpdateRedelegate:
		return msgs.NewResponse().AddAttribute("action", "redelegate_reply"), nil
	default:
		return msgs.NewResponse().AddAttribute("action", "redeem_bond_reply"), nil
	}
}

func (h *Hub) instantiated(result *msgs.SubMsgResponse) (*msgs.Response, error) {
	var found *msgs.Event
	for i := range result.Events {
		if result.Events[i].Type == "instantiate" {
			found = &result.Events[i]
			break
		}
	}
	if found == nil {
		return nil, reverts.ErrNoInstantiateEvent
	}
	addr, ok := found.Attribute("_contract_address")
	if !ok || addr == "" {
		return nil, reverts.ErrNoContractAddressAttr
	}
	if _, err := h.cfg.SetCollection(addr); err != nil {
		return nil, err
	}

	logger.Info("nft collection provisioned", "hub", h.addr, "collection", addr)
	return msgs.NewResponse().
		AddAttribute("action", "instantiate_nft_reply").
		AddAttribute("nft_contract_address", addr), nil
}
