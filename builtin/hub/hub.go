// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package hub is the NFT delegation hub contract.
//
// Deposits are delegated across pseudo randomly picked validators and represented by an NFT
// whose traits are the ledger of record for those delegations. The hub keeps no copy of the
// records: every command reads them from the collection, computes the replacement set and
// submits it back together with the staking instructions.
package hub

import (
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/hub/config"
	"github.com/vechain/nfthub/builtin/hub/record"
	"github.com/vechain/nfthub/builtin/hub/reverts"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/nft"
	"github.com/vechain/nfthub/builtin/solidity"
	"github.com/vechain/nfthub/log"
	"github.com/vechain/nfthub/xenv"
)

var logger = log.WithContext("pkg", "hub")

// Hub binds the contract logic to one hub address and its collaborators.
type Hub struct {
	addr       string
	cfg        *config.Store
	nfts       NFTQuerier
	validators ValidatorDirectory
}

// New creates a hub over the storage of ctx.
func New(ctx *solidity.Context, nfts NFTQuerier, validators ValidatorDirectory) *Hub {
	return &Hub{
		addr:       ctx.Address(),
		cfg:        config.NewStore(ctx),
		nfts:       nfts,
		validators: validators,
	}
}

// Instantiate stores the initial configuration and asks the host to create the NFT collection,
// with the hub as minter and admin.
func (h *Hub) Instantiate(env xenv.Env, info xenv.MessageInfo, msg InstantiateMsg) (*msgs.Response, error) {
	if _, err := h.cfg.Get(); err == nil {
		return nil, reverts.New("hub already instantiated")
	}
	if _, err := h.cfg.Init(msg.UnbondingSeconds); err != nil {
		return nil, err
	}

	create := msgs.WasmInstantiate{
		Admin:  env.Contract.Address,
		CodeID: msg.NFTCodeID,
		Label:  msg.Collection.Name,
		Msg: nft.InstantiateMsg{
			Name:   msg.Collection.Name,
			Symbol: msg.Collection.Symbol,
			Minter: env.Contract.Address,
		},
		Funds: info.Funds,
	}

	logger.Info("hub instantiated", "address", h.addr, "unbonding", msg.UnbondingSeconds, "collection", msg.Collection.Name)
	return msgs.NewResponse().
		AddSubMessage(msgs.ReplyAlwaysOn(create, uint64(ReplyInstantiate))).
		AddAttribute("action", "instantiate_alliance_hub").
		AddAttribute("sender", info.Sender).
		AddAttribute("cw721_label", msg.Collection.Name), nil
}

// GetConfig returns the hub configuration.
func (h *Hub) GetConfig() (config.Config, error) {
	return h.cfg.Get()
}

// Query answers read only requests.
func (h *Hub) Query(msg any) (any, error) {
	switch msg.(type) {
	case GetConfig, *GetConfig:
		return h.GetConfig()
	default:
		return nil, errors.Errorf("unknown hub query %T", msg)
	}
}

// token is an NFT loaded for a record touching command.
type token struct {
	id         string
	collection string
	info       *nft.AllNftInfo
	records    []record.Record
	cfg        config.Config
}

// owned loads the token and checks that sender owns it and that it holds delegations.
func (h *Hub) owned(sender, tokenID string) (*token, error) {
	cfg, collection, err := h.cfg.RequireCollection()
	if err != nil {
		return nil, err
	}
	info, err := h.nfts.AllNftInfo(collection, tokenID)
	if err != nil {
		return nil, err
	}
	if info.Owner != sender {
		return nil, &reverts.ErrUnauthorized{Expected: info.Owner, Received: sender}
	}
	if len(info.Extension.Attributes) == 0 {
		return nil, &reverts.ErrNoDelegationsFound{TokenID: tokenID}
	}
	records, err := record.FromTraits(info.Extension.Attributes)
	if err != nil {
		return nil, err
	}
	return &token{
		id:         tokenID,
		collection: collection,
		info:       info,
		records:    records,
		cfg:        cfg,
	}, nil
}

func (h *Hub) listValidators() ([]string, error) {
	validators, err := h.validators.ListValidators()
	if err != nil {
		return nil, errors.Wrap(err, "list validators")
	}
	if len(validators) == 0 {
		return nil, reverts.ErrNoValidatorsFound
	}
	return validators, nil
}
