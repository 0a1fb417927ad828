// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/api/utils"
	collection "github.com/vechain/nfthub/builtin/nft"
	"github.com/vechain/nfthub/runtime"
)

// Token is a collection token with its traits.
type Token struct {
	ID string `json:"id"`
	*collection.AllNftInfo
}

// Collection summarizes a collection.
type Collection struct {
	*collection.ContractInfo
	NumTokens uint64 `json:"num_tokens"`
}

// Transfer is the body of a token transfer.
type Transfer struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
}

type NFT struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *NFT {
	return &NFT{rt}
}

func (n *NFT) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	vars := mux.Vars(req)
	info, err := n.rt.NftInfo(vars["collection"], vars["id"])
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, Token{ID: vars["id"], AllNftInfo: info})
}

func (n *NFT) handleGetOwnerTokens(w http.ResponseWriter, req *http.Request) error {
	vars := mux.Vars(req)
	ids, err := n.rt.Tokens(vars["collection"], vars["owner"])
	if err != nil {
		return utils.CallError(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return utils.WriteJSON(w, ids)
}

func (n *NFT) handleGetCollection(w http.ResponseWriter, req *http.Request) error {
	addr := mux.Vars(req)["collection"]
	info, err := n.rt.Query(addr, collection.ContractInfoQuery{})
	if err != nil {
		return utils.CallError(err)
	}
	count, err := n.rt.Query(addr, collection.NumTokensQuery{})
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, Collection{
		ContractInfo: info.(*collection.ContractInfo),
		NumTokens:    count.(*collection.NumTokensResponse).Count,
	})
}

func (n *NFT) handleGetOwner(w http.ResponseWriter, req *http.Request) error {
	vars := mux.Vars(req)
	owner, err := n.rt.Query(vars["collection"], collection.OwnerOfQuery{TokenID: vars["id"]})
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, owner)
}

func (n *NFT) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body Transfer
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Sender == "" {
		return utils.BadRequest(errors.New("sender: required"))
	}
	if body.Recipient == "" {
		return utils.BadRequest(errors.New("recipient: required"))
	}
	vars := mux.Vars(req)
	res, err := n.rt.Execute(body.Sender, vars["collection"], collection.TransferMsg{TokenID: vars["id"], Recipient: body.Recipient}, nil)
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, res)
}

func (n *NFT) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{collection}").
		Methods(http.MethodGet).
		Name("nft_get_collection").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetCollection))
	sub.Path("/{collection}/tokens/{id}").
		Methods(http.MethodGet).
		Name("nft_get_token").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetToken))
	sub.Path("/{collection}/tokens/{id}/owner").
		Methods(http.MethodGet).
		Name("nft_get_token_owner").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetOwner))
	sub.Path("/{collection}/tokens/{id}/transfer").
		Methods(http.MethodPost).
		Name("nft_transfer_token").
		HandlerFunc(utils.WrapHandlerFunc(n.handleTransfer))
	sub.Path("/{collection}/owners/{owner}").
		Methods(http.MethodGet).
		Name("nft_get_owner_tokens").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetOwnerTokens))
}
