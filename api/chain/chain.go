// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/api/utils"
	"github.com/vechain/nfthub/runtime"
)

// Advance moves the head of a solo chain.
type Advance struct {
	Blocks  uint64 `json:"blocks"`
	Seconds uint64 `json:"seconds"`
}

type Chain struct {
	rt   *runtime.Runtime
	solo bool
}

// New creates the chain api. Advancing the head is only allowed in solo mode.
func New(rt *runtime.Runtime, solo bool) *Chain {
	return &Chain{rt, solo}
}

func (c *Chain) handleGetHead(w http.ResponseWriter, _ *http.Request) error {
	head, err := c.rt.Head()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, head)
}

func (c *Chain) handleAdvance(w http.ResponseWriter, req *http.Request) error {
	if !c.solo {
		return utils.HTTPError(errors.New("advancing the chain requires solo mode"), http.StatusForbidden)
	}
	var body Advance
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Blocks == 0 {
		return utils.BadRequest(errors.New("blocks: must be positive"))
	}
	head, err := c.rt.Advance(body.Blocks, body.Seconds)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, head)
}

func (c *Chain) handleGetValidators(w http.ResponseWriter, _ *http.Request) error {
	vals, err := c.rt.Validators()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, vals)
}

func (c *Chain) handleGetContract(w http.ResponseWriter, req *http.Request) error {
	info, err := c.rt.Contract(mux.Vars(req)["address"])
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, info)
}

func (c *Chain) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/head").
		Methods(http.MethodGet).
		Name("chain_get_head").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetHead))
	sub.Path("/advance").
		Methods(http.MethodPost).
		Name("chain_advance").
		HandlerFunc(utils.WrapHandlerFunc(c.handleAdvance))
	sub.Path("/validators").
		Methods(http.MethodGet).
		Name("chain_get_validators").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetValidators))
	sub.Path("/contracts/{address}").
		Methods(http.MethodGet).
		Name("chain_get_contract").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetContract))
}
