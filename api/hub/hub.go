// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/api/utils"
	"github.com/vechain/nfthub/builtin/hub"
	"github.com/vechain/nfthub/runtime"
)

type Hub struct {
	rt   *runtime.Runtime
	addr string
}

func New(rt *runtime.Runtime, addr string) *Hub {
	return &Hub{rt, addr}
}

func (h *Hub) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := h.rt.Query(h.addr, hub.GetConfig{})
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, cfg)
}

func (h *Hub) handleDelegate(w http.ResponseWriter, req *http.Request) error {
	return h.execute(w, req, func(string) hub.ExecuteMsg { return hub.Delegate{} })
}

func (h *Hub) handleStartUnbonding(w http.ResponseWriter, req *http.Request) error {
	return h.execute(w, req, func(id string) hub.ExecuteMsg { return hub.StartUnbonding{TokenID: id} })
}

func (h *Hub) handleRedelegate(w http.ResponseWriter, req *http.Request) error {
	return h.execute(w, req, func(id string) hub.ExecuteMsg { return hub.Redelegate{TokenID: id} })
}

func (h *Hub) handleClaimRewards(w http.ResponseWriter, req *http.Request) error {
	return h.execute(w, req, func(id string) hub.ExecuteMsg { return hub.ClaimRewards{TokenID: id} })
}

func (h *Hub) handleRedeemBond(w http.ResponseWriter, req *http.Request) error {
	return h.execute(w, req, func(id string) hub.ExecuteMsg { return hub.RedeemBond{TokenID: id} })
}

func (h *Hub) execute(w http.ResponseWriter, req *http.Request, build func(tokenID string) hub.ExecuteMsg) error {
	var call Call
	if err := utils.ParseJSON(req.Body, &call); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if call.Sender == "" {
		return utils.BadRequest(errors.New("sender: required"))
	}
	for _, c := range call.Funds {
		if c.Amount == nil {
			return utils.BadRequest(errors.Errorf("funds: missing amount of %q", c.Denom))
		}
	}
	res, err := h.rt.Execute(call.Sender, h.addr, build(mux.Vars(req)["id"]), call.Funds)
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, res)
}

func (h *Hub) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/config").
		Methods(http.MethodGet).
		Name("hub_get_config").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetConfig))
	sub.Path("/delegate").
		Methods(http.MethodPost).
		Name("hub_delegate").
		HandlerFunc(utils.WrapHandlerFunc(h.handleDelegate))
	sub.Path("/tokens/{id}/unbond").
		Methods(http.MethodPost).
		Name("hub_start_unbonding").
		HandlerFunc(utils.WrapHandlerFunc(h.handleStartUnbonding))
	sub.Path("/tokens/{id}/redelegate").
		Methods(http.MethodPost).
		Name("hub_redelegate").
		HandlerFunc(utils.WrapHandlerFunc(h.handleRedelegate))
	sub.Path("/tokens/{id}/claim").
		Methods(http.MethodPost).
		Name("hub_claim_rewards").
		HandlerFunc(utils.WrapHandlerFunc(h.handleClaimRewards))
	sub.Path("/tokens/{id}/redeem").
		Methods(http.MethodPost).
		Name("hub_redeem_bond").
		HandlerFunc(utils.WrapHandlerFunc(h.handleRedeemBond))
}
