// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/nfthub/api/utils"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/runtime"
)

type Accounts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Accounts {
	return &Accounts{rt}
}

func (a *Accounts) handleGetBalances(w http.ResponseWriter, req *http.Request) error {
	coins, err := a.rt.Balances(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	if coins == nil {
		coins = msgs.Coins{}
	}
	return utils.WriteJSON(w, coins)
}

func (a *Accounts) handleGetDelegations(w http.ResponseWriter, req *http.Request) error {
	ds, err := a.rt.Delegations(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	out := make([]Delegation, 0, len(ds))
	for _, d := range ds {
		out = append(out, convertDelegation(d))
	}
	return utils.WriteJSON(w, out)
}

func (a *Accounts) handleGetUnbondings(w http.ResponseWriter, req *http.Request) error {
	us, err := a.rt.Unbondings(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	out := make([]Unbonding, 0, len(us))
	for _, u := range us {
		out = append(out, Unbonding{
			Validator:  u.Validator,
			Amount:     msgs.Coin{Denom: u.Denom, Amount: u.Amount},
			Completion: u.Completion,
		})
	}
	return utils.WriteJSON(w, out)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}/balances").
		Methods(http.MethodGet).
		Name("accounts_get_balances").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetBalances))
	sub.Path("/{address}/delegations").
		Methods(http.MethodGet).
		Name("accounts_get_delegations").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetDelegations))
	sub.Path("/{address}/unbondings").
		Methods(http.MethodGet).
		Name("accounts_get_unbondings").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetUnbondings))
}
