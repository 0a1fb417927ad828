// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/hub"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/nft"
	"github.com/vechain/nfthub/xenv"
)

// contract is the entry point set the host drives.
type contract interface {
	Instantiate(env xenv.Env, info xenv.MessageInfo, msg any) (*msgs.Response, error)
	Execute(env xenv.Env, info xenv.MessageInfo, msg any) (*msgs.Response, error)
	Reply(env xenv.Env, reply msgs.Reply) (*msgs.Response, error)
	Query(msg any) (any, error)
}

type hubContract struct {
	*hub.Hub
}

func (c hubContract) Instantiate(env xenv.Env, info xenv.MessageInfo, msg any) (*msgs.Response, error) {
	switch m := msg.(type) {
	case hub.InstantiateMsg:
		return c.Hub.Instantiate(env, info, m)
	case *hub.InstantiateMsg:
		return c.Hub.Instantiate(env, info, *m)
	default:
		return nil, errors.Errorf("unexpected hub instantiate message %T", msg)
	}
}

func (c hubContract) Execute(env xenv.Env, info xenv.MessageInfo, msg any) (*msgs.Response, error) {
	m, ok := msg.(hub.ExecuteMsg)
	if !ok {
		return nil, errors.Errorf("unexpected hub message %T", msg)
	}
	return c.Hub.Execute(env, info, m)
}

// checkHubUnbonding rejects a hub that would release bonds before staking does.
func (x *tx) checkHubUnbonding(msg any) error {
	var seconds uint64
	switch m := msg.(type) {
	case hub.InstantiateMsg:
		seconds = m.UnbondingSeconds
	case *hub.InstantiateMsg:
		seconds = m.UnbondingSeconds
	default:
		return nil
	}
	params, err := x.staking.Params()
	if err != nil {
		return err
	}
	if seconds < params.UnbondingSeconds {
		return errors.Errorf("hub unbonding of %ds is shorter than staking unbonding of %ds", seconds, params.UnbondingSeconds)
	}
	return nil
}

type nftContract struct {
	*nft.Collection
}

func (c nftContract) Instantiate(env xenv.Env, info xenv.MessageInfo, msg any) (*msgs.Response, error) {
	switch m := msg.(type) {
	case nft.InstantiateMsg:
		return c.Collection.Instantiate(env, info, m)
	case *nft.InstantiateMsg:
		return c.Collection.Instantiate(env, info, *m)
	default:
		return nil, errors.Errorf("unexpected nft instantiate message %T", msg)
	}
}

func (c nftContract) Reply(xenv.Env, msgs.Reply) (*msgs.Response, error) {
	return nil, errors.New("nft collection does not handle replies")
}

func (c nftContract) Query(msg any) (any, error) {
	return c.Collection.Query(msg)
}

// nftQuerier reads collections through the state of the running call.
type nftQuerier struct {
	x *tx
}

func (q nftQuerier) AllNftInfo(contract, tokenID string) (*nft.AllNftInfo, error) {
	c, err := q.x.collection(contract)
	if err != nil {
		return nil, err
	}
	return c.AllNftInfo(tokenID)
}
