// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime is the host chain the hub runs on. It routes messages to
// contracts and host modules, delivers submessage replies and commits each
// top level call atomically.
package runtime

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/hub"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/nft"
	"github.com/vechain/nfthub/builtin/solidity"
	"github.com/vechain/nfthub/builtin/staking"
	"github.com/vechain/nfthub/genesis"
	"github.com/vechain/nfthub/kv"
	"github.com/vechain/nfthub/log"
	"github.com/vechain/nfthub/state"
)

var logger = log.WithContext("pkg", "runtime")

const validatorCacheSize = 256

// Result is the outcome of a committed call.
type Result struct {
	Contract string       `json:"contract,omitempty"`
	Height   uint64       `json:"height"`
	Events   []msgs.Event `json:"events"`
}

// Runtime serializes calls over a store.
type Runtime struct {
	mu         sync.RWMutex
	db         kv.Store
	validators *hub.CachedDirectory
}

// New opens the chain in db, writing gen first when db is empty.
func New(db kv.Store, gen *genesis.Genesis) (*Runtime, error) {
	validators, err := hub.NewCachedDirectory(validatorCacheSize)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{db: db, validators: validators}

	_, found, err := newChain(solidity.NewContext(chainAddress, state.New(db))).head.Get()
	if err != nil {
		return nil, err
	}
	if found {
		return rt, nil
	}
	if gen == nil {
		return nil, errors.New("empty database and no genesis")
	}
	if err := rt.init(gen); err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	return rt, nil
}

func (rt *Runtime) init(gen *genesis.Genesis) error {
	if err := gen.Validate(); err != nil {
		return err
	}
	st := state.New(rt.db)
	head := Head{ChainID: gen.ChainID, Height: gen.Height, Time: gen.LaunchTime}
	if err := newChain(solidity.NewContext(chainAddress, st)).head.Set(head); err != nil {
		return err
	}
	x, err := rt.newTx(st)
	if err != nil {
		return err
	}
	if err := x.staking.SetParams(staking.Params{
		UnbondingSeconds: gen.Staking.UnbondingSeconds,
		RewardPPM:        gen.Staking.RewardPPM,
		RewardPool:       DistributionAddress,
	}); err != nil {
		return err
	}
	for _, v := range gen.Staking.Validators {
		if err := x.staking.AddValidator(v); err != nil {
			return err
		}
	}
	pool, err := genesis.ParseCoins(gen.Staking.RewardPool)
	if err != nil {
		return err
	}
	if err := x.bank.Mint(DistributionAddress, pool); err != nil {
		return err
	}
	for _, a := range gen.Accounts {
		coins, err := genesis.ParseCoins(a.Balance)
		if err != nil {
			return err
		}
		if err := x.bank.Mint(a.Address, coins); err != nil {
			return err
		}
	}
	if err := st.Stage().Commit(rt.db); err != nil {
		return err
	}
	logger.Info("genesis written", "chain", gen.ChainID, "height", gen.Height, "validators", len(gen.Staking.Validators))

	if gen.Hub != nil {
		res, err := rt.Instantiate(gen.Hub.Creator, CodeHub, gen.Hub.Label, gen.Hub.Msg, nil)
		if err != nil {
			return errors.Wrap(err, "instantiate hub")
		}
		logger.Info("hub instantiated at genesis", "address", res.Contract)
	}
	return nil
}

// Instantiate creates a contract of codeID owned by sender.
func (rt *Runtime) Instantiate(sender string, codeID uint64, label string, msg any, funds msgs.Coins) (*Result, error) {
	var addr string
	res, err := rt.run("instantiate", func(x *tx) (err error) {
		addr, err = x.instantiate(sender, codeID, sender, label, msg, funds)
		return
	})
	if err != nil {
		return nil, err
	}
	res.Contract = addr
	return res, nil
}

// Execute runs msg on contract as sender, attaching funds.
func (rt *Runtime) Execute(sender, contract string, msg any, funds msgs.Coins) (*Result, error) {
	res, err := rt.run("execute", func(x *tx) error {
		return x.execute(sender, contract, msg, funds)
	})
	if err != nil {
		return nil, err
	}
	res.Contract = contract
	return res, nil
}

// Advance moves the chain head forward and releases matured unbondings.
func (rt *Runtime) Advance(blocks, seconds uint64) (Head, error) {
	if blocks == 0 {
		return Head{}, errors.New("advance by at least one block")
	}
	var head Head
	_, err := rt.run("advance", func(x *tx) error {
		x.head.Height += blocks
		x.head.Time += seconds
		head = x.head
		if err := newChain(solidity.NewContext(chainAddress, x.state)).head.Set(x.head); err != nil {
			return err
		}
		return x.mature()
	})
	if err == nil {
		metricChainHeight().Set(int64(head.Height))
	}
	return head, err
}

// run executes fn in a fresh call and commits it only when fn succeeds.
func (rt *Runtime) run(call string, fn func(x *tx) error) (res *Result, err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	defer func() {
		metricExecutionDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"call": call, "status": status(err)})
	}()

	st := state.New(rt.db)
	x, err := rt.newTx(st)
	if err != nil {
		return nil, err
	}
	if err := x.mature(); err != nil {
		return nil, err
	}
	if err := fn(x); err != nil {
		logger.Debug("call reverted", "call", call, "err", err)
		return nil, err
	}
	stage := st.Stage()
	if err := stage.Commit(rt.db); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	logger.Debug("call committed", "call", call, "height", x.head.Height, "changes", stage.Len(), "events", len(x.events))
	return &Result{Height: x.head.Height, Events: x.events}, nil
}

// view runs fn over the committed state. Changes are discarded.
func (rt *Runtime) view(fn func(x *tx) error) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	x, err := rt.newTx(state.New(rt.db))
	if err != nil {
		return err
	}
	return fn(x)
}

// Head returns the current chain head.
func (rt *Runtime) Head() (head Head, err error) {
	err = rt.view(func(x *tx) error {
		head = x.head
		return nil
	})
	return
}

// Query asks contract a read only question.
func (rt *Runtime) Query(contract string, msg any) (out any, err error) {
	err = rt.view(func(x *tx) error {
		c, err := x.contract(contract)
		if err != nil {
			return err
		}
		out, err = c.Query(msg)
		return err
	})
	return
}

// Contract returns the registry entry of addr.
func (rt *Runtime) Contract(addr string) (info *ContractInfo, err error) {
	err = rt.view(func(x *tx) error {
		info, err = x.registry.get(addr)
		return err
	})
	return
}

// NftInfo returns a token of a collection.
func (rt *Runtime) NftInfo(collection, tokenID string) (info *nft.AllNftInfo, err error) {
	err = rt.view(func(x *tx) error {
		c, err := x.collection(collection)
		if err != nil {
			return err
		}
		info, err = c.AllNftInfo(tokenID)
		return err
	})
	return
}

// Tokens lists the tokens owned by owner in a collection.
func (rt *Runtime) Tokens(collection, owner string) (ids []string, err error) {
	err = rt.view(func(x *tx) error {
		c, err := x.collection(collection)
		if err != nil {
			return err
		}
		ids, err = c.Tokens(owner)
		return err
	})
	return
}

// Balances returns the coins held by addr.
func (rt *Runtime) Balances(addr string) (coins msgs.Coins, err error) {
	err = rt.view(func(x *tx) error {
		coins, err = x.bank.Balances(addr)
		return err
	})
	return
}

// Delegations returns the bonds of delegator with rewards settled at the head.
func (rt *Runtime) Delegations(delegator string) (ds []*staking.Delegation, err error) {
	err = rt.view(func(x *tx) error {
		ds, err = x.staking.Delegations(delegator, x.head.Height)
		return err
	})
	return
}

// Unbondings returns the queued unbondings of delegator.
func (rt *Runtime) Unbondings(delegator string) (us []staking.Unbonding, err error) {
	err = rt.view(func(x *tx) error {
		us, err = x.staking.Unbondings(delegator)
		return err
	})
	return
}

// Validators returns the validator set.
func (rt *Runtime) Validators() (vals []string, err error) {
	err = rt.view(func(x *tx) error {
		vals, err = x.staking.ListValidators()
		return err
	})
	return
}
