// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/bank"
	"github.com/vechain/nfthub/builtin/hub"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/nft"
	"github.com/vechain/nfthub/builtin/solidity"
	"github.com/vechain/nfthub/builtin/staking"
	"github.com/vechain/nfthub/state"
	"github.com/vechain/nfthub/xenv"
)

// maxDepth bounds nested submessage dispatch.
const maxDepth = 16

// tx executes one top level call over a private state. Nothing it does is
// visible until the runtime commits its stage.
type tx struct {
	rt       *Runtime
	state    *state.State
	head     Head
	bank     *bank.Bank
	staking  *staking.Staking
	registry *registry
	events   []msgs.Event
	depth    int
}

func (rt *Runtime) newTx(st *state.State) (*tx, error) {
	x := &tx{
		rt:       rt,
		state:    st,
		bank:     bank.New(solidity.NewContext(BankAddress, st)),
		registry: newRegistry(solidity.NewContext(registryAddress, st)),
	}
	x.staking = staking.New(solidity.NewContext(StakingAddress, st), x.bank)

	head, err := newChain(solidity.NewContext(chainAddress, st)).get()
	if err != nil {
		return nil, err
	}
	x.head = head
	return x, nil
}

func (x *tx) env(contract string) xenv.Env {
	return xenv.Env{Block: x.head.block(), Contract: xenv.ContractContext{Address: contract}}
}

// contract binds the instance at addr to the state of this call.
func (x *tx) contract(addr string) (contract, error) {
	info, err := x.registry.get(addr)
	if err != nil {
		return nil, err
	}
	ctx := solidity.NewContext(addr, x.state)
	switch info.CodeID {
	case CodeNFT:
		return nftContract{nft.New(ctx)}, nil
	case CodeHub:
		dir := x.rt.validators.At(x.head.Height, x.staking)
		return hubContract{hub.New(ctx, nftQuerier{x}, dir)}, nil
	default:
		return nil, errors.Errorf("no such code: %d", info.CodeID)
	}
}

func (x *tx) collection(addr string) (*nft.Collection, error) {
	c, err := x.contract(addr)
	if err != nil {
		return nil, err
	}
	n, ok := c.(nftContract)
	if !ok {
		return nil, errors.Errorf("%s is not an nft collection", addr)
	}
	return n.Collection, nil
}

func (x *tx) emit(events ...msgs.Event) {
	x.events = append(x.events, events...)
}

func (x *tx) pay(from, to string, funds msgs.Coins) error {
	if len(funds) == 0 {
		return nil
	}
	if err := x.bank.Send(from, to, funds); err != nil {
		return err
	}
	x.emit(transferEvent(from, to, funds))
	return nil
}

func (x *tx) instantiate(sender string, codeID uint64, admin, label string, msg any, funds msgs.Coins) (string, error) {
	if codeID == CodeHub {
		if err := x.checkHubUnbonding(msg); err != nil {
			return "", err
		}
	}
	addr, err := x.registry.register(&ContractInfo{CodeID: codeID, Creator: sender, Admin: admin, Label: label})
	if err != nil {
		return "", err
	}
	if err := x.pay(sender, addr, funds); err != nil {
		return "", err
	}
	c, err := x.contract(addr)
	if err != nil {
		return "", err
	}
	res, err := c.Instantiate(x.env(addr), xenv.MessageInfo{Sender: sender, Funds: funds}, msg)
	if err != nil {
		return "", err
	}
	x.emit(msgs.NewEvent("instantiate").
		Add("_contract_address", addr).
		Add("code_id", strconv.FormatUint(codeID, 10)))
	return addr, x.handle(addr, c, res)
}

func (x *tx) execute(sender, addr string, msg any, funds msgs.Coins) error {
	c, err := x.contract(addr)
	if err != nil {
		return err
	}
	if err := x.pay(sender, addr, funds); err != nil {
		return err
	}
	x.emit(msgs.NewEvent("execute").Add("_contract_address", addr))
	res, err := c.Execute(x.env(addr), xenv.MessageInfo{Sender: sender, Funds: funds}, msg)
	if err != nil {
		return err
	}
	return x.handle(addr, c, res)
}

// handle records the response of a contract and runs its messages in order.
func (x *tx) handle(addr string, c contract, res *msgs.Response) error {
	x.emit(wasmEvents(addr, res)...)
	for _, sub := range res.Messages {
		if err := x.submessage(addr, c, sub); err != nil {
			return err
		}
	}
	return nil
}

// submessage dispatches sub on behalf of addr. A failed submessage that asks
// for a reply is rolled back before the reply is delivered.
func (x *tx) submessage(addr string, c contract, sub msgs.SubMsg) error {
	if x.depth >= maxDepth {
		return errors.New("submessage depth exceeded")
	}
	x.depth++
	defer func() { x.depth-- }()

	var (
		rev    = x.state.NewCheckpoint()
		before = len(x.events)
		err    = x.dispatch(addr, sub.Msg)
		result msgs.SubMsgResult
	)
	if err != nil {
		x.state.RevertTo(rev)
		x.events = x.events[:before]
		if sub.ReplyOn != msgs.ReplyError && sub.ReplyOn != msgs.ReplyAlways {
			return err
		}
		result.Err = err.Error()
	} else {
		if sub.ReplyOn != msgs.ReplySuccess && sub.ReplyOn != msgs.ReplyAlways {
			return nil
		}
		result.Ok = &msgs.SubMsgResponse{Events: append([]msgs.Event(nil), x.events[before:]...)}
	}

	res, err := c.Reply(x.env(addr), msgs.Reply{ID: sub.ID, Result: result})
	if err != nil {
		return err
	}
	return x.handle(addr, c, res)
}

// dispatch runs a message with sender as its origin.
func (x *tx) dispatch(sender string, msg msgs.Msg) error {
	switch m := msg.(type) {
	case msgs.WasmInstantiate:
		_, err := x.instantiate(sender, m.CodeID, m.Admin, m.Label, m.Msg, m.Funds)
		return err
	case msgs.WasmExecute:
		return x.execute(sender, m.Contract, m.Msg, m.Funds)
	case msgs.BankSend:
		return x.pay(sender, m.ToAddress, m.Amount)
	case msgs.StakingDelegate:
		if err := x.staking.Delegate(sender, m.Validator, m.Amount, x.head.Height); err != nil {
			return err
		}
		x.emit(msgs.NewEvent("delegate").
			Add("delegator", sender).
			Add("validator", m.Validator).
			Add("amount", m.Amount.String()))
	case msgs.StakingUndelegate:
		if err := x.staking.Undelegate(sender, m.Validator, m.Amount, x.head.Height, x.head.Time); err != nil {
			return err
		}
		x.emit(msgs.NewEvent("unbond").
			Add("delegator", sender).
			Add("validator", m.Validator).
			Add("amount", m.Amount.String()))
	case msgs.StakingRedelegate:
		if err := x.staking.Redelegate(sender, m.SrcValidator, m.DstValidator, m.Amount, x.head.Height); err != nil {
			return err
		}
		x.emit(msgs.NewEvent("redelegate").
			Add("delegator", sender).
			Add("source_validator", m.SrcValidator).
			Add("destination_validator", m.DstValidator).
			Add("amount", m.Amount.String()))
	case msgs.ClaimRewards:
		paid, err := x.staking.ClaimRewards(sender, m.Validator, m.Denom, x.head.Height)
		if err != nil {
			return err
		}
		x.emit(msgs.NewEvent("withdraw_rewards").
			Add("delegator", sender).
			Add("validator", m.Validator).
			Add("amount", paid.String()))
	default:
		return errors.Errorf("unsupported message %T", msg)
	}
	return nil
}

// mature releases finished unbondings before the call runs.
func (x *tx) mature() error {
	n, err := x.staking.Mature(x.head.Time)
	if err != nil {
		return errors.Wrap(err, "mature unbondings")
	}
	if n > 0 {
		metricMatured().Add(int64(n))
		logger.Debug("unbondings matured", "count", n, "height", x.head.Height)
	}
	return nil
}

func transferEvent(from, to string, coins msgs.Coins) msgs.Event {
	return msgs.NewEvent("transfer").
		Add("recipient", to).
		Add("sender", from).
		Add("amount", coins.String())
}

// wasmEvents renders a contract response as chain events.
func wasmEvents(addr string, res *msgs.Response) []msgs.Event {
	var events []msgs.Event
	if len(res.Attributes) > 0 {
		ev := msgs.NewEvent("wasm").Add("_contract_address", addr)
		ev.Attributes = append(ev.Attributes, res.Attributes...)
		events = append(events, ev)
	}
	for _, e := range res.Events {
		ev := msgs.NewEvent("wasm-"+e.Type).Add("_contract_address", addr)
		ev.Attributes = append(ev.Attributes, e.Attributes...)
		events = append(events, ev)
	}
	return events
}
