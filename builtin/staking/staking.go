// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking keeps the validator set, bonded delegations, the unbonding
// queue and delegation rewards. Bonded coins are held by the module account.
package staking

import (
	"math"
	"slices"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/bank"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/solidity"
)

var (
	ErrUnknownValidator       = errors.New("unknown validator")
	ErrInsufficientDelegation = errors.New("insufficient delegation")
)

const ppm = 1_000_000

// Params are set once at genesis.
type Params struct {
	UnbondingSeconds uint64
	// RewardPPM is the reward per block, in millionths of the bonded amount.
	RewardPPM uint64
	// RewardPool pays out claimed rewards.
	RewardPool string
}

// Delegation is a bonded amount of one denom from one delegator to one validator.
type Delegation struct {
	Validator  string
	Denom      string
	Amount     *uint256.Int
	Pending    *uint256.Int
	LastHeight uint64
}

// Unbonding is an undelegated amount waiting for its completion time.
type Unbonding struct {
	Validator  string
	Denom      string
	Amount     *uint256.Int
	Completion uint64
}

type Staking struct {
	addr        string
	bank        *bank.Bank
	params      *solidity.Raw[Params]
	validators  *solidity.Raw[[]string]
	delegations *solidity.Mapping[solidity.CompositeKey, *Delegation]
	index       *solidity.Mapping[solidity.StringKey, []solidity.CompositeKey]
	queue       *solidity.Mapping[solidity.StringKey, []Unbonding]
	waiting     *solidity.Raw[[]string]
}

func New(ctx *solidity.Context, bank *bank.Bank) *Staking {
	return &Staking{
		addr:        ctx.Address(),
		bank:        bank,
		params:      solidity.NewRaw[Params](ctx, "params"),
		validators:  solidity.NewRaw[[]string](ctx, "validators"),
		delegations: solidity.NewMapping[solidity.CompositeKey, *Delegation](ctx, "delegations"),
		index:       solidity.NewMapping[solidity.StringKey, []solidity.CompositeKey](ctx, "index"),
		queue:       solidity.NewMapping[solidity.StringKey, []Unbonding](ctx, "unbonding"),
		waiting:     solidity.NewRaw[[]string](ctx, "waiting"),
	}
}

// Address is the module account holding bonded coins.
func (s *Staking) Address() string { return s.addr }

func (s *Staking) Params() (Params, error) {
	p, _, err := s.params.Get()
	return p, err
}

func (s *Staking) SetParams(p Params) error {
	return s.params.Set(p)
}

// ListValidators returns the active validator set in registration order.
func (s *Staking) ListValidators() ([]string, error) {
	vals, _, err := s.validators.Get()
	return vals, err
}

func (s *Staking) AddValidator(addr string) error {
	vals, err := s.ListValidators()
	if err != nil {
		return err
	}
	if slices.Contains(vals, addr) {
		return errors.Errorf("validator %s already registered", addr)
	}
	return s.validators.Set(append(vals, addr))
}

func (s *Staking) isValidator(addr string) (bool, error) {
	vals, err := s.ListValidators()
	if err != nil {
		return false, err
	}
	return slices.Contains(vals, addr), nil
}

// Delegation returns the bond of delegator to validator in denom, with
// rewards settled up to height.
func (s *Staking) Delegation(delegator, validator, denom string, height uint64) (*Delegation, error) {
	d, err := s.delegations.Get(solidity.CompositeKey{delegator, validator, denom})
	if err != nil {
		return nil, err
	}
	if d.Amount == nil {
		d = &Delegation{Validator: validator, Denom: denom, Amount: new(uint256.Int), Pending: new(uint256.Int), LastHeight: height}
	}
	if err := s.settle(d, height); err != nil {
		return nil, err
	}
	return d, nil
}

// Delegations lists every bond of delegator.
func (s *Staking) Delegations(delegator string, height uint64) ([]*Delegation, error) {
	keys, err := s.index.Get(solidity.StringKey(delegator))
	if err != nil {
		return nil, err
	}
	out := make([]*Delegation, 0, len(keys))
	for _, k := range keys {
		d, err := s.Delegation(delegator, k[1], k[2], height)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Unbondings lists the pending unbonding entries of delegator.
func (s *Staking) Unbondings(delegator string) ([]Unbonding, error) {
	return s.queue.Get(solidity.StringKey(delegator))
}

// Delegate bonds coin from delegator to validator.
func (s *Staking) Delegate(delegator, validator string, coin msgs.Coin, height uint64) error {
	ok, err := s.isValidator(validator)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(ErrUnknownValidator, validator)
	}
	if err := s.bank.Send(delegator, s.addr, msgs.Coins{coin}); err != nil {
		return err
	}
	return s.bond(delegator, validator, coin, height)
}

// Undelegate unbonds coin and queues it for release at now plus the unbonding period.
func (s *Staking) Undelegate(delegator, validator string, coin msgs.Coin, height, now uint64) error {
	if err := s.unbond(delegator, validator, coin, height); err != nil {
		return err
	}
	p, err := s.Params()
	if err != nil {
		return err
	}
	completion := now + p.UnbondingSeconds
	if completion < now {
		completion = math.MaxUint64
	}
	queue, err := s.Unbondings(delegator)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		waiting, _, err := s.waiting.Get()
		if err != nil {
			return err
		}
		if err := s.waiting.Set(append(waiting, delegator)); err != nil {
			return err
		}
	}
	queue = append(queue, Unbonding{Validator: validator, Denom: coin.Denom, Amount: coin.Amount.Clone(), Completion: completion})
	return s.queue.Set(solidity.StringKey(delegator), queue)
}

// Redelegate moves a bond between validators without unbonding.
func (s *Staking) Redelegate(delegator, src, dst string, coin msgs.Coin, height uint64) error {
	ok, err := s.isValidator(dst)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(ErrUnknownValidator, dst)
	}
	if err := s.unbond(delegator, src, coin, height); err != nil {
		return err
	}
	return s.bond(delegator, dst, coin, height)
}

// ClaimRewards pays the settled rewards of a bond out of the reward pool,
// capped at what the pool holds. It returns the paid coin.
func (s *Staking) ClaimRewards(delegator, validator, denom string, height uint64) (msgs.Coin, error) {
	paid := msgs.Coin{Denom: denom, Amount: new(uint256.Int)}
	d, err := s.Delegation(delegator, validator, denom, height)
	if err != nil {
		return paid, err
	}
	if d.Amount.IsZero() && d.Pending.IsZero() {
		return paid, errors.Errorf("no delegation from %s to %s", delegator, validator)
	}
	p, err := s.Params()
	if err != nil {
		return paid, err
	}
	if p.RewardPool != "" && !d.Pending.IsZero() {
		pool, err := s.bank.Balance(p.RewardPool, denom)
		if err != nil {
			return paid, err
		}
		paid.Amount.Set(d.Pending)
		if pool.Lt(paid.Amount) {
			paid.Amount.Set(pool)
		}
		if !paid.Amount.IsZero() {
			if err := s.bank.Send(p.RewardPool, delegator, msgs.Coins{paid}); err != nil {
				return paid, err
			}
		}
		d.Pending.Sub(d.Pending, paid.Amount)
	}
	return paid, s.save(delegator, d)
}

// Mature releases every unbonding entry whose completion time is not after now.
func (s *Staking) Mature(now uint64) (int, error) {
	waiting, _, err := s.waiting.Get()
	if err != nil {
		return 0, err
	}
	var (
		released int
		still    []string
	)
	for _, delegator := range waiting {
		queue, err := s.Unbondings(delegator)
		if err != nil {
			return released, err
		}
		var rest []Unbonding
		for _, u := range queue {
			if u.Completion > now {
				rest = append(rest, u)
				continue
			}
			if err := s.bank.Send(s.addr, delegator, msgs.Coins{{Denom: u.Denom, Amount: u.Amount}}); err != nil {
				return released, err
			}
			released++
		}
		if len(rest) == 0 {
			s.queue.Delete(solidity.StringKey(delegator))
			continue
		}
		if err := s.queue.Set(solidity.StringKey(delegator), rest); err != nil {
			return released, err
		}
		still = append(still, delegator)
	}
	if released > 0 {
		if err := s.waiting.Set(still); err != nil {
			return released, err
		}
	}
	return released, nil
}

func (s *Staking) bond(delegator, validator string, coin msgs.Coin, height uint64) error {
	d, err := s.Delegation(delegator, validator, coin.Denom, height)
	if err != nil {
		return err
	}
	d.Amount.Add(d.Amount, coin.Amount)
	return s.save(delegator, d)
}

func (s *Staking) unbond(delegator, validator string, coin msgs.Coin, height uint64) error {
	d, err := s.Delegation(delegator, validator, coin.Denom, height)
	if err != nil {
		return err
	}
	if d.Amount.Lt(coin.Amount) {
		return errors.Wrapf(ErrInsufficientDelegation, "%s bonded %s%s to %s, wants %s", delegator, d.Amount.Dec(), coin.Denom, validator, coin.String())
	}
	d.Amount.Sub(d.Amount, coin.Amount)
	return s.save(delegator, d)
}

// settle accrues rewards of d up to height.
func (s *Staking) settle(d *Delegation, height uint64) error {
	if height <= d.LastHeight {
		return nil
	}
	p, err := s.Params()
	if err != nil {
		return err
	}
	if p.RewardPPM > 0 && !d.Amount.IsZero() {
		reward := new(uint256.Int).Mul(d.Amount, uint256.NewInt(p.RewardPPM))
		reward.Mul(reward, uint256.NewInt(height-d.LastHeight))
		reward.Div(reward, uint256.NewInt(ppm))
		d.Pending.Add(d.Pending, reward)
	}
	d.LastHeight = height
	return nil
}

func (s *Staking) save(delegator string, d *Delegation) error {
	key := solidity.CompositeKey{delegator, d.Validator, d.Denom}
	idx, err := s.index.Get(solidity.StringKey(delegator))
	if err != nil {
		return err
	}
	pos := slices.IndexFunc(idx, func(k solidity.CompositeKey) bool { return slices.Equal(k, key) })

	if d.Amount.IsZero() && d.Pending.IsZero() {
		s.delegations.Delete(key)
		if pos >= 0 {
			idx = slices.Delete(idx, pos, pos+1)
			if len(idx) == 0 {
				s.index.Delete(solidity.StringKey(delegator))
				return nil
			}
			return s.index.Set(solidity.StringKey(delegator), idx)
		}
		return nil
	}
	if pos < 0 {
		if err := s.index.Set(solidity.StringKey(delegator), append(idx, key)); err != nil {
			return err
		}
	}
	return s.delegations.Set(key, d)
}
