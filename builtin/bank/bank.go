// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bank keeps native coin balances per address and denom.
package bank

import (
	"slices"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/solidity"
)

// ErrInsufficientFunds is returned when a sender cannot cover a transfer.
var ErrInsufficientFunds = errors.New("insufficient funds")

type Bank struct {
	balances *solidity.Mapping[solidity.CompositeKey, *uint256.Int]
	denoms   *solidity.Mapping[solidity.StringKey, []string]
	supply   *solidity.Mapping[solidity.StringKey, *uint256.Int]
}

func New(ctx *solidity.Context) *Bank {
	return &Bank{
		balances: solidity.NewMapping[solidity.CompositeKey, *uint256.Int](ctx, "balances"),
		denoms:   solidity.NewMapping[solidity.StringKey, []string](ctx, "denoms"),
		supply:   solidity.NewMapping[solidity.StringKey, *uint256.Int](ctx, "supply"),
	}
}

// Balance returns the amount of denom held by addr.
func (b *Bank) Balance(addr, denom string) (*uint256.Int, error) {
	return b.balances.Get(solidity.CompositeKey{addr, denom})
}

// Balances returns every non-zero balance of addr, sorted by denom.
func (b *Bank) Balances(addr string) (msgs.Coins, error) {
	denoms, err := b.denoms.Get(solidity.StringKey(addr))
	if err != nil {
		return nil, err
	}
	coins := make(msgs.Coins, 0, len(denoms))
	for _, denom := range denoms {
		amount, err := b.Balance(addr, denom)
		if err != nil {
			return nil, err
		}
		coins = append(coins, msgs.Coin{Denom: denom, Amount: amount})
	}
	return coins, nil
}

// Supply returns the total minted amount of denom.
func (b *Bank) Supply(denom string) (*uint256.Int, error) {
	return b.supply.Get(solidity.StringKey(denom))
}

// Mint creates coins out of thin air. Used at genesis and by the reward pool.
func (b *Bank) Mint(addr string, coins msgs.Coins) error {
	for _, c := range coins {
		if !c.IsPositive() {
			continue
		}
		total, err := b.Supply(c.Denom)
		if err != nil {
			return err
		}
		if err := b.supply.Set(solidity.StringKey(c.Denom), total.Add(total, c.Amount)); err != nil {
			return err
		}
		if err := b.add(addr, c); err != nil {
			return err
		}
	}
	return nil
}

// Send moves coins from one address to another. Nothing moves if any coin is not covered.
func (b *Bank) Send(from, to string, coins msgs.Coins) error {
	for _, c := range coins {
		if c.Amount == nil {
			return errors.Errorf("send %s: missing amount", c.Denom)
		}
		bal, err := b.Balance(from, c.Denom)
		if err != nil {
			return err
		}
		if bal.Lt(c.Amount) {
			return errors.Wrapf(ErrInsufficientFunds, "%s has %s%s, needs %s", from, bal.Dec(), c.Denom, c.String())
		}
	}
	for _, c := range coins {
		if err := b.sub(from, c); err != nil {
			return err
		}
		if err := b.add(to, c); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bank) add(addr string, c msgs.Coin) error {
	bal, err := b.Balance(addr, c.Denom)
	if err != nil {
		return err
	}
	if bal.IsZero() && !c.Amount.IsZero() {
		if err := b.track(addr, c.Denom, true); err != nil {
			return err
		}
	}
	return b.balances.Set(solidity.CompositeKey{addr, c.Denom}, bal.Add(bal, c.Amount))
}

func (b *Bank) sub(addr string, c msgs.Coin) error {
	bal, err := b.Balance(addr, c.Denom)
	if err != nil {
		return err
	}
	if bal.Lt(c.Amount) {
		return ErrInsufficientFunds
	}
	bal.Sub(bal, c.Amount)
	if bal.IsZero() {
		b.balances.Delete(solidity.CompositeKey{addr, c.Denom})
		return b.track(addr, c.Denom, false)
	}
	return b.balances.Set(solidity.CompositeKey{addr, c.Denom}, bal)
}

func (b *Bank) track(addr, denom string, held bool) error {
	key := solidity.StringKey(addr)
	denoms, err := b.denoms.Get(key)
	if err != nil {
		return err
	}
	if held {
		if !slices.Contains(denoms, denom) {
			denoms = append(denoms, denom)
			slices.Sort(denoms)
		}
	} else {
		denoms = slices.DeleteFunc(denoms, func(d string) bool { return d == denom })
	}
	if len(denoms) == 0 {
		b.denoms.Delete(key)
		return nil
	}
	return b.denoms.Set(key, denoms)
}
