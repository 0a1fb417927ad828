// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package msgs

import (
	"github.com/holiman/uint256"
)

// Coin is an amount of a native denom.
type Coin struct {
	Denom  string       `json:"denom"`
	Amount *uint256.Int `json:"amount"`
}

func NewCoin(denom string, amount uint64) Coin {
	return Coin{Denom: denom, Amount: uint256.NewInt(amount)}
}

// IsPositive reports whether the coin carries a non-zero amount.
func (c Coin) IsPositive() bool {
	return c.Amount != nil && !c.Amount.IsZero()
}

func (c Coin) String() string {
	if c.Amount == nil {
		return "0" + c.Denom
	}
	return c.Amount.Dec() + c.Denom
}

// Coins is an ordered set of coins.
type Coins []Coin

// AllPositive reports whether coins is non-empty and every amount is above zero.
func (cs Coins) AllPositive() bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

func (cs Coins) String() string {
	s := ""
	for i, c := range cs {
		if i > 0 {
			s += ","
		}
		s += c.String()
	}
	return s
}
