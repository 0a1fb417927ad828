// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes the initial state of a hub chain.
package genesis

import (
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/nfthub/builtin/hub"
	"github.com/vechain/nfthub/builtin/msgs"
)

// Genesis is the user customizable initial state.
type Genesis struct {
	ChainID    string    `yaml:"chain_id"`
	Height     uint64    `yaml:"height"`
	LaunchTime uint64    `yaml:"launch_time"`
	Accounts   []Account `yaml:"accounts"`
	Staking    Staking   `yaml:"staking"`
	Hub        *Hub      `yaml:"hub,omitempty"`
}

// Account is funded at genesis.
type Account struct {
	Address string `yaml:"address"`
	Balance []Coin `yaml:"balance"`
}

// Coin carries a decimal amount so balances above 64 bits can be expressed.
type Coin struct {
	Denom  string `yaml:"denom"`
	Amount string `yaml:"amount"`
}

// Staking are the staking module parameters.
type Staking struct {
	Validators       []string `yaml:"validators"`
	UnbondingSeconds uint64   `yaml:"unbonding_seconds"`
	RewardPPM        uint64   `yaml:"reward_ppm"`
	RewardPool       []Coin   `yaml:"reward_pool"`
}

// Hub, when set, is instantiated right after the initial state is written.
type Hub struct {
	Creator string             `yaml:"creator"`
	Label   string             `yaml:"label"`
	Msg     hub.InstantiateMsg `yaml:"msg"`
}

// Load reads a yaml genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	var gen Genesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// Validate checks the genesis is usable.
func (g *Genesis) Validate() error {
	if strings.TrimSpace(g.ChainID) == "" {
		return errors.New("chain_id must be set")
	}
	if len(g.Staking.Validators) == 0 {
		return errors.New("at least one validator")
	}
	seen := make(map[string]bool, len(g.Staking.Validators))
	for _, v := range g.Staking.Validators {
		if v == "" || seen[v] {
			return errors.Errorf("invalid or duplicated validator %q", v)
		}
		seen[v] = true
	}
	for _, a := range g.Accounts {
		if a.Address == "" {
			return errors.New("account address must be set")
		}
		if _, err := ParseCoins(a.Balance); err != nil {
			return errors.Wrap(err, a.Address)
		}
	}
	if _, err := ParseCoins(g.Staking.RewardPool); err != nil {
		return errors.Wrap(err, "reward pool")
	}
	if g.Hub != nil && g.Hub.Creator == "" {
		return errors.New("hub creator must be set")
	}
	if g.Hub != nil && g.Hub.Msg.UnbondingSeconds < g.Staking.UnbondingSeconds {
		return errors.Errorf("hub unbonding_seconds %d is shorter than staking unbonding_seconds %d",
			g.Hub.Msg.UnbondingSeconds, g.Staking.UnbondingSeconds)
	}
	return nil
}

// ParseCoins converts decimal coins.
func ParseCoins(coins []Coin) (msgs.Coins, error) {
	out := make(msgs.Coins, 0, len(coins))
	for _, c := range coins {
		if c.Denom == "" {
			return nil, errors.New("denom must be set")
		}
		amount, err := uint256.FromDecimal(c.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "amount of %s", c.Denom)
		}
		if amount.IsZero() {
			return nil, errors.Errorf("%s: balance must be a non-zero integer", c.Denom)
		}
		out = append(out, msgs.Coin{Denom: c.Denom, Amount: amount})
	}
	return out, nil
}
