// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lifecycle validates and applies delegation record transitions.
// Every transition checks the whole record set before producing a new one, and never mutates its input.
package lifecycle

import (
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/hub/record"
	"github.com/vechain/nfthub/builtin/hub/reverts"
	"github.com/vechain/nfthub/builtin/msgs"
)

// movable reports whether a record may be unbonded or redelegated at now.
// A redelegation whose effective time passed is treated as settled.
func movable(r record.Record, now uint64) (ok bool, pendingRedelegation bool) {
	switch r.Status {
	case record.Delegated:
		return true, false
	case record.Redelegating:
		if r.EffectiveTime < now {
			return true, false
		}
		return false, true
	default:
		return false, false
	}
}

func after(now, seconds uint64) uint64 {
	if now > math.MaxUint64-seconds {
		return math.MaxUint64
	}
	return now + seconds
}

func nonEmpty(tokenID string, records []record.Record) error {
	if len(records) == 0 {
		return &reverts.ErrNoDelegationsFound{TokenID: tokenID}
	}
	return nil
}

// StartUnbonding moves every record to Unbonding, effective at now+unbonding.
func StartUnbonding(tokenID string, records []record.Record, now, unbonding uint64) ([]record.Record, error) {
	if err := nonEmpty(tokenID, records); err != nil {
		return nil, err
	}
	for _, r := range records {
		ok, pending := movable(r, now)
		if ok {
			continue
		}
		if pending {
			return nil, &reverts.ErrRedelegatingImpossible{TokenID: tokenID}
		}
		return nil, &reverts.ErrUnbondingImpossible{TokenID: tokenID}
	}

	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		r = r.Clone()
		r.Status = record.Unbonding
		r.EffectiveTime = after(now, unbonding)
		out = append(out, r)
	}
	return out, nil
}

// CheckRedelegate validates that every record may be redelegated at now.
func CheckRedelegate(tokenID string, records []record.Record, now uint64) error {
	if err := nonEmpty(tokenID, records); err != nil {
		return err
	}
	for _, r := range records {
		if ok, _ := movable(r, now); !ok {
			return &reverts.ErrRedelegatingImpossible{TokenID: tokenID}
		}
	}
	return nil
}

// Redelegate retargets record i to destinations[i] and marks it Redelegating, effective at now+unbonding.
func Redelegate(tokenID string, records []record.Record, now, unbonding uint64, destinations []string) ([]record.Record, error) {
	if err := CheckRedelegate(tokenID, records, now); err != nil {
		return nil, err
	}
	if len(destinations) != len(records) {
		return nil, errors.Errorf("redelegate: %d destinations for %d records", len(destinations), len(records))
	}

	out := make([]record.Record, 0, len(records))
	for i, r := range records {
		r = r.Clone()
		r.Validator = destinations[i]
		r.Status = record.Redelegating
		r.EffectiveTime = after(now, unbonding)
		out = append(out, r)
	}
	return out, nil
}

// RedeemBond marks every matured Unbonding record as Unbonded at now.
func RedeemBond(tokenID string, records []record.Record, now uint64) ([]record.Record, error) {
	if err := nonEmpty(tokenID, records); err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Status != record.Unbonding || r.EffectiveTime > now {
			return nil, &reverts.ErrRedeemBondImpossible{TokenID: tokenID}
		}
	}

	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		r = r.Clone()
		r.Status = record.Unbonded
		r.EffectiveTime = now
		out = append(out, r)
	}
	return out, nil
}

// Delegated builds the record set of a new NFT, coin i delegated to validators[i].
func Delegated(coins msgs.Coins, validators []string, now uint64) ([]record.Record, error) {
	if !coins.AllPositive() {
		return nil, reverts.ErrNoFundsReceived
	}
	if len(validators) != len(coins) {
		return nil, errors.Errorf("delegate: %d validators for %d coins", len(validators), len(coins))
	}

	out := make([]record.Record, 0, len(coins))
	for i, c := range coins {
		out = append(out, record.Record{
			Validator:     validators[i],
			Amount:        c.Amount.Clone(),
			Denom:         c.Denom,
			Status:        record.Delegated,
			EffectiveTime: now,
		})
	}
	return out, nil
}
