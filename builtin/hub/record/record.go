// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package record encodes delegation records to and from NFT traits.
package record

import (
	"strings"

	"github.com/holiman/uint256"

	"github.com/vechain/nfthub/builtin/hub/reverts"
	"github.com/vechain/nfthub/builtin/nft"
)

// Delimiter separates amount and denom in a trait value.
const Delimiter = "@"

// MaxAmountBits bounds amounts to unsigned 128-bit integers.
const MaxAmountBits = 128

// Record is one delegation held by an NFT.
type Record struct {
	Validator     string
	Amount        *uint256.Int
	Denom         string
	Status        Status
	EffectiveTime uint64
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	if r.Amount != nil {
		r.Amount = new(uint256.Int).Set(r.Amount)
	}
	return r
}

// EncodeValue renders "<amount>@<denom>".
func EncodeValue(amount *uint256.Int, denom string) (string, error) {
	if amount == nil {
		return "", &reverts.ErrMalformedRecord{Input: denom, Reason: "missing amount"}
	}
	input := amount.Dec() + Delimiter + denom
	if amount.BitLen() > MaxAmountBits {
		return "", &reverts.ErrMalformedRecord{Input: input, Reason: "amount exceeds 128 bits"}
	}
	if denom == "" {
		return "", &reverts.ErrMalformedRecord{Input: input, Reason: "empty denom"}
	}
	if strings.Contains(denom, Delimiter) {
		return "", &reverts.ErrMalformedRecord{Input: input, Reason: "denom contains delimiter"}
	}
	return input, nil
}

// DecodeValue parses "<amount>@<denom>".
func DecodeValue(s string) (*uint256.Int, string, error) {
	parts := strings.Split(s, Delimiter)
	switch {
	case len(parts) == 1:
		return nil, "", &reverts.ErrMalformedRecord{Input: s, Reason: "missing delimiter"}
	case len(parts) > 2:
		return nil, "", &reverts.ErrMalformedRecord{Input: s, Reason: "duplicated delimiter"}
	}
	amountText, denom := parts[0], parts[1]
	if amountText == "" || strings.TrimLeft(amountText, "0123456789") != "" {
		return nil, "", &reverts.ErrMalformedRecord{Input: s, Reason: "amount is not an unsigned integer"}
	}
	amount, err := uint256.FromDecimal(amountText)
	if err != nil || amount.BitLen() > MaxAmountBits {
		return nil, "", &reverts.ErrMalformedRecord{Input: s, Reason: "amount exceeds 128 bits"}
	}
	if denom == "" {
		return nil, "", &reverts.ErrMalformedRecord{Input: s, Reason: "empty denom"}
	}
	return amount, denom, nil
}

// FromTrait decodes one trait.
func FromTrait(t nft.Trait) (Record, error) {
	amount, denom, err := DecodeValue(t.Value)
	if err != nil {
		return Record{}, err
	}
	status := ParseStatus(t.DisplayType)
	// only a redeemed record may hold nothing
	if amount.IsZero() && status != Unbonded {
		return Record{}, &reverts.ErrMalformedRecord{Input: t.Value, Reason: "zero amount on a " + status.String() + " record"}
	}
	return Record{
		Validator:     t.TraitType,
		Amount:        amount,
		Denom:         denom,
		Status:        status,
		EffectiveTime: t.Timestamp,
	}, nil
}

// Trait encodes the record.
func (r Record) Trait() (nft.Trait, error) {
	value, err := EncodeValue(r.Amount, r.Denom)
	if err != nil {
		return nft.Trait{}, err
	}
	return nft.Trait{
		DisplayType: r.Status.String(),
		TraitType:   r.Validator,
		Value:       value,
		Timestamp:   r.EffectiveTime,
	}, nil
}

// FromTraits decodes a whole trait set, preserving order.
func FromTraits(traits []nft.Trait) ([]Record, error) {
	records := make([]Record, 0, len(traits))
	for _, t := range traits {
		r, err := FromTrait(t)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// ToTraits encodes a whole record set, preserving order.
func ToTraits(records []Record) ([]nft.Trait, error) {
	traits := make([]nft.Trait, 0, len(records))
	for _, r := range records {
		t, err := r.Trait()
		if err != nil {
			return nil, err
		}
		traits = append(traits, t)
	}
	return traits, nil
}
