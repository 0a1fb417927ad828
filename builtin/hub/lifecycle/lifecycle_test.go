// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lifecycle

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nfthub/builtin/hub/record"
	"github.com/vechain/nfthub/builtin/hub/reverts"
	"github.com/vechain/nfthub/builtin/msgs"
)

const (
	now       = uint64(1_000)
	unbonding = uint64(100)
)

func rec(validator string, status record.Status, effective uint64) record.Record {
	return record.Record{
		Validator:     validator,
		Amount:        uint256.NewInt(100),
		Denom:         "token",
		Status:        status,
		EffectiveTime: effective,
	}
}

func TestStartUnbonding(t *testing.T) {
	in := []record.Record{
		rec("validator1", record.Delegated, 10),
		rec("validator2", record.Delegated, 20),
		rec("validator3", record.Redelegating, now-1),
	}
	out, err := StartUnbonding("0", in, now, unbonding)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, r := range out {
		assert.Equal(t, record.Unbonding, r.Status)
		assert.Equal(t, now+unbonding, r.EffectiveTime)
		assert.Equal(t, in[i].Validator, r.Validator)
	}
	// input untouched
	assert.Equal(t, record.Delegated, in[0].Status)
	assert.Equal(t, uint64(10), in[0].EffectiveTime)
}

func TestStartUnbondingRejects(t *testing.T) {
	tests := []struct {
		name    string
		records []record.Record
		check   func(error) bool
	}{
		{"empty", nil, isA[*reverts.ErrNoDelegationsFound]},
		{"pending redelegation", []record.Record{
			rec("v", record.Delegated, 0),
			rec("v", record.Redelegating, now),
		}, isA[*reverts.ErrRedelegatingImpossible]},
		{"already unbonding", []record.Record{rec("v", record.Unbonding, 0)}, isA[*reverts.ErrUnbondingImpossible]},
		{"unbonded", []record.Record{rec("v", record.Unbonded, 0)}, isA[*reverts.ErrUnbondingImpossible]},
		{"unknown", []record.Record{rec("v", record.Unknown, 0)}, isA[*reverts.ErrUnbondingImpossible]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := StartUnbonding("7", tt.records, now, unbonding)
			assert.Nil(t, out)
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
}

func TestRedelegate(t *testing.T) {
	in := []record.Record{
		rec("validator1", record.Delegated, 0),
		rec("validator2", record.Redelegating, now-1),
	}
	out, err := Redelegate("0", in, now, unbonding, []string{"validator3", "validator4"})
	require.NoError(t, err)
	assert.Equal(t, "validator3", out[0].Validator)
	assert.Equal(t, "validator4", out[1].Validator)
	for _, r := range out {
		assert.Equal(t, record.Redelegating, r.Status)
		assert.Equal(t, now+unbonding, r.EffectiveTime)
	}
	assert.Equal(t, "validator1", in[0].Validator)

	_, err = Redelegate("0", in, now, unbonding, []string{"only-one"})
	assert.Error(t, err)
	assert.False(t, reverts.IsRevertErr(err))
}

func TestRedelegateRejects(t *testing.T) {
	for _, status := range []record.Status{record.Unbonding, record.Unbonded, record.Unknown} {
		err := CheckRedelegate("5", []record.Record{rec("v", status, 0)}, now)
		assert.True(t, isA[*reverts.ErrRedelegatingImpossible](err))
	}
	err := CheckRedelegate("5", []record.Record{rec("v", record.Redelegating, now)}, now)
	assert.EqualError(t, err, "Cannot redelegate the '5' NFT")

	err = CheckRedelegate("5", nil, now)
	assert.True(t, isA[*reverts.ErrNoDelegationsFound](err))
}

func TestRedeemBond(t *testing.T) {
	in := []record.Record{
		rec("validator1", record.Unbonding, now),
		rec("validator2", record.Unbonding, now-50),
	}
	out, err := RedeemBond("0", in, now)
	require.NoError(t, err)
	for _, r := range out {
		assert.Equal(t, record.Unbonded, r.Status)
		assert.Equal(t, now, r.EffectiveTime)
	}

	_, err = RedeemBond("0", in, now-1)
	assert.EqualError(t, err, "Cannot redeem bond of the '0' NFT")

	_, err = RedeemBond("0", []record.Record{rec("v", record.Unbonding, 0), rec("v", record.Delegated, 0)}, now)
	assert.True(t, isA[*reverts.ErrRedeemBondImpossible](err))
}

func TestDelegated(t *testing.T) {
	coins := msgs.Coins{msgs.NewCoin("token", 100), msgs.NewCoin("stoken", 100)}
	out, err := Delegated(coins, []string{"validator1", "validator"}, now)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "validator1", out[0].Validator)
	assert.Equal(t, "stoken", out[1].Denom)
	assert.Equal(t, record.Delegated, out[1].Status)
	assert.Equal(t, now, out[1].EffectiveTime)

	// records own their amounts
	out[0].Amount.AddUint64(out[0].Amount, 1)
	assert.Equal(t, uint64(100), coins[0].Amount.Uint64())

	_, err = Delegated(nil, nil, now)
	assert.ErrorIs(t, err, reverts.ErrNoFundsReceived)
	_, err = Delegated(msgs.Coins{msgs.NewCoin("token", 0)}, []string{"v"}, now)
	assert.ErrorIs(t, err, reverts.ErrNoFundsReceived)
}

func TestEffectiveTimeSaturates(t *testing.T) {
	out, err := StartUnbonding("0", []record.Record{rec("v", record.Delegated, 0)}, ^uint64(0)-1, unbonding)
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), out[0].EffectiveTime)
}

func isA[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
