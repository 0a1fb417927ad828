// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package selector picks validators from the block height.
// The choice is reproducible on re-execution and is not meant to resist manipulation.
package selector

import (
	"github.com/vechain/nfthub/builtin/hub/reverts"
)

// Pick returns (height mod (poolSize+1)) mod poolSize.
func Pick(height, poolSize uint64) (uint64, error) {
	if poolSize == 0 {
		return 0, reverts.ErrNoValidatorsFound
	}
	// poolSize+1 wraps to zero at MaxUint64.
	if poolSize == ^uint64(0) {
		return height % poolSize, nil
	}
	return (height % (poolSize + 1)) % poolSize, nil
}

// Round is one selection round inside a single command.
// The effective pool shrinks by one after every pick but never below one.
// Picked candidates stay eligible, so collisions are possible.
type Round struct {
	height    uint64
	remaining uint64
}

// NewRound starts a round over a pool of poolSize validators.
func NewRound(height uint64, poolSize int) *Round {
	return &Round{height: height, remaining: uint64(poolSize)}
}

// Remaining is the pool size used by the next pick.
func (r *Round) Remaining() uint64 {
	return r.remaining
}

// Next picks one of candidates.
func (r *Round) Next(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", reverts.ErrNoValidatorsFound
	}
	size := min(r.remaining, uint64(len(candidates)))
	if size == 0 {
		size = 1
	}
	idx, err := Pick(r.height, size)
	if err != nil {
		return "", err
	}
	if r.remaining > 1 {
		r.remaining--
	}
	return candidates[idx], nil
}
