// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/solidity"
)

// Code ids of the contracts the host can run.
const (
	CodeNFT uint64 = iota + 1
	CodeHub
)

// ErrNoSuchContract is returned for calls to an unknown address.
var ErrNoSuchContract = errors.New("no such contract")

// ContractInfo describes an instantiated contract.
type ContractInfo struct {
	CodeID  uint64 `json:"code_id"`
	Creator string `json:"creator"`
	Admin   string `json:"admin"`
	Label   string `json:"label"`
}

type registry struct {
	seq       *solidity.Raw[uint64]
	contracts *solidity.Mapping[solidity.StringKey, *ContractInfo]
}

func newRegistry(ctx *solidity.Context) *registry {
	return &registry{
		seq:       solidity.NewRaw[uint64](ctx, "seq"),
		contracts: solidity.NewMapping[solidity.StringKey, *ContractInfo](ctx, "contracts"),
	}
}

func (r *registry) get(addr string) (*ContractInfo, error) {
	info, found, err := r.contracts.Lookup(solidity.StringKey(addr))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrap(ErrNoSuchContract, addr)
	}
	return info, nil
}

// register assigns the next address to a new instance.
func (r *registry) register(info *ContractInfo) (string, error) {
	switch info.CodeID {
	case CodeNFT, CodeHub:
	default:
		return "", errors.Errorf("no such code: %d", info.CodeID)
	}
	seq, _, err := r.seq.Get()
	if err != nil {
		return "", err
	}
	seq++
	if err := r.seq.Set(seq); err != nil {
		return "", err
	}
	addr := ContractAddress(info.CodeID, seq)
	if err := r.contracts.Set(solidity.StringKey(addr), info); err != nil {
		return "", err
	}
	return addr, nil
}
