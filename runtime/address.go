// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Module accounts.
const (
	BankAddress         = "bank"
	StakingAddress      = "staking"
	DistributionAddress = "distribution"
	registryAddress     = "wasm"
	chainAddress        = "chain"
)

// AddressPrefix starts every derived contract address.
const AddressPrefix = "nfthub1"

// ContractAddress derives the address of the seq-th instance of a code.
func ContractAddress(codeID, seq uint64) string {
	var buf [8 + 8 + 8]byte
	copy(buf[:], "contract")
	binary.BigEndian.PutUint64(buf[8:], codeID)
	binary.BigEndian.PutUint64(buf[16:], seq)
	sum := blake2b.Sum256(buf[:])
	return AddressPrefix + hex.EncodeToString(sum[:20])
}
