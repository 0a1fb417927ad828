// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"strconv"

	"github.com/vechain/nfthub/builtin/hub/record"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/nft"
)

// TokenName is the display name of the token minted under id.
func TokenName(tokenID string) string {
	return "Alliance NFT #" + tokenID
}

func mintMsg(collection, tokenID, owner string, height uint64, records []record.Record) (msgs.WasmExecute, error) {
	traits, err := record.ToTraits(records)
	if err != nil {
		return msgs.WasmExecute{}, err
	}
	return msgs.WasmExecute{
		Contract: collection,
		Msg: nft.MintMsg{
			TokenID: tokenID,
			Owner:   owner,
			Extension: nft.Metadata{
				Name:        TokenName(tokenID),
				Description: strconv.FormatUint(height, 10),
				Attributes:  traits,
			},
		},
	}, nil
}

// updateMsg keeps the current extension and swaps its attributes for records.
func updateMsg(t *token, records []record.Record) (msgs.WasmExecute, error) {
	traits, err := record.ToTraits(records)
	if err != nil {
		return msgs.WasmExecute{}, err
	}
	ext := t.info.Extension
	ext.Attributes = traits
	return msgs.WasmExecute{
		Contract: t.collection,
		Msg: nft.UpdateExtensionMsg{
			TokenID:   t.id,
			Extension: ext,
		},
	}, nil
}

func coinOf(r record.Record) msgs.Coin {
	return msgs.Coin{Denom: r.Denom, Amount: r.Amount.Clone()}
}
