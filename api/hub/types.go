// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"github.com/vechain/nfthub/builtin/msgs"
)

// Call is the body of every hub command.
type Call struct {
	Sender string     `json:"sender"`
	Funds  msgs.Coins `json:"funds,omitempty"`
}
