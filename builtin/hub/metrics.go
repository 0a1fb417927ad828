// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import "github.com/vechain/nfthub/metrics"

var (
	metricCommands = metrics.LazyLoadCounterVec("hub_commands_count", []string{"command", "status"})
	metricReplies  = metrics.LazyLoadCounterVec("hub_replies_count", []string{"reply", "status"})
)

func status(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
