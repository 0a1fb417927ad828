// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/vechain/nfthub/metrics"

var (
	metricExecutionDuration = metrics.LazyLoadHistogramVec("runtime_execution_duration_ms", []string{"call", "status"}, metrics.Bucket10s)
	metricChainHeight       = metrics.LazyLoadGauge("runtime_chain_height")
	metricMatured           = metrics.LazyLoadCounter("runtime_matured_unbondings_count")
)

func status(err error) string {
	if err != nil {
		return "reverted"
	}
	return "committed"
}
