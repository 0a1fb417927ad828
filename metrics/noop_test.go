// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopBackend(t *testing.T) {
	var b noopBackend

	labels := map[string]string{"unknown": "label"}
	assert.NotPanics(t, func() {
		b.Counter("c").Add(1)
		b.CounterVec("cv", []string{"call"}).AddWithLabel(1, labels)
		b.Gauge("g").Set(3)
		b.GaugeVec("gv", nil).SetWithLabel(3, labels)
		b.Histogram("h", nil).Observe(10)
		b.HistogramVec("hv", nil, nil).ObserveWithLabels(10, labels)
	})

	server := httptest.NewServer(b.Handler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
