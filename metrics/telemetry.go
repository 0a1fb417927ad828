// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes process wide meters. Meters are no-ops until
// InitializePrometheusMetrics switches the backend to prometheus.
package metrics

import (
	"net/http"
	"sync"

	"github.com/vechain/nfthub/log"
)

var logger = log.WithContext("pkg", "metrics")

// backend serves every meter lookup.
var backend Backend = noopBackend{}

// Backend creates or returns the meter registered under a name.
type Backend interface {
	Counter(name string) CountMeter
	CounterVec(name string, labels []string) CountVecMeter
	Gauge(name string) GaugeMeter
	GaugeVec(name string, labels []string) GaugeVecMeter
	Histogram(name string, buckets []int64) HistogramMeter
	HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter
	Handler() http.Handler
}

// Histogram buckets, in milliseconds.
var (
	Bucket10s      = []int64{0, 500, 1000, 2000, 3000, 4000, 5000, 7500, 10_000}
	BucketHTTPReqs = []int64{
		0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
		150, 200, 300, 400, 500, 750, 1000,
		1500, 2000, 3000, 4000, 5000, 10000,
	}
)

type (
	// CountMeter is a monotonically increasing counter.
	CountMeter interface{ Add(int64) }
	// CountVecMeter is a labelled CountMeter.
	CountVecMeter interface {
		AddWithLabel(int64, map[string]string)
	}
	// GaugeMeter is a value that goes up and down.
	GaugeMeter interface {
		Add(int64)
		Set(int64)
	}
	// GaugeVecMeter is a labelled GaugeMeter.
	GaugeVecMeter interface {
		AddWithLabel(int64, map[string]string)
		SetWithLabel(int64, map[string]string)
	}
	// HistogramMeter buckets observed values.
	HistogramMeter interface{ Observe(int64) }
	// HistogramVecMeter is a labelled HistogramMeter.
	HistogramVecMeter interface {
		ObserveWithLabels(int64, map[string]string)
	}
)

// HTTPHandler serves the current backend's meters.
func HTTPHandler() http.Handler { return backend.Handler() }

func Counter(name string) CountMeter { return backend.Counter(name) }

func CounterVec(name string, labels []string) CountVecMeter {
	return backend.CounterVec(name, labels)
}

func Gauge(name string) GaugeMeter { return backend.Gauge(name) }

func GaugeVec(name string, labels []string) GaugeVecMeter {
	return backend.GaugeVec(name, labels)
}

func Histogram(name string, buckets []int64) HistogramMeter {
	return backend.Histogram(name, buckets)
}

func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return backend.HistogramVec(name, labels, buckets)
}

// LazyLoad defers creating a meter to its first use, so package level
// meters resolve against whichever backend is active by then.
func LazyLoad[T any](f func() T) func() T {
	return sync.OnceValue(f)
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return LazyLoad(func() GaugeVecMeter { return GaugeVec(name, labels) })
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter { return Histogram(name, buckets) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return HistogramVec(name, labels, buckets) })
}
