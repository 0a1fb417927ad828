// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"os"
	"sync/atomic"

	"github.com/elastic/gosigar"
	"github.com/prometheus/client_golang/prometheus"
)

// processCollector reports memory, cpu time and file descriptors of the node
// process as seen by the operating system.
type processCollector struct {
	pid int

	residentDesc *prometheus.Desc
	virtualDesc  *prometheus.Desc
	cpuDesc      *prometheus.Desc
	fdsDesc      *prometheus.Desc
}

func newProcessCollector() *processCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "process", name), help, nil, nil)
	}
	return &processCollector{
		pid:          os.Getpid(),
		residentDesc: desc("resident_memory_bytes", "Resident memory size in bytes."),
		virtualDesc:  desc("virtual_memory_bytes", "Virtual memory size in bytes."),
		cpuDesc:      desc("cpu_milliseconds_total", "Total user and system CPU time spent in milliseconds."),
		fdsDesc:      desc("open_fds", "Number of open file descriptors."),
	}
}

// Describe implements prometheus.Collector.
func (c *processCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.residentDesc
	ch <- c.virtualDesc
	ch <- c.cpuDesc
	ch <- c.fdsDesc
}

// Collect implements prometheus.Collector. Figures the platform cannot provide are skipped.
func (c *processCollector) Collect(ch chan<- prometheus.Metric) {
	var mem gosigar.ProcMem
	if err := mem.Get(c.pid); err == nil {
		ch <- prometheus.MustNewConstMetric(c.residentDesc, prometheus.GaugeValue, float64(mem.Resident))
		ch <- prometheus.MustNewConstMetric(c.virtualDesc, prometheus.GaugeValue, float64(mem.Size))
	}
	var cpu gosigar.ProcTime
	if err := cpu.Get(c.pid); err == nil {
		ch <- prometheus.MustNewConstMetric(c.cpuDesc, prometheus.CounterValue, float64(cpu.Total))
	}
	var fds gosigar.ProcFDUsage
	if err := fds.Get(c.pid); err == nil {
		ch <- prometheus.MustNewConstMetric(c.fdsDesc, prometheus.GaugeValue, float64(fds.Open))
	}
}

var registered atomic.Bool

func registerProcessCollector() {
	if registered.CompareAndSwap(false, true) {
		register(newProcessCollector())
	}
}
