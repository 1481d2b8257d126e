// Package network reports interface throughput from /proc/net/dev.
package network

import (
	"slices"

	"socprobe/internal/collector"
	"socprobe/internal/delta"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

const netdevLimit = 32 * 1024

var (
	rxKey = delta.Key{Metric: "net.rx"}
	txKey = delta.Key{Metric: "net.tx"}
)

type Collector struct {
	env *collector.Env
}

func NewCollector(env *collector.Env) *Collector {
	return &Collector{env: env}
}

// Collect sums every interface except loopback and the configured
// exclusions.
func (c *Collector) Collect() domain.NetworkStats {
	data, ok := c.env.File("network.dev", netdevLimit)
	if !ok {
		return domain.NetworkStats{Interfaces: []string{}}
	}

	skip := c.env.Catalog.Paths("network.exclude")

	out := domain.NetworkStats{Interfaces: []string{}}
	for _, l := range parseNetDev(data) {
		if l.iface == "lo" || slices.Contains(skip, l.iface) {
			continue
		}
		out.Interfaces = append(out.Interfaces, l.iface)
		out.RxBytes += l.rxBytes
		out.TxBytes += l.txBytes
	}

	out.RxSpeed = units.Round(c.env.Delta.Throughput(rxKey, out.RxBytes), 2)
	out.TxSpeed = units.Round(c.env.Delta.Throughput(txKey, out.TxBytes), 2)

	return out
}
