// Package disk reports block-device throughput from /proc/diskstats.
package disk

import (
	"socprobe/internal/collector"
	"socprobe/internal/domain"
)

const (
	sectorSize     = 512
	diskstatsLimit = 64 * 1024
)

type Collector struct {
	env *collector.Env
}

func NewCollector(env *collector.Env) *Collector {
	return &Collector{env: env}
}

// Collect reports the primary device: the first of the configured
// candidates present in /proc/diskstats.
func (c *Collector) Collect() domain.DiskStats {
	all := c.Devices()
	if len(all) == 0 {
		return domain.DiskStats{}
	}
	return all[0]
}

// Devices reports every configured candidate present, in catalog order.
func (c *Collector) Devices() []domain.DiskStats {
	out := []domain.DiskStats{}

	data, ok := c.env.File("disk.stats", diskstatsLimit)
	if !ok {
		return out
	}
	lines := parseDiskstats(data)

	for i, name := range c.env.Catalog.Paths("disk.devices") {
		l, ok := lines[name]
		if !ok {
			continue
		}
		out = append(out, c.stats(i, l))
	}
	return out
}

// Device returns the primary device name, or "".
func (c *Collector) Device() string {
	return c.Collect().Device
}
