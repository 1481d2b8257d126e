// Package memory reports RAM, swap and zram usage.
package memory

import (
	"socprobe/internal/collector"
	"socprobe/internal/domain"
)

func NewCollector(env *collector.Env) *Collector {
	return &Collector{env: env}
}

func (c *Collector) Collect() domain.MemoryInfo {
	return domain.MemoryInfo{
		MemInfo:    c.MemInfo(),
		Zram:       c.Zram(),
		Swappiness: c.Swappiness(),
	}
}
