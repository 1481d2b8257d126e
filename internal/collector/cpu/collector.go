// Package cpu reads CPU topology, per-core frequency state and load.
package cpu

import (
	"socprobe/internal/collector"
	"socprobe/internal/domain"
)

func NewCollector(env *collector.Env) *Collector {
	return &Collector{env: env}
}

func (c *Collector) Collect() domain.CPUInfo {
	return domain.CPUInfo{
		Model:     c.Model(),
		Driver:    c.Driver(),
		Clusters:  c.Clusters(),
		Cores:     c.Cores(),
		Load:      c.Load(),
		Governors: c.SystemGovernors(),
	}
}

// Reset forgets the memoized topology and model.
func (c *Collector) Reset() {
	c.groups.Store(nil)
	c.model.Store(nil)
	c.loadCores.Store(nil)
}
