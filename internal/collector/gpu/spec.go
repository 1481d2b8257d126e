package gpu

import (
	"strings"

	"socprobe/internal/collector"
)

// Governor returns the devfreq governor, or "unknown".
func (c *Collector) Governor() string {
	if v, ok := c.env.Lookup("gpu.governor", collector.TTLSlow); ok {
		return v
	}
	return unknown
}

func (c *Collector) AvailableGovernors() []string {
	v, ok := c.env.Lookup("gpu.available_governors", collector.TTLStatic)
	if !ok {
		return []string{}
	}
	return strings.Fields(v)
}

// Driver returns the raw model string the kgsl driver reports.
func (c *Collector) Driver() string {
	if v, ok := c.env.Lookup("gpu.adreno_model", collector.TTLStatic); ok {
		return v
	}
	return unknown
}
