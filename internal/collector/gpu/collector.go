// Package gpu identifies the GPU and reads its frequency, utilisation,
// temperature and devfreq policy.
package gpu

import (
	"socprobe/internal/collector"
	"socprobe/internal/domain"
)

func NewCollector(env *collector.Env) *Collector {
	return &Collector{
		env:    env,
		vendor: NewVendorDetector(env),
	}
}

func (c *Collector) Vendor() domain.GPUVendor {
	return c.vendor.Detect()
}

func (c *Collector) Collect() domain.GPUInfo {
	minFreq, maxFreq := c.FreqRange()

	return domain.GPUInfo{
		GPUVendor:            c.Vendor(),
		Load:                 c.Load(),
		AvailableFrequencies: c.AvailableFrequencies(),
		MinFreq:              minFreq,
		MaxFreq:              maxFreq,
		Governor:             c.Governor(),
		AvailableGovernors:   c.AvailableGovernors(),
		Driver:               c.Driver(),
	}
}

func (c *Collector) Reset() {
	c.vendor.Reset()
}
