package gpu

import (
	"slices"
	"strconv"
	"strings"

	"socprobe/internal/collector"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

// Frequency returns the current GPU clock in MHz, or 0.
func (c *Collector) Frequency() int64 {
	var key string
	switch c.Vendor().Vendor {
	case domain.VendorQualcomm:
		key = "gpu.adreno_freq"
	case domain.VendorMali:
		key = "gpu.mali_freq"
	default:
		key = "gpu.generic_freq"
	}

	raw, ok := c.env.LookupInt(key, collector.TTLFast)
	if !ok {
		return 0
	}
	return units.FrequencyMHz(raw)
}

// AvailableFrequencies returns the devfreq table in MHz, in the order
// the driver lists it.
func (c *Collector) AvailableFrequencies() []int64 {
	out := []int64{}

	v, ok := c.env.Lookup("gpu.available_frequencies", collector.TTLStatic)
	if !ok {
		return out
	}

	for _, f := range strings.Fields(v) {
		if hz, err := strconv.ParseInt(f, 10, 64); err == nil {
			out = append(out, units.FrequencyMHz(hz))
		}
	}
	return out
}

func (c *Collector) FreqRange() (int64, int64) {
	freqs := c.AvailableFrequencies()
	if len(freqs) == 0 {
		return 0, 0
	}
	return slices.Min(freqs), slices.Max(freqs)
}

// Load bundles clock, utilisation and temperature. The GPU counts as
// throttled when it runs below 90% of its top frequency.
func (c *Collector) Load() domain.GPULoad {
	freq := c.Frequency()
	_, maxFreq := c.FreqRange()

	return domain.GPULoad{
		FrequencyMHz: freq,
		BusyPercent:  c.Busy(),
		Temperature:  c.Temperature(),
		Throttled:    maxFreq > 0 && freq > 0 && freq < maxFreq*9/10,
	}
}
