package gpu

import (
	"strconv"
	"strings"

	"socprobe/internal/collector"
	"socprobe/internal/delta"
	"socprobe/internal/domain"
)

// Busy returns GPU utilisation in percent. Adreno exposes either a ready
// percentage or a pair of busy/total cycle counters.
func (c *Collector) Busy() float64 {
	switch c.Vendor().Vendor {
	case domain.VendorQualcomm:
		return c.adrenoBusy()
	case domain.VendorMali:
		if v, ok := c.env.LookupInt("gpu.mali_busy", collector.TTLFast); ok {
			return delta.ClampPercent(float64(v))
		}
	}
	return 0
}

func (c *Collector) adrenoBusy() float64 {
	env := c.env

	if v, ok := env.Lookup("gpu.adreno_busy_percent", collector.TTLFast); ok {
		if p, ok := parsePercent(v); ok {
			return p
		}
	}

	h, ok := env.FS.Resolve("gpu.adreno_busy_counters", env.Catalog.Paths("gpu.adreno_busy_counters"))
	if !ok {
		return 0
	}

	// counters must be fresh on every call
	raw, ok := env.FS.Raw(h.Path)
	if !ok {
		return 0
	}

	busy, total, ok := parseBusyCounters(raw)
	if !ok {
		return 0
	}

	return env.Delta.Sample(busyKey, delta.Busy, total, busy)
}

func parseBusyCounters(s string) (busy, total uint64, ok bool) {
	f := strings.Fields(s)
	if len(f) < 2 {
		return 0, 0, false
	}

	busy, err := strconv.ParseUint(f[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	total, err = strconv.ParseUint(f[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return busy, total, true
}

// parsePercent accepts "42" as well as the kgsl form "42 %".
func parsePercent(s string) (float64, bool) {
	f := strings.Fields(strings.ReplaceAll(s, "%", " "))
	if len(f) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return 0, false
	}
	return delta.ClampPercent(v), true
}
