package gpu

import (
	"socprobe/internal/collector"
	"socprobe/internal/delta"
)

const (
	unknown      = "unknown"
	thermalZones = 20
)

var gpuZoneTypes = []string{"gpu", "gpuss", "gpu0", "gpu1"}

var busyKey = delta.Key{Metric: "gpu.busy", Index: 0}

type Collector struct {
	env    *collector.Env
	vendor *VendorDetector
}
