package main

import (
	"sync"
	"sync/atomic"

	"socprobe/internal/codec"
	"socprobe/internal/config"
	"socprobe/internal/logger"
	"socprobe/internal/telemetry"
)

var (
	current  atomic.Pointer[telemetry.Service]
	initOnce sync.Once
)

// service returns the process-wide service, building it from the
// environment on first use.
func service() *telemetry.Service {
	initOnce.Do(func() {
		if current.Load() != nil {
			return
		}
		if svc, err := newService(""); err == nil {
			current.CompareAndSwap(nil, svc)
		}
	})
	return current.Load()
}

func newService(root string) (*telemetry.Service, error) {
	cfg := config.Load()
	if root != "" {
		cfg.SysfsRoot = root
	}
	return telemetry.NewService(cfg, logger.New(cfg))
}

// install replaces the process-wide service.
func install(svc *telemetry.Service) {
	current.Store(svc)
}

func encode(v any, err error) string {
	if err != nil {
		return "null"
	}
	b, err := codec.JSON.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func snapshotJSON() string {
	svc := service()
	if svc == nil {
		return "null"
	}
	return encode(svc.Snapshot(), nil)
}

func familyJSON(name string) string {
	svc := service()
	if svc == nil {
		return "null"
	}
	return encode(svc.Family(name))
}

func clustersJSON() string {
	svc := service()
	if svc == nil {
		return "[]"
	}
	return encode(svc.CPU().Clusters(), nil)
}

func cpuLoad() float64 {
	if svc := service(); svc != nil {
		return svc.CPU().TotalLoad()
	}
	return 0
}

func cpuTemperature() float64 {
	if svc := service(); svc != nil {
		return svc.Thermal().CPUTemperature()
	}
	return 0
}

func gpuBusy() float64 {
	if svc := service(); svc != nil {
		return svc.GPU().Busy()
	}
	return 0
}

func batteryCurrent() int {
	if svc := service(); svc != nil {
		return int(svc.Power().CurrentMA())
	}
	return 0
}

func batteryLevel() int {
	if svc := service(); svc != nil {
		return svc.Power().Level()
	}
	return 0
}

func charging() bool {
	if svc := service(); svc != nil {
		return svc.Power().Charging()
	}
	return false
}

func prop(key string) string {
	if svc := service(); svc != nil {
		return svc.Prop(key)
	}
	return ""
}

func reset() {
	if svc := service(); svc != nil {
		svc.Reset()
	}
}
