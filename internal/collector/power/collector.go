// Package power reads the battery and suspend statistics exposed under
// /sys/class/power_supply and /sys/power.
package power

import (
	"socprobe/internal/collector"
	"socprobe/internal/domain"
)

func NewCollector(env *collector.Env) *Collector {
	return &Collector{env: env}
}

func (c *Collector) Collect() domain.PowerInfo {
	return domain.PowerInfo{
		Battery:      c.Battery(),
		WakeupCount:  c.WakeupCount(),
		SuspendCount: c.SuspendCount(),
	}
}

func (c *Collector) Battery() domain.BatteryInfo {
	return domain.BatteryInfo{
		Level:           c.Level(),
		Temperature:     c.Temperature(),
		VoltageMV:       c.VoltageMV(),
		CurrentMA:       c.CurrentMA(),
		DrainRateMA:     c.DrainRateMA(),
		ChargeFlowMA:    c.ChargeFlowMA(),
		Charging:        c.Charging(),
		Status:          c.Status(),
		Health:          c.Health(),
		CycleCount:      c.CycleCount(),
		CapacityPercent: c.CapacityPercent(),
	}
}

func (c *Collector) Reset() {
	c.mu.Lock()
	c.flow = chargeSample{}
	c.mu.Unlock()
}
