package power

import (
	"socprobe/internal/collector"
	"socprobe/internal/units"
)

const capacityTTL = 5 * collector.TTLSlow

// CapacityPercent compares the learned full charge with the design
// capacity. Ratios outside 50..100 are treated as bogus and reported as
// 100.
func (c *Collector) CapacityPercent() float64 {
	full, ok := c.env.LookupInt("battery.charge_full", capacityTTL)
	if !ok || full <= 0 {
		return 100
	}
	design, ok := c.env.LookupInt("battery.charge_full_design", capacityTTL)
	if !ok || design <= 0 {
		return 100
	}

	capacity := float64(full) / float64(design) * 100
	if capacity < 50 || capacity > 100 {
		return 100
	}
	return units.Round(capacity, 2)
}

// ChargeFlowMA derives the average current from successive readings of
// the coulomb counter (µAh). Positive values mean the battery gained
// charge. The first reading only sets the baseline.
func (c *Collector) ChargeFlowMA() float64 {
	counter, ok := c.env.LookupInt("battery.charge_counter", collector.TTLFast)
	if !ok {
		return 0
	}

	now := c.env.Clock()

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.flow
	if !prev.set {
		c.flow = chargeSample{counter: counter, at: now, set: true}
		return 0
	}

	elapsed := now.Sub(prev.at).Seconds()
	if elapsed <= 0 {
		return prev.rate
	}

	// µAh per second to mA
	rate := units.Round(float64(counter-prev.counter)/elapsed*3.6, 2)
	c.flow = chargeSample{counter: counter, at: now, rate: rate, set: true}
	return rate
}
