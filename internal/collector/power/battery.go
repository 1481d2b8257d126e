package power

import (
	"math"
	"strings"

	"socprobe/internal/collector"
	"socprobe/internal/units"
)

// Level returns the state of charge in percent, or 0.
func (c *Collector) Level() int {
	v, _ := c.env.LookupInt("battery.capacity", c.env.NormalTTL)
	return int(v)
}

func (c *Collector) Temperature() float64 {
	v, ok := c.env.LookupInt("battery.temp", c.env.NormalTTL)
	if !ok {
		return 0
	}
	return units.BatteryCelsius(float64(v))
}

func (c *Collector) VoltageMV() float64 {
	v, _ := c.env.LookupInt("battery.voltage", c.env.NormalTTL)
	return units.Millivolts(v)
}

// CurrentMA is the signed battery current. The sign convention is the
// driver's own.
func (c *Collector) CurrentMA() float64 {
	v, _ := c.env.LookupInt("battery.current", c.env.NormalTTL)
	return units.CurrentMilliamps(v)
}

// DrainRateMA is the magnitude of the battery current.
func (c *Collector) DrainRateMA() float64 {
	return math.Abs(c.CurrentMA())
}

func (c *Collector) Status() string {
	if v, ok := c.env.Lookup("battery.status", c.env.NormalTTL); ok {
		return v
	}
	return unknownHealth
}

// Charging is true for the "Charging" status only; "Not charging" and
// "Discharging" do not match.
func (c *Collector) Charging() bool {
	v, ok := c.env.Lookup("battery.status", c.env.NormalTTL)
	return ok && strings.Contains(v, "Charging")
}

func (c *Collector) Health() string {
	if v, ok := c.env.Lookup("battery.health", collector.TTLSlow); ok {
		return v
	}
	return unknownHealth
}

// CycleCount returns -1 when no driver reports it.
func (c *Collector) CycleCount() int {
	v, ok := c.env.LookupInt("battery.cycle_count", collector.TTLSlow)
	if !ok {
		return -1
	}
	return int(v)
}
