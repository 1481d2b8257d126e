package cpu

import (
	"socprobe/internal/units"
)

// CoreTemperature tries the hwmon and thermal zone candidates for a core
// and returns the first plausible reading, or 0.
func (c *Collector) CoreTemperature(cpu int) float64 {
	for _, p := range c.env.Catalog.Expand("cpu.temp", cpu) {
		raw, ok := c.env.FS.Float(p, c.env.NormalTTL)
		if !ok {
			continue
		}
		if t := units.Celsius(raw); units.ValidCelsius(t) {
			return t
		}
	}
	return 0
}
