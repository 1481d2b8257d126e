package gpu

import (
	"socprobe/internal/collector"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

// Temperature reads the first thermal zone whose type names the GPU.
func (c *Collector) Temperature() float64 {
	env := c.env

	for zone := range thermalZones {
		typ, ok := env.FS.String(env.Catalog.ExpandFirst("thermal.zone_type", zone), collector.TTLStatic)
		if !ok || !domain.ContainsAny(typ, gpuZoneTypes) {
			continue
		}

		raw, ok := env.FS.Float(env.Catalog.ExpandFirst("thermal.zone_temp", zone), env.NormalTTL)
		if !ok {
			continue
		}

		if t := units.Celsius(raw); units.ValidCelsius(t) {
			return t
		}
	}

	return 0
}
