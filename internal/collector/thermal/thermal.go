// Package thermal reads /sys/class/thermal zones.
package thermal

import (
	"strconv"
	"sync/atomic"

	"socprobe/internal/collector"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

const (
	maxZones     = 84
	hottestZones = 20
	primaryZones = 10
)

var cpuZoneTypes = []string{"cpu", "tsens"}

type Collector struct {
	env *collector.Env

	// primary is the zone index + 1; zero means not yet found.
	primary atomic.Int32
}

func NewCollector(env *collector.Env) *Collector {
	return &Collector{env: env}
}

func (c *Collector) Collect() domain.ThermalInfo {
	return domain.ThermalInfo{
		CPU:     c.CPUTemperature(),
		Hottest: c.Hottest(),
		Zones:   c.Zones(),
	}
}

// ZoneTemperature returns the zone's temperature in °C, or 0 when it is
// missing or outside 0..150.
func (c *Collector) ZoneTemperature(zone int) float64 {
	raw, ok := c.env.FS.Float(c.env.Catalog.ExpandFirst("thermal.zone_temp", zone), c.env.NormalTTL)
	if !ok {
		return 0
	}

	if t := units.Celsius(raw); units.ValidCelsius(t) {
		return t
	}
	return 0
}

// ZoneType returns the zone's type, or "zone<N>".
func (c *Collector) ZoneType(zone int) string {
	if v, ok := c.env.FS.String(c.env.Catalog.ExpandFirst("thermal.zone_type", zone), collector.TTLStatic); ok {
		return v
	}
	return "zone" + strconv.Itoa(zone)
}

// PrimaryZone is the first of zones 0..9 whose type names the CPU, or
// 0. Only a real match is remembered.
func (c *Collector) PrimaryZone() int {
	if p := c.primary.Load(); p > 0 {
		return int(p - 1)
	}

	for zone := range primaryZones {
		typ := c.ZoneType(zone)
		if typ == "pa" || domain.ContainsAny(typ, cpuZoneTypes) {
			c.primary.CompareAndSwap(0, int32(zone+1))
			return int(c.primary.Load() - 1)
		}
	}

	return 0
}

// CPUTemperature reads the primary zone and falls back to the usual
// zone0 and hwmon nodes.
func (c *Collector) CPUTemperature() float64 {
	if t := c.ZoneTemperature(c.PrimaryZone()); t > 0 {
		return t
	}

	for _, p := range c.env.Catalog.Paths("thermal.cpu_fallback") {
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

// Zones lists every zone among 0..83 with a valid reading.
func (c *Collector) Zones() []domain.ThermalZone {
	out := []domain.ThermalZone{}

	for zone := range maxZones {
		t := c.ZoneTemperature(zone)
		if t <= 0 {
			continue
		}
		out = append(out, domain.ThermalZone{
			Zone:        zone,
			Type:        c.ZoneType(zone),
			Temperature: units.Round(t, 1),
		})
	}
	return out
}

// Hottest returns the warmest of zones 0..19. With no readings it is
// zone 0 at 0 °C.
func (c *Collector) Hottest() domain.ThermalZone {
	hot := domain.ThermalZone{}

	for zone := range hottestZones {
		if t := c.ZoneTemperature(zone); t > hot.Temperature {
			hot = domain.ThermalZone{Zone: zone, Temperature: t}
		}
	}

	hot.Type = c.ZoneType(hot.Zone)
	return hot
}

func (c *Collector) Reset() {
	c.primary.Store(0)
}
