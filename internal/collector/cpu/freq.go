package cpu

import (
	"strconv"

	"socprobe/internal/collector"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

// Cores lists per-core frequency state. cpu0 is always online; the scan
// stops at the first core that is offline and has no cpufreq node.
func (c *Collector) Cores() []domain.CoreInfo {
	env := c.env

	cores := []domain.CoreInfo{}
	for cpu := range maxCores {
		if cpu == 0 && !env.FS.Exists(env.Catalog.ExpandFirst("cpu.core", 0)) {
			break
		}

		online := cpu == 0
		if !online {
			v, ok := env.LookupIntN("cpu.online", cpu, collector.TTLFast)
			online = ok && v == 1
		}

		curPath := env.Catalog.ExpandFirst("cpu.cur_freq", cpu)
		if !online && !env.FS.Exists(curPath) {
			break
		}

		core := domain.CoreInfo{
			Core:     cpu,
			Online:   online,
			Governor: c.Governor(cpu),
		}

		if online {
			if v, ok := env.FS.Int(curPath, collector.TTLFast); ok {
				core.Freq = units.KHzToMHz(v)
			}
		}
		if v, ok := env.LookupIntN("cpu.min_freq", cpu, collector.TTLSlow); ok {
			core.MinFreq = units.KHzToMHz(v)
		}
		if v, ok := env.LookupIntN("cpu.max_freq", cpu, collector.TTLSlow); ok {
			core.MaxFreq = units.KHzToMHz(v)
		}

		cores = append(cores, core)
	}

	return cores
}

func (c *Collector) Governor(cpu int) string {
	if v, ok := c.env.LookupN("cpu.governor", cpu, collector.TTLSlow); ok {
		return v
	}
	return unknown
}

func (c *Collector) AvailableGovernors(cpu int) []string {
	if f, ok := c.env.FieldsN("cpu.available_governors", cpu, collector.TTLStatic); ok {
		return f
	}
	return []string{}
}

// SystemGovernors returns the governor list of the first core among
// cpu0..cpu7 that exposes one.
func (c *Collector) SystemGovernors() []string {
	for cpu := range 8 {
		if g := c.AvailableGovernors(cpu); len(g) > 0 {
			return g
		}
	}
	return []string{}
}

// AvailableFrequencies returns the scaling table of a core in MHz.
func (c *Collector) AvailableFrequencies(cpu int) []int64 {
	out := []int64{}

	fields, ok := c.env.FieldsN("cpu.available_frequencies", cpu, collector.TTLStatic)
	if !ok {
		return out
	}

	for _, f := range fields {
		if khz, err := strconv.ParseInt(f, 10, 64); err == nil {
			out = append(out, units.KHzToMHz(khz))
		}
	}
	return out
}

// Policy returns the current cpufreq policy of a core. Every attribute
// must be readable.
func (c *Collector) Policy(cpu int) (domain.Policy, bool) {
	env := c.env

	governor, ok := env.LookupN("cpu.governor", cpu, collector.TTLSlow)
	if !ok {
		return domain.Policy{}, false
	}
	minKHz, ok := env.LookupIntN("cpu.min_freq", cpu, collector.TTLSlow)
	if !ok {
		return domain.Policy{}, false
	}
	maxKHz, ok := env.LookupIntN("cpu.max_freq", cpu, collector.TTLSlow)
	if !ok {
		return domain.Policy{}, false
	}
	curKHz, ok := env.LookupIntN("cpu.cur_freq", cpu, collector.TTLFast)
	if !ok {
		return domain.Policy{}, false
	}

	return domain.Policy{
		CPU:      cpu,
		Governor: governor,
		MinFreq:  units.KHzToMHz(minKHz),
		MaxFreq:  units.KHzToMHz(maxKHz),
		CurFreq:  units.KHzToMHz(curKHz),
	}, true
}
