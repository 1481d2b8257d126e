package cpu

import (
	"slices"
	"sort"

	"socprobe/internal/collector"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

// Clusters groups cores by hardware maximum frequency. Which cores
// share a cluster is detected once; the per-cluster limits and governor
// are re-read from the first member on every call.
func (c *Collector) Clusters() []domain.Cluster {
	env := c.env
	groups := c.grouping()

	out := make([]domain.Cluster, 0, len(groups))
	for i, g := range groups {
		first := g.cores[0]

		hwMax := units.KHzToMHz(g.maxKHz)
		hwMin := int64(0)
		if v, ok := env.LookupIntN("cpu.hw_min_freq", first, collector.TTLStatic); ok {
			hwMin = units.KHzToMHz(v)
		}

		curMin := hwMin
		if v, ok := env.LookupIntN("cpu.min_freq", first, collector.TTLSlow); ok {
			curMin = units.KHzToMHz(v)
		}

		curMax := hwMax
		if v, ok := env.LookupIntN("cpu.max_freq", first, collector.TTLSlow); ok {
			curMax = units.KHzToMHz(v)
		}

		governor := DefaultGovernor
		if v, ok := env.LookupN("cpu.governor", first, collector.TTLSlow); ok {
			governor = v
		}

		available, ok := env.FieldsN("cpu.available_governors", first, collector.TTLStatic)
		if !ok {
			available = slices.Clone(DefaultGovernors)
		}

		out = append(out, domain.Cluster{
			ClusterNumber:      i,
			Cores:              slices.Clone(g.cores),
			MinFreq:            hwMin,
			MaxFreq:            hwMax,
			CurrentMinFreq:     curMin,
			CurrentMaxFreq:     curMax,
			Governor:           governor,
			AvailableGovernors: available,
			PolicyPath:         env.Catalog.ExpandFirst("cpu.policy", first),
		})
	}

	return out
}

func (c *Collector) grouping() []group {
	if g := c.groups.Load(); g != nil {
		return *g
	}

	groups := groupCores(c.probeCores())
	if len(groups) == 0 {
		return nil
	}

	c.groups.CompareAndSwap(nil, &groups)
	return *c.groups.Load()
}

func (c *Collector) probeCores() []coreFreq {
	env := c.env

	var found []coreFreq
	for cpu := range maxCores {
		if !env.FS.Exists(env.Catalog.ExpandFirst("cpu.core", cpu)) {
			continue
		}

		maxKHz, ok := env.LookupIntN("cpu.hw_max_freq", cpu, collector.TTLStatic)
		if !ok || maxKHz <= 0 {
			continue
		}

		found = append(found, coreFreq{core: cpu, maxKHz: maxKHz})
	}

	return found
}

// groupCores buckets cores by identical ceiling, then orders the buckets
// by ascending frequency and their members by core number, so the
// result does not depend on discovery order.
func groupCores(cores []coreFreq) []group {
	byFreq := make(map[int64][]int)
	for _, cf := range cores {
		byFreq[cf.maxKHz] = append(byFreq[cf.maxKHz], cf.core)
	}

	groups := make([]group, 0, len(byFreq))
	for freq, members := range byFreq {
		sort.Ints(members)
		groups = append(groups, group{maxKHz: freq, cores: members})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].maxKHz < groups[j].maxKHz
	})

	return groups
}
