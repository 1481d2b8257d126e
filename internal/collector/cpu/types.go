package cpu

import (
	"sync/atomic"

	"socprobe/internal/collector"
	"socprobe/internal/delta"
)

const maxCores = 16

const (
	DefaultGovernor = "schedutil"
	unknown         = "unknown"
)

var DefaultGovernors = []string{"schedutil", "performance", "powersave"}

var aggregateKey = delta.Key{Metric: "cpu.load", Index: -1}

type Collector struct {
	env *collector.Env

	groups    atomic.Pointer[[]group]
	model     atomic.Pointer[string]
	loadCores atomic.Pointer[[]int]
}

// group is a set of cores sharing a hardware frequency ceiling.
type group struct {
	maxKHz int64
	cores  []int
}

type coreFreq struct {
	core   int
	maxKHz int64
}

type statLine struct {
	index int
	total uint64
	idle  uint64
}
