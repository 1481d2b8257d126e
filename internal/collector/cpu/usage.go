package cpu

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"socprobe/internal/delta"
	"socprobe/internal/domain"
)

const statLimit = 64 * 1024

// Load returns aggregate and per-core utilisation since the previous
// call. PerCore follows the order of the cpuN lines in /proc/stat, which
// omits offline cores. Calls closer together than the configured minimum interval get
// the previous result without touching /proc/stat.
func (c *Collector) Load() domain.CPULoad {
	env := c.env

	if total, ok := env.Delta.Recent(aggregateKey, env.LoadMinInterval); ok {
		return domain.CPULoad{Total: total, PerCore: c.lastPerCore()}
	}

	data, ok := env.File("cpu.stat", statLimit)
	if !ok {
		return domain.CPULoad{PerCore: []float64{}}
	}

	load := domain.CPULoad{PerCore: []float64{}}
	cores := []int{}
	for _, l := range parseStat(data) {
		if l.index < 0 {
			load.Total = env.Delta.Sample(aggregateKey, delta.Idle, l.total, l.idle)
			continue
		}
		load.PerCore = append(load.PerCore, env.Delta.Sample(coreKey(l.index), delta.Idle, l.total, l.idle))
		cores = append(cores, l.index)
	}

	c.loadCores.Store(&cores)

	return load
}

func (c *Collector) TotalLoad() float64 {
	return c.Load().Total
}

// CoreLoad returns the load of one core, or 0 for a core that is
// offline or unknown.
func (c *Collector) CoreLoad(cpu int) float64 {
	l := c.Load()
	for i, n := range c.reportedCores() {
		if n == cpu && i < len(l.PerCore) {
			return l.PerCore[i]
		}
	}
	return 0
}

// reportedCores lists the core numbers behind PerCore, in order.
func (c *Collector) reportedCores() []int {
	if p := c.loadCores.Load(); p != nil {
		return *p
	}
	return nil
}

func (c *Collector) lastPerCore() []float64 {
	cores := c.reportedCores()
	out := make([]float64, 0, len(cores))
	for _, n := range cores {
		v, _ := c.env.Delta.Last(coreKey(n))
		out = append(out, v)
	}
	return out
}

func coreKey(i int) delta.Key {
	return delta.Key{Metric: "cpu.core_load", Index: i}
}

// parseStat extracts (total, idle) jiffies for the aggregate line
// (index -1) and every cpuN line. Idle includes iowait.
func parseStat(data []byte) []statLine {
	var out []statLine

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || !strings.HasPrefix(fields[0], "cpu") {
			continue
		}

		index := -1
		if fields[0] != "cpu" {
			n, err := strconv.Atoi(strings.TrimPrefix(fields[0], "cpu"))
			if err != nil {
				continue
			}
			index = n
		}

		// user nice system idle iowait irq softirq steal; guest time is
		// already counted in user.
		var vals [8]uint64
		for i := 0; i < len(vals) && i+1 < len(fields); i++ {
			vals[i], _ = strconv.ParseUint(fields[i+1], 10, 64)
		}

		var total uint64
		for _, v := range vals {
			total += v
		}

		out = append(out, statLine{
			index: index,
			total: total,
			idle:  vals[3] + vals[4],
		})
	}

	return out
}
