package memory

import "socprobe/internal/collector"

// Swappiness returns vm.swappiness, or -1 when it cannot be read.
func (c *Collector) Swappiness() int {
	v, ok := c.env.LookupInt("memory.swappiness", collector.TTLSlow)
	if !ok {
		return -1
	}
	return int(v)
}
