package power

import "socprobe/internal/collector"

func (c *Collector) WakeupCount() int64 {
	v, _ := c.env.LookupInt("power.wakeup_count", collector.TTLSlow)
	return v
}

// SuspendCount reads debugfs, which is usually root-only; 0 otherwise.
func (c *Collector) SuspendCount() int64 {
	v, _ := c.env.LookupInt("power.suspend_success", collector.TTLSlow)
	return v
}
