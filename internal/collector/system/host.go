package system

import (
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
)

func (c *Collector) identity() identity {
	if id := c.ident.Load(); id != nil {
		return *id
	}

	id := identity{hostname: unknown, kernel: unknown, platform: unknown, arch: unknown}

	info, err := host.InfoWithContext(c.ctx)
	if err != nil {
		c.env.Log.Debug("host info unavailable", "error", err)
	}
	if info != nil {
		id.hostname = orUnknown(info.Hostname)
		id.kernel = orUnknown(info.KernelVersion)
		id.arch = orUnknown(info.KernelArch)
		id.platform = orUnknown(info.Platform)
	}

	if v, ok := c.env.Prop("ro.build.version.release"); ok {
		id.platform = "Android " + v
	}

	c.ident.CompareAndSwap(nil, &id)
	return *c.ident.Load()
}

// Uptime returns seconds since boot, or 0.
func (c *Collector) Uptime() uint64 {
	up, err := host.UptimeWithContext(c.ctx)
	if err != nil {
		c.env.Log.Debug("uptime unavailable", "error", err)
		return 0
	}
	return up
}

// LoadAverage returns the 1, 5 and 15 minute load averages.
func (c *Collector) LoadAverage() (float64, float64, float64) {
	avg, err := load.AvgWithContext(c.ctx)
	if err != nil || avg == nil {
		c.env.Log.Debug("load average unavailable", "error", err)
		return 0, 0, 0
	}
	return avg.Load1, avg.Load5, avg.Load15
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
