// Package system reports host identity, uptime and load average.
package system

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/shirou/gopsutil/v3/common"

	"socprobe/internal/collector"
	"socprobe/internal/domain"
)

const unknown = "unknown"

type Collector struct {
	env *collector.Env
	ctx context.Context

	ident atomic.Pointer[identity]
}

type identity struct {
	hostname string
	kernel   string
	platform string
	arch     string
}

func NewCollector(env *collector.Env) *Collector {
	return &Collector{
		env: env,
		ctx: hostContext(env.Root),
	}
}

// hostContext points gopsutil at the same root as the attribute reader.
func hostContext(root string) context.Context {
	if root == "" || root == "/" {
		return context.Background()
	}
	return context.WithValue(context.Background(), common.EnvKey, common.EnvMap{
		common.HostProcEnvKey: filepath.Join(root, "proc"),
		common.HostSysEnvKey:  filepath.Join(root, "sys"),
		common.HostEtcEnvKey:  filepath.Join(root, "etc"),
	})
}

func (c *Collector) Collect() domain.SystemInfo {
	id := c.identity()
	l1, l5, l15 := c.LoadAverage()

	return domain.SystemInfo{
		Hostname:      id.hostname,
		KernelVersion: id.kernel,
		Platform:      id.platform,
		Arch:          id.arch,
		UptimeSeconds: c.Uptime(),
		Load1:         l1,
		Load5:         l5,
		Load15:        l15,
	}
}

func (c *Collector) Hostname() string      { return c.identity().hostname }
func (c *Collector) KernelVersion() string { return c.identity().kernel }

func (c *Collector) Reset() {
	c.ident.Store(nil)
}
