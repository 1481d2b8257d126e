package system

import (
	"testing"

	"socprobe/internal/collector/collectortest"
	"socprobe/internal/props"
	"socprobe/internal/sysfs"
)

func TestLoadAverageFollowsRoot(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write("/proc/loadavg", "0.52 0.58 0.59 1/234 5678\n")

	l1, l5, l15 := NewCollector(tree.Env()).LoadAverage()
	if l1 != 0.52 || l5 != 0.58 || l15 != 0.59 {
		t.Errorf("LoadAverage() = %v %v %v", l1, l5, l15)
	}
}

func TestPlatformFromProperty(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write("/system/build.prop", "ro.build.version.release=14\n")

	env := tree.Env()
	env.Props = props.New(sysfs.NewFileSource(tree.Root()), []string{"/system/build.prop"}, nil)

	c := NewCollector(env)
	info := c.Collect()
	if info.Platform != "Android 14" {
		t.Errorf("Platform = %q", info.Platform)
	}
	if info.Hostname == "" || info.KernelVersion == "" || info.Arch == "" {
		t.Errorf("identity fields must never be empty: %+v", info)
	}
}

func TestIdentityIsRemembered(t *testing.T) {
	c := NewCollector(collectortest.NewTree(t).Env())

	first := c.identity()
	if c.ident.Load() == nil {
		t.Fatal("identity not stored")
	}
	if got := c.identity(); got != first {
		t.Errorf("identity() = %+v, want %+v", got, first)
	}

	c.Reset()
	if c.ident.Load() != nil {
		t.Error("Reset kept the identity")
	}
}
