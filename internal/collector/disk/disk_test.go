package disk

import (
	"testing"
	"time"

	"socprobe/internal/collector/collectortest"
)

const stats1 = `   8       0 sda 1000 0 2000 0 500 0 4000 0 0 0 0
   8       1 sda1 999999 0 999999 0 999999 0 999999 0 0 0 0
 179       0 mmcblk0 10 0 20 0 5 0 40 0 0 0 0
`

const stats2 = `   8       0 sda 1100 0 4048 0 600 0 5024 0 0 0 0
   8       1 sda1 999999 0 999999 0 999999 0 999999 0 0 0 0
 179       0 mmcblk0 10 0 20 0 5 0 40 0 0 0 0
`

func TestDiskThroughput(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write("/proc/diskstats", stats1)

	c := NewCollector(tree.Env())

	first := c.Collect()
	if first.Device != "sda" || first.ReadBytes != 2000*512 || first.WriteBytes != 4000*512 {
		t.Fatalf("first = %+v", first)
	}
	if first.ReadSpeed != 0 || first.WriteSpeed != 0 {
		t.Errorf("first sample speeds = %v %v, want 0", first.ReadSpeed, first.WriteSpeed)
	}

	tree.Advance(2 * time.Second)
	tree.Write("/proc/diskstats", stats2)

	second := c.Collect()
	// 2048 sectors read and 1024 written over 2 s
	if second.ReadSpeed != 2048*512/2 {
		t.Errorf("ReadSpeed = %v", second.ReadSpeed)
	}
	if second.WriteSpeed != 1024*512/2 {
		t.Errorf("WriteSpeed = %v", second.WriteSpeed)
	}
}

func TestDevicesExactMatch(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write("/proc/diskstats", "   8       1 sda1 5 0 10 0 5 0 10 0 0 0 0\n 179       0 mmcblk0 10 0 20 0 5 0 40 0 0 0 0\n")

	devs := NewCollector(tree.Env()).Devices()
	if len(devs) != 1 || devs[0].Device != "mmcblk0" {
		t.Errorf("Devices() = %+v, want only mmcblk0", devs)
	}
}

func TestAbsentDisk(t *testing.T) {
	c := NewCollector(collectortest.NewTree(t).Env())

	if got := c.Collect(); got.Device != "" || got.ReadBytes != 0 {
		t.Errorf("Collect() = %+v", got)
	}
	if got := c.Devices(); got == nil || len(got) != 0 {
		t.Errorf("Devices() = %#v", got)
	}
}
