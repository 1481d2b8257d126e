package memory

import (
	"testing"

	"socprobe/internal/collector/collectortest"
)

const meminfo = `MemTotal:        8000000 kB
MemFree:          500000 kB
MemAvailable:    2000000 kB
Buffers:           10000 kB
Cached:          1500000 kB
SwapCached:        20000 kB
SwapTotal:       4000000 kB
SwapFree:        3000000 kB
`

func TestMemInfo(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write("/proc/meminfo", meminfo)

	m := NewCollector(tree.Env()).MemInfo()

	if m.TotalKB != 8_000_000 || m.AvailableKB != 2_000_000 || m.FreeKB != 500_000 {
		t.Errorf("ram = %+v", m)
	}
	if m.CachedKB != 1_500_000 || m.BuffersKB != 10_000 || m.SwapCachedKB != 20_000 {
		t.Errorf("caches = %+v", m)
	}
	if m.SwapUsedKB != 1_000_000 {
		t.Errorf("SwapUsedKB = %d, want 1000000", m.SwapUsedKB)
	}
	if m.UsedPercent != 75 {
		t.Errorf("UsedPercent = %v, want 75", m.UsedPercent)
	}
}

func TestZram(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write("/sys/block/zram0/disksize", "4294967296").
		Write("/sys/block/zram0/comp_algorithm", "lzo lzo-rle [lz4] zstd").
		Write("/sys/block/zram0/mm_stat", "1000000 250000 300000 0 300000 12 0 0 0").
		Write("/sys/block/zram1/disksize", "0").
		Write("/sys/block/zram2/disksize", "1048576").
		Write("/sys/block/zram2/comp_algorithm", "zstd")

	devices := NewCollector(tree.Env()).Zram()
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2: %+v", len(devices), devices)
	}

	z0 := devices[0]
	if z0.Name != "zram0" || z0.DiskSize != 4294967296 || z0.Algorithm != "lz4" {
		t.Errorf("zram0 = %+v", z0)
	}
	if z0.OrigDataSize != 1_000_000 || z0.ComprDataSize != 250_000 || z0.MemUsedTotal != 300_000 {
		t.Errorf("zram0 mm_stat = %+v", z0)
	}
	if z0.CompressionRatio != 4 {
		t.Errorf("CompressionRatio = %v, want 4", z0.CompressionRatio)
	}

	z2 := devices[1]
	if z2.Name != "zram2" || z2.Algorithm != "zstd" || z2.CompressionRatio != 1 {
		t.Errorf("zram2 = %+v", z2)
	}
}

func TestSelectedAlgorithm(t *testing.T) {
	tests := map[string]string{
		"lzo [lz4] zstd": "lz4",
		"[zstd]":         "zstd",
		"lz4":            "lz4",
		"lzo lz4":        "unknown",
		"[]":             "unknown",
	}
	for in, want := range tests {
		if got := selectedAlgorithm(in); got != want {
			t.Errorf("selectedAlgorithm(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAbsentMemory(t *testing.T) {
	info := NewCollector(collectortest.NewTree(t).Env()).Collect()

	if info.TotalKB != 0 || info.UsedPercent != 0 {
		t.Errorf("meminfo = %+v", info.MemInfo)
	}
	if info.Zram == nil || len(info.Zram) != 0 {
		t.Errorf("Zram = %#v, want empty", info.Zram)
	}
	if info.Swappiness != -1 {
		t.Errorf("Swappiness = %d, want -1", info.Swappiness)
	}
}
