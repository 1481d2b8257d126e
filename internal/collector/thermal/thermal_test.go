package thermal

import (
	"testing"

	"socprobe/internal/collector/collectortest"
)

func TestZoneTemperature(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Zone(0, "battery", 31000).
		Zone(1, "cpu-1-0-usr", 48500).
		Zone(2, "bogus", 200000).
		Zone(3, "plain", 45).
		Zone(4, "negative", -5000)

	c := NewCollector(tree.Env())

	tests := map[int]float64{0: 31, 1: 48.5, 2: 0, 3: 45, 4: 0, 9: 0}
	for zone, want := range tests {
		if got := c.ZoneTemperature(zone); got != want {
			t.Errorf("ZoneTemperature(%d) = %v, want %v", zone, got, want)
		}
	}

	if got := c.ZoneType(9); got != "zone9" {
		t.Errorf("ZoneType(9) = %q", got)
	}
}

func TestPrimaryZone(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Zone(0, "battery", 31000).
		Zone(1, "pm8350b-ibat-lvl0", 30000).
		Zone(2, "tsens_tz_sensor1", 52000)

	c := NewCollector(tree.Env())

	if got := c.PrimaryZone(); got != 2 {
		t.Fatalf("PrimaryZone() = %d, want 2", got)
	}
	if got := c.CPUTemperature(); got != 52 {
		t.Errorf("CPUTemperature() = %v, want 52", got)
	}

	// remembered even when an earlier zone turns into a cpu zone
	tree.Zone(0, "cpu-0-0", 40000)
	c.env.FS.Reset()
	if got := c.PrimaryZone(); got != 2 {
		t.Errorf("PrimaryZone() = %d after change, want 2", got)
	}

	c.Reset()
	if got := c.PrimaryZone(); got != 0 {
		t.Errorf("PrimaryZone() after Reset = %d, want 0", got)
	}
}

func TestPrimaryZoneFallback(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Zone(0, "battery", 33000)

	c := NewCollector(tree.Env())

	if got := c.PrimaryZone(); got != 0 {
		t.Errorf("PrimaryZone() = %d, want 0", got)
	}
	if c.primary.Load() != 0 {
		t.Error("fallback zone should not be remembered")
	}

	tree.Zone(3, "pa", 39000)
	if got := c.PrimaryZone(); got != 3 {
		t.Errorf("PrimaryZone() = %d, want 3 once it appears", got)
	}
}

func TestCPUTemperatureFallback(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write("/sys/class/hwmon/hwmon0/temp1_input", "41000")

	if got := NewCollector(tree.Env()).CPUTemperature(); got != 41 {
		t.Errorf("CPUTemperature() = %v, want 41", got)
	}
}

func TestZonesAndHottest(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Zone(0, "battery", 31000).
		Zone(5, "gpuss-0", 61000).
		Zone(30, "skin", 35000).
		Zone(7, "broken", 0)

	c := NewCollector(tree.Env())

	zones := c.Zones()
	if len(zones) != 3 {
		t.Fatalf("Zones() = %+v", zones)
	}
	if zones[1].Zone != 5 || zones[1].Type != "gpuss-0" || zones[1].Temperature != 61 {
		t.Errorf("zones[1] = %+v", zones[1])
	}
	if zones[2].Zone != 30 {
		t.Errorf("zones[2] = %+v", zones[2])
	}

	hot := c.Hottest()
	if hot.Zone != 5 || hot.Temperature != 61 || hot.Type != "gpuss-0" {
		t.Errorf("Hottest() = %+v", hot)
	}
}

func TestAbsentThermal(t *testing.T) {
	info := NewCollector(collectortest.NewTree(t).Env()).Collect()

	if info.CPU != 0 || info.Hottest.Temperature != 0 || info.Hottest.Type != "zone0" {
		t.Errorf("info = %+v", info)
	}
	if info.Zones == nil || len(info.Zones) != 0 {
		t.Errorf("Zones = %#v", info.Zones)
	}
}
