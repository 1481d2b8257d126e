package power

import (
	"testing"
	"time"

	"socprobe/internal/collector/collectortest"
)

const supply = "/sys/class/power_supply/battery"

func TestBattery(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write(supply+"/capacity", "76").
		Write(supply+"/temp", "312").
		Write(supply+"/voltage_now", "3987000").
		Write(supply+"/current_now", "-452000").
		Write(supply+"/status", "Discharging").
		Write(supply+"/health", "Good").
		Write(supply+"/charge_full", "4100000").
		Write(supply+"/charge_full_design", "5000000").
		Write("/sys/class/power_supply/bms/cycle_count", "213")

	b := NewCollector(tree.Env()).Battery()

	if b.Level != 76 {
		t.Errorf("Level = %d", b.Level)
	}
	if b.Temperature != 31.2 {
		t.Errorf("Temperature = %v, want 31.2", b.Temperature)
	}
	if b.VoltageMV != 3987 {
		t.Errorf("VoltageMV = %v", b.VoltageMV)
	}
	if b.CurrentMA != -452 || b.DrainRateMA != 452 {
		t.Errorf("current = %v, drain = %v", b.CurrentMA, b.DrainRateMA)
	}
	if b.Charging || b.Status != "Discharging" || b.Health != "Good" {
		t.Errorf("status = %+v", b)
	}
	if b.CycleCount != 213 {
		t.Errorf("CycleCount = %d", b.CycleCount)
	}
	if b.CapacityPercent != 82 {
		t.Errorf("CapacityPercent = %v, want 82", b.CapacityPercent)
	}
}

func TestBatteryUnitHeuristics(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write(supply+"/temp", "35500").
		Write(supply+"/current_now", "850").
		Write(supply+"/status", "Charging")

	c := NewCollector(tree.Env())

	if got := c.Temperature(); got != 35.5 {
		t.Errorf("Temperature() = %v, want 35.5 from millidegrees", got)
	}
	if got := c.DrainRateMA(); got != 850 {
		t.Errorf("DrainRateMA() = %v, want 850 from mA", got)
	}
	if !c.Charging() {
		t.Error("Charging() = false")
	}
}

func TestCapacityOutOfRange(t *testing.T) {
	tests := []struct {
		full, design string
		want         float64
	}{
		{"2000000", "5000000", 100},
		{"5500000", "5000000", 100},
		{"0", "5000000", 100},
		{"2500000", "5000000", 50},
	}

	for _, tt := range tests {
		tree := collectortest.NewTree(t)
		tree.Write(supply+"/charge_full", tt.full).
			Write(supply+"/charge_full_design", tt.design)

		if got := NewCollector(tree.Env()).CapacityPercent(); got != tt.want {
			t.Errorf("full %s design %s: CapacityPercent() = %v, want %v", tt.full, tt.design, got, tt.want)
		}
	}
}

func TestChargeFlow(t *testing.T) {
	tree := collectortest.NewTree(t)
	tree.Write(supply+"/charge_counter", "3000000")

	c := NewCollector(tree.Env())

	if got := c.ChargeFlowMA(); got != 0 {
		t.Fatalf("first ChargeFlowMA() = %v, want 0", got)
	}

	// 1000 µAh in 10 s is 360 mA
	tree.Advance(10 * time.Second)
	tree.Write(supply+"/charge_counter", "3001000")
	if got := c.ChargeFlowMA(); got != 360 {
		t.Errorf("ChargeFlowMA() = %v, want 360", got)
	}

	tree.Advance(10 * time.Second)
	tree.Write(supply+"/charge_counter", "3000500")
	if got := c.ChargeFlowMA(); got != -180 {
		t.Errorf("ChargeFlowMA() = %v, want -180", got)
	}

	c.Reset()
	if got := c.ChargeFlowMA(); got != 0 {
		t.Errorf("ChargeFlowMA() after Reset = %v, want 0", got)
	}
}

func TestAbsentPower(t *testing.T) {
	info := NewCollector(collectortest.NewTree(t).Env()).Collect()

	b := info.Battery
	if b.Level != 0 || b.Temperature != 0 || b.VoltageMV != 0 || b.DrainRateMA != 0 {
		t.Errorf("battery = %+v", b)
	}
	if b.Charging || b.Health != "Unknown" || b.Status != "Unknown" {
		t.Errorf("battery status = %+v", b)
	}
	if b.CycleCount != -1 || b.CapacityPercent != 100 {
		t.Errorf("cycle %d capacity %v", b.CycleCount, b.CapacityPercent)
	}
	if info.WakeupCount != 0 || info.SuspendCount != 0 {
		t.Errorf("counts = %d %d", info.WakeupCount, info.SuspendCount)
	}
}
