package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"socprobe/internal/codec"
	"socprobe/internal/collector/collectortest"
	"socprobe/internal/config"
	"socprobe/internal/telemetry"
)

func newService(t *testing.T) *telemetry.Service {
	tree := collectortest.NewTree(t)
	tree.Write("/proc/meminfo", "MemTotal: 8000 kB\nMemAvailable: 2000 kB\n")
	return telemetry.New(tree.Env())
}

func TestOnceFamilyJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{OutputFormat: codec.FormatJSON}

	if err := once(context.Background(), cfg, newService(t), telemetry.FamilyMemory, 0, &buf); err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := codec.JSON.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["total_kb"] != float64(8000) {
		t.Errorf("total_kb = %v", out["total_kb"])
	}
}

func TestOnceSnapshotCBOR(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{OutputFormat: codec.FormatCBOR}

	if err := once(context.Background(), cfg, newService(t), "", 0, &buf); err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := codec.Unmarshal(codec.FormatCBOR, buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"cpu", "gpu", "memory", "power", "thermal", "disk", "system"} {
		if _, ok := out[k]; !ok {
			t.Errorf("snapshot misses %q", k)
		}
	}
}

func TestStreamStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{OutputFormat: codec.FormatJSON, Interval: time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := stream(ctx, cfg, newService(t), telemetry.FamilyMemory, &buf); err != nil {
		t.Fatal(err)
	}
	if lines := bytes.Count(buf.Bytes(), []byte("\n")); lines < 1 {
		t.Errorf("stream wrote %d lines", lines)
	}
}

func TestValidFamily(t *testing.T) {
	if !validFamily("cpu/clusters") || validFamily("fan") {
		t.Error("validFamily mismatch")
	}
}
