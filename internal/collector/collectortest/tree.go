// Package collectortest builds throwaway sysfs/procfs trees and
// collector environments with a controllable clock.
package collectortest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"socprobe/internal/catalog"
	"socprobe/internal/collector"
	"socprobe/internal/delta"
	"socprobe/internal/logger"
	"socprobe/internal/sysfs"
)

type Tree struct {
	t    testing.TB
	root string

	mu  sync.Mutex
	now time.Time
}

func NewTree(t testing.TB) *Tree {
	t.Helper()
	return &Tree{
		t:    t,
		root: t.TempDir(),
		now:  time.Unix(1_700_000_000, 0),
	}
}

func (tr *Tree) Root() string { return tr.root }

// Write creates path (absolute, as seen on the device) with content.
func (tr *Tree) Write(path, content string) *Tree {
	tr.t.Helper()
	full := filepath.Join(tr.root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		tr.t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		tr.t.Fatal(err)
	}
	return tr
}

func (tr *Tree) Mkdir(path string) *Tree {
	tr.t.Helper()
	if err := os.MkdirAll(filepath.Join(tr.root, path), 0o755); err != nil {
		tr.t.Fatal(err)
	}
	return tr
}

func (tr *Tree) Remove(path string) {
	tr.t.Helper()
	if err := os.RemoveAll(filepath.Join(tr.root, path)); err != nil {
		tr.t.Fatal(err)
	}
}

func (tr *Tree) Now() time.Time {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.now
}

func (tr *Tree) Advance(d time.Duration) {
	tr.mu.Lock()
	tr.now = tr.now.Add(d)
	tr.mu.Unlock()
}

// Env returns an environment rooted at the tree, sharing its clock.
func (tr *Tree) Env() *collector.Env {
	src := sysfs.NewFileSource(tr.root)
	env := collector.NewEnv(
		sysfs.NewReader(src, sysfs.WithClock(tr.Now)),
		delta.NewEngine(delta.WithClock(tr.Now)),
		catalog.Default(),
		logger.Nop(),
	)
	env.Clock = tr.Now
	env.Root = tr.root
	return env
}

// CPU writes the cpufreq nodes of one core. Frequencies are kHz.
func (tr *Tree) CPU(n int, hwMax, cur int64, governor string) *Tree {
	base := "/sys/devices/system/cpu/cpu" + itoa(n)
	tr.Write(base+"/online", "1\n")
	tr.Write(base+"/cpufreq/cpuinfo_max_freq", itoa64(hwMax))
	tr.Write(base+"/cpufreq/cpuinfo_min_freq", "300000")
	tr.Write(base+"/cpufreq/scaling_min_freq", "300000")
	tr.Write(base+"/cpufreq/scaling_max_freq", itoa64(hwMax))
	tr.Write(base+"/cpufreq/scaling_cur_freq", itoa64(cur))
	if governor != "" {
		tr.Write(base+"/cpufreq/scaling_governor", governor)
	}
	return tr
}

// Zone writes a thermal zone with a millidegree temperature.
func (tr *Tree) Zone(n int, typ string, milli int64) *Tree {
	base := "/sys/class/thermal/thermal_zone" + itoa(n)
	tr.Write(base+"/type", typ)
	tr.Write(base+"/temp", itoa64(milli))
	return tr
}

// Runner answers commands from a fixed table keyed by the full command
// line.
type Runner struct {
	mu    sync.Mutex
	Out   map[string]string
	Calls int
}

func (r *Runner) Output(_ context.Context, name string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	line := strings.Join(append([]string{name}, args...), " ")
	out, ok := r.Out[line]
	if !ok {
		return "", errors.New("command not found: " + name)
	}
	return out, nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func itoa64(n int64) string { return strconv.FormatInt(n, 10) }
