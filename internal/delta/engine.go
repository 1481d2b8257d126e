// Package delta turns monotonically increasing kernel counters into
// rates. Each (metric, index) pair keeps the previous sample as its
// baseline; a counter that moves backwards is treated as a reset and
// the current absolute values become the delta.
package delta

import (
	"math"
	"sync"
	"time"
)

// Kind tells Sample how to read the second counter.
type Kind int

const (
	// Idle counters are subtracted from the total (CPU jiffies).
	Idle Kind = iota
	// Busy counters are the work itself (GPU busy cycles).
	Busy
)

type Key struct {
	Metric string
	Index  int
}

type state struct {
	total uint64
	value uint64
	at    time.Time
	rate  float64
}

type Engine struct {
	now func() time.Time

	mu     sync.Mutex
	states map[Key]state
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		states: make(map[Key]state),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sample records (total, value) for key and returns the percentage of
// work done since the previous sample, clamped to [0, 100]. The first
// sample for a key only stores the baseline and returns 0. When the
// total did not advance the previous rate is returned unchanged.
func (e *Engine) Sample(key Key, kind Kind, total, value uint64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()

	prev, ok := e.states[key]
	if !ok {
		e.states[key] = state{total: total, value: value, at: now}
		return 0
	}

	// Only the total decides a reset. A work or idle counter that steps
	// back while the total advances contributes nothing to this window.
	reset := total < prev.total

	totalDelta, valueDelta := total, value
	if !reset {
		totalDelta = total - prev.total
		valueDelta = 0
		if value >= prev.value {
			valueDelta = value - prev.value
		}
	}

	if totalDelta == 0 {
		if reset {
			e.states[key] = state{total: total, value: value, at: now, rate: prev.rate}
		}
		return prev.rate
	}

	work := float64(valueDelta)
	if kind == Idle {
		work = float64(totalDelta) - float64(valueDelta)
	}

	rate := ClampPercent(work / float64(totalDelta) * 100)

	e.states[key] = state{total: total, value: value, at: now, rate: rate}

	return rate
}

// Throughput records a cumulative counter and returns its increase per
// second since the previous sample. Elapsed time plays the role of the
// total, so a call with no elapsed time returns the previous rate.
func (e *Engine) Throughput(key Key, counter uint64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()

	prev, ok := e.states[key]
	if !ok {
		e.states[key] = state{total: counter, at: now}
		return 0
	}

	elapsed := now.Sub(prev.at)
	if elapsed <= 0 {
		return prev.rate
	}

	diff := counter
	if counter >= prev.total {
		diff = counter - prev.total
	}

	rate := float64(diff) / elapsed.Seconds()
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		rate = 0
	}

	e.states[key] = state{total: counter, at: now, rate: rate}

	return rate
}

// Recent returns the last rate for key when the previous accepted sample
// is younger than minInterval. Callers use it to skip re-reading the
// source entirely.
func (e *Engine) Recent(key Key, minInterval time.Duration) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.states[key]
	if !ok {
		return 0, false
	}

	if e.now().Sub(st.at) < minInterval {
		return st.rate, true
	}

	return 0, false
}

func (e *Engine) Last(key Key) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.states[key]
	return st.rate, ok
}

func (e *Engine) Forget(key Key) {
	e.mu.Lock()
	delete(e.states, key)
	e.mu.Unlock()
}

func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.states)
}

func (e *Engine) Reset() {
	e.mu.Lock()
	e.states = make(map[Key]state)
	e.mu.Unlock()
}

func ClampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
