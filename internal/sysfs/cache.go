package sysfs

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Forever keeps an entry valid for the life of the cache.
const Forever = time.Duration(math.MaxInt64)

type entry struct {
	value      string
	capturedAt time.Time
}

// Cache is a read-through TTL cache in front of a Source. The TTL is
// supplied per call. A failed refresh reports a miss and leaves the old
// entry in place; it never serves the stale value.
type Cache struct {
	src Source
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]*entry

	hits     atomic.Uint64
	misses   atomic.Uint64
	failures atomic.Uint64
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

type Stats struct {
	Entries  int    `json:"entries"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Failures uint64 `json:"failures"`
}

func NewCache(src Source, opts ...Option) *Cache {
	c := &Cache{
		src:     src,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Get(path string, ttl time.Duration) (string, bool) {
	c.mu.RLock()
	e := c.entries[path]
	c.mu.RUnlock()

	if e != nil && c.now().Sub(e.capturedAt) < ttl {
		c.hits.Add(1)
		return e.value, true
	}

	c.misses.Add(1)

	v, ok := c.src.Read(path)
	if !ok {
		c.failures.Add(1)
		return "", false
	}

	c.mu.Lock()
	c.entries[path] = &entry{value: v, capturedAt: c.now()}
	c.mu.Unlock()

	return v, true
}

func (c *Cache) Int(path string, ttl time.Duration) (int64, bool) {
	v, ok := c.Get(path, ttl)
	if !ok {
		return 0, false
	}
	return ParseInt(v)
}

func (c *Cache) Float(path string, ttl time.Duration) (float64, bool) {
	v, ok := c.Get(path, ttl)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Fields splits a whitespace separated attribute, such as a list of
// available frequencies.
func (c *Cache) Fields(path string, ttl time.Duration) ([]string, bool) {
	v, ok := c.Get(path, ttl)
	if !ok {
		return nil, false
	}
	f := strings.Fields(v)
	return f, len(f) > 0
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

func (c *Cache) Stats() Stats {
	return Stats{
		Entries:  c.Len(),
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Failures: c.failures.Load(),
	}
}

// ParseInt accepts a plain decimal integer and falls back to truncating
// a decimal fraction.
func ParseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && math.Abs(f) < 1<<63 {
		return int64(f), true
	}
	return 0, false
}
