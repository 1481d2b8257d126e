// Package collector holds what every metric family shares: the cached
// attribute reader, the counter engine, the path catalog and the
// collaborators for properties and helper commands.
package collector

import (
	"strconv"
	"strings"
	"time"

	"socprobe/internal/catalog"
	"socprobe/internal/command"
	"socprobe/internal/delta"
	"socprobe/internal/logger"
	"socprobe/internal/props"
	"socprobe/internal/sysfs"
)

const (
	TTLFast   = 100 * time.Millisecond
	TTLNormal = 500 * time.Millisecond
	TTLSlow   = time.Second
	TTLStatic = sysfs.Forever
)

const DefaultLoadMinInterval = 100 * time.Millisecond

type Env struct {
	FS      *sysfs.Reader
	Delta   *delta.Engine
	Catalog *catalog.Catalog
	Props   *props.Props
	Runner  command.Runner
	Log     logger.Logger
	Clock   func() time.Time

	// Root is the filesystem root the reader is relocated to.
	Root string

	// NormalTTL is used for values that change on the order of a second,
	// such as temperatures and battery readings.
	NormalTTL       time.Duration
	LoadMinInterval time.Duration
}

func NewEnv(fs *sysfs.Reader, eng *delta.Engine, cat *catalog.Catalog, log logger.Logger) *Env {
	return &Env{
		FS:              fs,
		Delta:           eng,
		Catalog:         cat,
		Log:             log,
		Clock:           time.Now,
		Root:            "/",
		NormalTTL:       TTLNormal,
		LoadMinInterval: DefaultLoadMinInterval,
	}
}

// Lookup reads the first existing candidate for a catalog key.
func (e *Env) Lookup(key string, ttl time.Duration) (string, bool) {
	v, ok := e.FS.Lookup(key, e.Catalog.Paths(key), ttl)
	if !ok {
		e.Log.Debug("attribute unavailable", "metric", key)
	}
	return v, ok
}

func (e *Env) LookupInt(key string, ttl time.Duration) (int64, bool) {
	v, ok := e.Lookup(key, ttl)
	if !ok {
		return 0, false
	}
	return sysfs.ParseInt(v)
}

// LookupN is Lookup for indexed keys such as per-core attributes.
func (e *Env) LookupN(key string, n int, ttl time.Duration) (string, bool) {
	v, ok := e.FS.Lookup(key+"#"+strconv.Itoa(n), e.Catalog.Expand(key, n), ttl)
	if !ok {
		e.Log.Debug("attribute unavailable", "metric", key, "index", n)
	}
	return v, ok
}

func (e *Env) LookupIntN(key string, n int, ttl time.Duration) (int64, bool) {
	v, ok := e.LookupN(key, n, ttl)
	if !ok {
		return 0, false
	}
	return sysfs.ParseInt(v)
}

func (e *Env) FieldsN(key string, n int, ttl time.Duration) ([]string, bool) {
	v, ok := e.LookupN(key, n, ttl)
	if !ok {
		return nil, false
	}
	f := strings.Fields(v)
	return f, len(f) > 0
}

// File reads a multi-line pseudo-file named by a catalog key, uncached.
func (e *Env) File(key string, limit int) ([]byte, bool) {
	for _, p := range e.Catalog.Paths(key) {
		if data, ok := e.FS.File(p, limit); ok {
			return data, true
		}
	}
	e.Log.Debug("file unavailable", "metric", key)
	return nil, false
}

// ExistsAny reports whether any candidate for key is present.
func (e *Env) ExistsAny(key string) bool {
	_, ok := e.FS.Resolve(key, e.Catalog.Paths(key))
	return ok
}

func (e *Env) Prop(key string) (string, bool) {
	if e.Props == nil {
		return "", false
	}
	return e.Props.Get(key)
}
