// Package props looks up system configuration properties such as
// ro.hardware.vulkan. build.prop style files are parsed once; keys they
// do not define are asked of getprop. Only read-only (ro.*) getprop
// answers are remembered; every other key is asked again on each call.
package props

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"

	"socprobe/internal/command"
	"socprobe/internal/sysfs"
)

const maxPropFileSize = 256 * 1024

type Props struct {
	src    sysfs.Source
	files  []string
	runner command.Runner

	mu     sync.RWMutex
	loaded bool
	values map[string]string
}

// New builds a property reader. runner may be nil, which disables the
// getprop fallback.
func New(src sysfs.Source, files []string, runner command.Runner) *Props {
	return &Props{
		src:    src,
		files:  files,
		runner: runner,
		values: make(map[string]string),
	}
}

func (p *Props) Get(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}

	p.load()

	p.mu.RLock()
	v, ok := p.values[key]
	p.mu.RUnlock()
	if ok {
		return v, true
	}

	if p.runner == nil {
		return "", false
	}

	out, err := p.runner.Output(context.Background(), "getprop", key)
	if err != nil {
		return "", false
	}

	v = strings.TrimSpace(out)
	if v == "" {
		return "", false
	}

	if readOnly(key) {
		p.mu.Lock()
		p.values[key] = v
		p.mu.Unlock()
	}

	return v, true
}

func readOnly(key string) bool {
	return strings.HasPrefix(key, "ro.")
}

// GetOr returns def when key is not set.
func (p *Props) GetOr(key, def string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return def
}

func (p *Props) Reset() {
	p.mu.Lock()
	p.loaded = false
	p.values = make(map[string]string)
	p.mu.Unlock()
}

func (p *Props) load() {
	p.mu.RLock()
	loaded := p.loaded
	p.mu.RUnlock()
	if loaded {
		return
	}

	values := make(map[string]string)
	for _, f := range p.files {
		data, ok := p.src.ReadFile(f, maxPropFileSize)
		if !ok {
			continue
		}
		for k, v := range Parse(data) {
			if _, seen := values[k]; !seen {
				values[k] = v
			}
		}
	}

	p.mu.Lock()
	if !p.loaded {
		for k, v := range values {
			if _, ok := p.values[k]; !ok {
				p.values[k] = v
			}
		}
		p.loaded = true
	}
	p.mu.Unlock()
}

// Parse reads key=value lines, skipping comments and blank lines.
func Parse(data []byte) map[string]string {
	out := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}

	return out
}
