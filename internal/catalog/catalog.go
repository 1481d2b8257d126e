// Package catalog holds the ordered candidate paths for every logical
// attribute. The built-in table is embedded; a YAML file can override
// individual entries per device.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

type Catalog struct {
	paths map[string][]string
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic("catalog: embedded table is malformed: " + err.Error())
	}
	return c
}

// Load returns the embedded catalog with entries from file layered on
// top. An empty file name yields the embedded catalog.
func Load(file string) (*Catalog, error) {
	c := Default()
	if file == "" {
		return c, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", file, err)
	}

	override, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", file, err)
	}

	c.Merge(override)
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	c := &Catalog{paths: make(map[string][]string)}
	for group, entries := range raw {
		for name, list := range entries {
			c.paths[group+"."+name] = list
		}
	}
	return c, nil
}

// Merge replaces entries with those from other.
func (c *Catalog) Merge(other *Catalog) {
	for k, v := range other.paths {
		c.paths[k] = v
	}
}

// Paths returns a copy of the candidates for key.
func (c *Catalog) Paths(key string) []string {
	return append([]string(nil), c.paths[key]...)
}

// Path returns the first candidate for key.
func (c *Catalog) Path(key string) string {
	if list := c.paths[key]; len(list) > 0 {
		return list[0]
	}
	return ""
}

// Expand substitutes n into the templated candidates for key. Both
// "{n}" and "{n+1}" are recognized.
func (c *Catalog) Expand(key string, n int) []string {
	list := c.paths[key]
	out := make([]string, len(list))
	r := strings.NewReplacer("{n}", strconv.Itoa(n), "{n+1}", strconv.Itoa(n+1))
	for i, p := range list {
		out[i] = r.Replace(p)
	}
	return out
}

// ExpandFirst is Expand for single-candidate keys.
func (c *Catalog) ExpandFirst(key string, n int) string {
	if list := c.Expand(key, n); len(list) > 0 {
		return list[0]
	}
	return ""
}

func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.paths))
	for k := range c.paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
