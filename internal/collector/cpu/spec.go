package cpu

import (
	"bufio"
	"bytes"
	"strings"

	"socprobe/internal/collector"
)

const cpuinfoLimit = 64 * 1024

// Model returns the SoC name from /proc/cpuinfo. A found name is kept
// for the life of the collector.
func (c *Collector) Model() string {
	if m := c.model.Load(); m != nil {
		return *m
	}

	data, ok := c.env.File("cpu.info", cpuinfoLimit)
	if !ok {
		return "Unknown"
	}

	model, ok := parseModel(data)
	if !ok {
		return "Unknown"
	}

	c.model.CompareAndSwap(nil, &model)
	return *c.model.Load()
}

func (c *Collector) Driver() string {
	if v, ok := c.env.Lookup("cpu.driver", collector.TTLStatic); ok {
		return v
	}
	return unknown
}

func parseModel(data []byte) (string, bool) {
	var processor, modelName string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case "Hardware":
			return value, true
		case "Processor":
			if processor == "" {
				processor = value
			}
		case "model name":
			if modelName == "" {
				modelName = value
			}
		}
	}

	if processor != "" {
		return processor, true
	}
	return modelName, modelName != ""
}
