package gpu

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode"

	"socprobe/internal/collector"
	"socprobe/internal/domain"
	"socprobe/internal/probe"
)

const cpuinfoLimit = 64 * 1024

// VendorDetector identifies the GPU once. Concurrent first callers may
// each run the probes, but only the first stored result is ever
// returned.
type VendorDetector struct {
	env  *collector.Env
	cell atomic.Pointer[domain.GPUVendor]
}

func NewVendorDetector(env *collector.Env) *VendorDetector {
	return &VendorDetector{env: env}
}

func (d *VendorDetector) Detect() domain.GPUVendor {
	if v := d.cell.Load(); v != nil {
		return *v
	}

	v := domain.GPUVendor{Vendor: domain.VendorUnknown, Model: domain.UnknownGPUModel}
	if r, ok := probe.First(d.strategies()...); ok {
		v = r.Value
		d.env.Log.Debug("gpu detected", "vendor", v.Vendor, "model", v.Model, "probe", r.By)
	} else {
		d.env.Log.Debug("gpu vendor unknown")
	}

	d.cell.CompareAndSwap(nil, &v)
	return *d.cell.Load()
}

// Reset clears the detected vendor. Only tests need this.
func (d *VendorDetector) Reset() {
	d.cell.Store(nil)
}

func (d *VendorDetector) strategies() []probe.Strategy[domain.GPUVendor] {
	return []probe.Strategy[domain.GPUVendor]{
		{Name: "kgsl", Run: d.fromKGSL},
		{Name: "mali", Run: d.fromMali},
		{Name: "surfaceflinger", Run: d.fromSurfaceFlinger},
		{Name: "cpuinfo", Run: d.fromCPUInfo},
		{Name: "vulkan_prop", Run: d.fromVulkanProp},
	}
}

func (d *VendorDetector) fromKGSL() (domain.GPUVendor, bool) {
	if !d.env.ExistsAny("gpu.adreno_clock") {
		return domain.GPUVendor{}, false
	}

	model := "Adreno"
	if v, ok := d.env.Lookup("gpu.adreno_model", collector.TTLStatic); ok {
		model = withPrefix(v, "Adreno")
	}
	return domain.GPUVendor{Vendor: domain.VendorQualcomm, Model: model}, true
}

func (d *VendorDetector) fromMali() (domain.GPUVendor, bool) {
	if !d.env.ExistsAny("gpu.mali_nodes") {
		return domain.GPUVendor{}, false
	}

	model := "Mali"
	if v, ok := d.env.Lookup("gpu.mali_model", collector.TTLStatic); ok {
		model = withPrefix(v, "Mali")
	}
	return domain.GPUVendor{Vendor: domain.VendorMali, Model: model}, true
}

func (d *VendorDetector) fromSurfaceFlinger() (domain.GPUVendor, bool) {
	if d.env.Runner == nil {
		return domain.GPUVendor{}, false
	}

	out, err := d.env.Runner.Output(context.Background(), "dumpsys", "SurfaceFlinger")
	if err != nil {
		d.env.Log.Debug("dumpsys unavailable", "error", err)
		return domain.GPUVendor{}, false
	}

	return parseRenderer(out)
}

func (d *VendorDetector) fromCPUInfo() (domain.GPUVendor, bool) {
	data, ok := d.env.File("cpu.info", cpuinfoLimit)
	if !ok {
		return domain.GPUVendor{}, false
	}
	return vendorFromText(string(data))
}

func (d *VendorDetector) fromVulkanProp() (domain.GPUVendor, bool) {
	v, ok := d.env.Prop("ro.hardware.vulkan")
	if !ok {
		return domain.GPUVendor{}, false
	}
	return vendorFromText(v)
}

func vendorFromText(s string) (domain.GPUVendor, bool) {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "adreno"):
		return domain.GPUVendor{Vendor: domain.VendorQualcomm, Model: "Adreno"}, true
	case strings.Contains(s, "mali"):
		return domain.GPUVendor{Vendor: domain.VendorMali, Model: "Mali"}, true
	}
	return domain.GPUVendor{}, false
}

// parseRenderer scans dumpsys output for the GLES or renderer line.
func parseRenderer(out string) (domain.GPUVendor, bool) {
	for line := range strings.Lines(out) {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "gles") && !strings.Contains(lower, "renderer") {
			continue
		}

		switch {
		case strings.Contains(lower, "adreno"):
			model := "Adreno"
			if v, ok := extractAdrenoVersion(line); ok {
				model = "Adreno " + v
			}
			return domain.GPUVendor{Vendor: domain.VendorQualcomm, Model: model}, true

		case strings.Contains(lower, "mali"):
			model := "Mali"
			if v, ok := extractMaliVersion(line); ok {
				model = "Mali " + v
			}
			return domain.GPUVendor{Vendor: domain.VendorMali, Model: model}, true

		case strings.Contains(lower, "powervr"):
			return domain.GPUVendor{Vendor: domain.VendorPowerVR, Model: "PowerVR"}, true

		case strings.Contains(lower, "nvidia"), strings.Contains(lower, "tegra"):
			return domain.GPUVendor{Vendor: domain.VendorNVIDIA, Model: "Tegra"}, true
		}
	}

	return domain.GPUVendor{}, false
}

// extractAdrenoVersion looks at the three words following "adreno" for
// a model number between 200 and 900.
func extractAdrenoVersion(s string) (string, bool) {
	words := strings.Fields(s)
	for i, w := range words {
		if !strings.Contains(strings.ToLower(w), "adreno") {
			continue
		}
		for j := 1; j < 4 && i+j < len(words); j++ {
			candidate := strings.TrimFunc(words[i+j], func(r rune) bool { return !unicode.IsDigit(r) })
			n, err := strconv.ParseUint(candidate, 10, 32)
			if err == nil && n >= 200 && n <= 900 {
				return strconv.FormatUint(n, 10), true
			}
		}
	}
	return "", false
}

// extractMaliVersion returns the word after "mali", splitting on spaces
// and dashes, so "Mali-G78 MP20" yields "G78".
func extractMaliVersion(s string) (string, bool) {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' })
	for i, w := range words {
		if strings.Contains(strings.ToLower(w), "mali") && i+1 < len(words) {
			if v := strings.TrimSpace(words[i+1]); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func withPrefix(model, prefix string) string {
	model = strings.TrimSpace(model)
	if strings.HasPrefix(strings.ToLower(model), strings.ToLower(prefix)) {
		return model
	}
	return prefix + " " + model
}
