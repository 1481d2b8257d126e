// Package units normalizes raw kernel readings whose unit is only
// knowable from their magnitude.
package units

import "math"

// FrequencyMHz accepts Hz, kHz or MHz: values above 1e6 are Hz, above
// 1000 are kHz, anything else is already MHz.
func FrequencyMHz(raw int64) int64 {
	switch {
	case raw <= 0:
		return 0
	case raw > 1_000_000:
		return raw / 1_000_000
	case raw > 1000:
		return raw / 1000
	default:
		return raw
	}
}

// KHzToMHz is for cpufreq attributes, which are always kHz.
func KHzToMHz(raw int64) int64 {
	if raw <= 0 {
		return 0
	}
	return raw / 1000
}

// Celsius accepts degrees or millidegrees.
func Celsius(raw float64) float64 {
	if math.Abs(raw) > 1000 {
		return raw / 1000
	}
	return raw
}

// ValidCelsius rejects readings outside (0, 150).
func ValidCelsius(c float64) bool {
	return c > 0 && c < 150
}

// BatteryCelsius accepts the tenths of a degree reported by power_supply,
// or millidegrees from drivers that ignore the ABI.
func BatteryCelsius(raw float64) float64 {
	if math.Abs(raw) > 1000 {
		return raw / 1000
	}
	return raw / 10
}

// CurrentMilliamps accepts µA or mA. Magnitudes under 10000 are taken
// as mA already.
func CurrentMilliamps(raw int64) float64 {
	if raw > -10000 && raw < 10000 {
		return float64(raw)
	}
	return float64(raw) / 1000
}

// Millivolts converts µV.
func Millivolts(raw int64) float64 {
	return float64(raw) / 1000
}

func BytesToMB(b uint64) float64 {
	return float64(b) / (1024 * 1024)
}

func KBToMB(kb uint64) float64 {
	return float64(kb) / 1024
}

// Round rounds to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
