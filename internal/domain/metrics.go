package domain

import "time"

// Frequencies are MHz, temperatures °C, rates per second unless the
// field name says otherwise.

type Cluster struct {
	ClusterNumber      int      `json:"cluster_number"`
	Cores              []int    `json:"cores"`
	MinFreq            int64    `json:"min_freq"`
	MaxFreq            int64    `json:"max_freq"`
	CurrentMinFreq     int64    `json:"current_min_freq"`
	CurrentMaxFreq     int64    `json:"current_max_freq"`
	Governor           string   `json:"governor"`
	AvailableGovernors []string `json:"available_governors"`
	PolicyPath         string   `json:"policy_path"`
}

type CoreInfo struct {
	Core     int    `json:"core"`
	Online   bool   `json:"online"`
	Freq     int64  `json:"freq"`
	MinFreq  int64  `json:"min_freq"`
	MaxFreq  int64  `json:"max_freq"`
	Governor string `json:"governor"`
}

type CPULoad struct {
	Total   float64   `json:"total_load"`
	PerCore []float64 `json:"per_core_load"`
}

type Policy struct {
	CPU      int    `json:"cpu"`
	Governor string `json:"governor"`
	MinFreq  int64  `json:"min_freq"`
	MaxFreq  int64  `json:"max_freq"`
	CurFreq  int64  `json:"cur_freq"`
}

type CPUInfo struct {
	Model       string     `json:"model"`
	Driver      string     `json:"driver"`
	Clusters    []Cluster  `json:"clusters"`
	Cores       []CoreInfo `json:"cores"`
	Load        CPULoad    `json:"load"`
	Temperature float64    `json:"temperature"`
	Governors   []string   `json:"available_governors"`
}

type GPUVendorKind string

const (
	VendorQualcomm GPUVendorKind = "Qualcomm"
	VendorMali     GPUVendorKind = "ARM Mali"
	VendorPowerVR  GPUVendorKind = "PowerVR"
	VendorNVIDIA   GPUVendorKind = "NVIDIA"
	VendorUnknown  GPUVendorKind = "Unknown"
)

const UnknownGPUModel = "Unknown GPU"

type GPUVendor struct {
	Vendor GPUVendorKind `json:"vendor"`
	Model  string        `json:"model"`
}

type GPULoad struct {
	FrequencyMHz int64   `json:"frequency_mhz"`
	BusyPercent  float64 `json:"busy_percent"`
	Temperature  float64 `json:"temperature"`
	Throttled    bool    `json:"throttled"`
}

type GPUInfo struct {
	GPUVendor
	Load                 GPULoad  `json:"load"`
	AvailableFrequencies []int64  `json:"available_frequencies"`
	MinFreq              int64    `json:"min_freq"`
	MaxFreq              int64    `json:"max_freq"`
	Governor             string   `json:"governor"`
	AvailableGovernors   []string `json:"available_governors"`
	Driver               string   `json:"driver"`
}

type MemInfo struct {
	TotalKB      uint64  `json:"total_kb"`
	AvailableKB  uint64  `json:"available_kb"`
	FreeKB       uint64  `json:"free_kb"`
	CachedKB     uint64  `json:"cached_kb"`
	BuffersKB    uint64  `json:"buffers_kb"`
	SwapTotalKB  uint64  `json:"swap_total_kb"`
	SwapFreeKB   uint64  `json:"swap_free_kb"`
	SwapCachedKB uint64  `json:"swap_cached_kb"`
	SwapUsedKB   uint64  `json:"swap_used_kb"`
	UsedPercent  float64 `json:"used_percent"`
}

type ZramDevice struct {
	Name             string  `json:"name"`
	DiskSize         uint64  `json:"disksize"`
	Algorithm        string  `json:"algorithm"`
	OrigDataSize     uint64  `json:"orig_data_size"`
	ComprDataSize    uint64  `json:"compr_data_size"`
	MemUsedTotal     uint64  `json:"mem_used_total"`
	CompressionRatio float64 `json:"compression_ratio"`
}

type MemoryInfo struct {
	MemInfo
	Zram       []ZramDevice `json:"zram"`
	Swappiness int          `json:"swappiness"`
}

type BatteryInfo struct {
	Level           int     `json:"level"`
	Temperature     float64 `json:"temperature"`
	VoltageMV       float64 `json:"voltage_mv"`
	CurrentMA       float64 `json:"current_ma"`
	DrainRateMA     float64 `json:"drain_rate_ma"`
	ChargeFlowMA    float64 `json:"charge_flow_ma"`
	Charging        bool    `json:"charging"`
	Status          string  `json:"status"`
	Health          string  `json:"health"`
	CycleCount      int     `json:"cycle_count"`
	CapacityPercent float64 `json:"capacity_percent"`
}

type PowerInfo struct {
	Battery      BatteryInfo `json:"battery"`
	WakeupCount  int64       `json:"wakeup_count"`
	SuspendCount int64       `json:"suspend_count"`
}

type ThermalZone struct {
	Zone        int     `json:"zone"`
	Type        string  `json:"type"`
	Temperature float64 `json:"temperature"`
}

type ThermalInfo struct {
	CPU     float64       `json:"cpu"`
	Hottest ThermalZone   `json:"hottest"`
	Zones   []ThermalZone `json:"zones"`
}

type DiskStats struct {
	Device     string  `json:"device"`
	ReadBytes  uint64  `json:"read_bytes"`
	WriteBytes uint64  `json:"write_bytes"`
	ReadSpeed  float64 `json:"read_speed"`
	WriteSpeed float64 `json:"write_speed"`
}

type NetworkStats struct {
	Interfaces []string `json:"interfaces"`
	RxBytes    uint64   `json:"rx_bytes"`
	TxBytes    uint64   `json:"tx_bytes"`
	RxSpeed    float64  `json:"rx_speed"`
	TxSpeed    float64  `json:"tx_speed"`
}

type SystemInfo struct {
	Hostname      string  `json:"hostname"`
	KernelVersion string  `json:"kernel_version"`
	Platform      string  `json:"platform"`
	Arch          string  `json:"arch"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
	Load1         float64 `json:"load1"`
	Load5         float64 `json:"load5"`
	Load15        float64 `json:"load15"`
}

type Snapshot struct {
	CPU        CPUInfo      `json:"cpu"`
	GPU        GPUInfo      `json:"gpu"`
	Memory     MemoryInfo   `json:"memory"`
	Power      PowerInfo    `json:"power"`
	Thermal    ThermalInfo  `json:"thermal"`
	Disk       DiskStats    `json:"disk"`
	Network    NetworkStats `json:"network"`
	System     SystemInfo   `json:"system"`
	RecordedAt time.Time    `json:"recorded_at"`
}

// HistorySample is one persisted snapshot with its headline values
// pulled out for querying.
type HistorySample struct {
	ID             int64     `json:"id"`
	CPULoad        float64   `json:"cpu_load"`
	GPUBusy        float64   `json:"gpu_busy"`
	CPUTemperature float64   `json:"cpu_temperature"`
	BatteryLevel   int       `json:"battery_level"`
	MemUsedPercent float64   `json:"mem_used_percent"`
	Data           Snapshot  `json:"data"`
	RecordedAt     time.Time `json:"recorded_at"`
}
