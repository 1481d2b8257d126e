// Package metrics exports sampled snapshots as Prometheus gauges.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socprobe/internal/domain"
	"socprobe/internal/sysfs"
)

const namespace = "socprobe"

const (
	cpuLoadTau = 15 * time.Second
	gpuBusyTau = 10 * time.Second
)

type Exporter struct {
	registry *prometheus.Registry

	mu      sync.Mutex
	cpuEMA  *EMA
	gpuEMA  *EMA
	samples prometheus.Counter

	cpuLoad         prometheus.Gauge
	cpuLoadSmoothed prometheus.Gauge
	coreLoad        *prometheus.GaugeVec
	coreFreq        *prometheus.GaugeVec
	clusterMaxFreq  *prometheus.GaugeVec

	gpuInfo         *prometheus.GaugeVec
	gpuFreq         prometheus.Gauge
	gpuBusy         prometheus.Gauge
	gpuBusySmoothed prometheus.Gauge
	gpuThrottled    prometheus.Gauge

	memUsed     prometheus.Gauge
	memAvail    prometheus.Gauge
	swapUsed    prometheus.Gauge
	zramRatio   *prometheus.GaugeVec
	batteryLvl  prometheus.Gauge
	batteryTemp prometheus.Gauge
	batteryCur  prometheus.Gauge
	charging    prometheus.Gauge
	zoneTemp    *prometheus.GaugeVec
	diskRead    *prometheus.GaugeVec
	diskWrite   *prometheus.GaugeVec
	netRx       prometheus.Gauge
	netTx       prometheus.Gauge
	uptime      prometheus.Gauge
	reads       *prometheus.GaugeVec
}

func gauge(subsystem, name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}

func gaugeVec(subsystem, name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		cpuEMA:   NewEMA(cpuLoadTau),
		gpuEMA:   NewEMA(gpuBusyTau),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Snapshots observed by the exporter.",
		}),

		cpuLoad:         gauge("cpu", "load_percent", "Aggregate CPU load."),
		cpuLoadSmoothed: gauge("cpu", "load_smoothed_percent", "Aggregate CPU load, exponentially smoothed."),
		coreLoad:        gaugeVec("cpu", "core_load_percent", "Per-core CPU load.", "core"),
		coreFreq:        gaugeVec("cpu", "core_frequency_mhz", "Current per-core frequency.", "core"),
		clusterMaxFreq:  gaugeVec("cpu", "cluster_max_frequency_mhz", "Scaling ceiling of each cluster.", "cluster"),

		gpuInfo:         gaugeVec("gpu", "info", "Detected GPU, always 1.", "vendor", "model"),
		gpuFreq:         gauge("gpu", "frequency_mhz", "Current GPU frequency."),
		gpuBusy:         gauge("gpu", "busy_percent", "GPU utilisation."),
		gpuBusySmoothed: gauge("gpu", "busy_smoothed_percent", "GPU utilisation, exponentially smoothed."),
		gpuThrottled:    gauge("gpu", "throttled", "1 when the GPU runs below 90% of its top frequency."),

		memUsed:     gauge("memory", "used_percent", "RAM in use."),
		memAvail:    gauge("memory", "available_bytes", "MemAvailable."),
		swapUsed:    gauge("memory", "swap_used_bytes", "Swap in use."),
		zramRatio:   gaugeVec("memory", "zram_compression_ratio", "Original to compressed size.", "device"),
		batteryLvl:  gauge("battery", "level_percent", "State of charge."),
		batteryTemp: gauge("battery", "temperature_celsius", "Battery temperature."),
		batteryCur:  gauge("battery", "current_milliamps", "Signed battery current."),
		charging:    gauge("battery", "charging", "1 while charging."),
		zoneTemp:    gaugeVec("thermal", "zone_celsius", "Thermal zone temperature.", "zone", "type"),
		diskRead:    gaugeVec("disk", "read_bytes_per_second", "Read throughput.", "device"),
		diskWrite:   gaugeVec("disk", "write_bytes_per_second", "Write throughput.", "device"),
		netRx:       gauge("network", "receive_bytes_per_second", "Receive throughput over all interfaces."),
		netTx:       gauge("network", "transmit_bytes_per_second", "Transmit throughput over all interfaces."),
		uptime:      gauge("system", "uptime_seconds", "Seconds since boot."),
		reads:       gaugeVec("sysfs", "reads", "Attribute cache outcomes since start.", "result"),
	}

	e.registry.MustRegister(
		e.samples,
		e.cpuLoad, e.cpuLoadSmoothed, e.coreLoad, e.coreFreq, e.clusterMaxFreq,
		e.gpuInfo, e.gpuFreq, e.gpuBusy, e.gpuBusySmoothed, e.gpuThrottled,
		e.memUsed, e.memAvail, e.swapUsed, e.zramRatio,
		e.batteryLvl, e.batteryTemp, e.batteryCur, e.charging,
		e.zoneTemp, e.diskRead, e.diskWrite, e.netRx, e.netTx, e.uptime, e.reads,
	)

	return e
}

func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Observe publishes one snapshot. Label sets that disappeared since the
// previous snapshot, such as an offlined core, are dropped.
func (e *Exporter) Observe(s domain.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.samples.Inc()

	e.cpuLoad.Set(s.CPU.Load.Total)
	e.cpuLoadSmoothed.Set(e.cpuEMA.Update(s.CPU.Load.Total, s.RecordedAt))

	e.coreLoad.Reset()
	for i, v := range s.CPU.Load.PerCore {
		e.coreLoad.WithLabelValues(strconv.Itoa(i)).Set(v)
	}
	e.coreFreq.Reset()
	for _, c := range s.CPU.Cores {
		e.coreFreq.WithLabelValues(strconv.Itoa(c.Core)).Set(float64(c.Freq))
	}
	e.clusterMaxFreq.Reset()
	for _, c := range s.CPU.Clusters {
		e.clusterMaxFreq.WithLabelValues(strconv.Itoa(c.ClusterNumber)).Set(float64(c.MaxFreq))
	}

	e.gpuInfo.Reset()
	e.gpuInfo.WithLabelValues(string(s.GPU.Vendor), s.GPU.Model).Set(1)
	e.gpuFreq.Set(float64(s.GPU.Load.FrequencyMHz))
	e.gpuBusy.Set(s.GPU.Load.BusyPercent)
	e.gpuBusySmoothed.Set(e.gpuEMA.Update(s.GPU.Load.BusyPercent, s.RecordedAt))
	e.gpuThrottled.Set(boolFloat(s.GPU.Load.Throttled))

	e.memUsed.Set(s.Memory.UsedPercent)
	e.memAvail.Set(float64(s.Memory.AvailableKB * 1024))
	e.swapUsed.Set(float64(s.Memory.SwapUsedKB * 1024))
	e.zramRatio.Reset()
	for _, z := range s.Memory.Zram {
		e.zramRatio.WithLabelValues(z.Name).Set(z.CompressionRatio)
	}

	b := s.Power.Battery
	e.batteryLvl.Set(float64(b.Level))
	e.batteryTemp.Set(b.Temperature)
	e.batteryCur.Set(b.CurrentMA)
	e.charging.Set(boolFloat(b.Charging))

	e.zoneTemp.Reset()
	for _, z := range s.Thermal.Zones {
		e.zoneTemp.WithLabelValues(strconv.Itoa(z.Zone), z.Type).Set(z.Temperature)
	}

	e.diskRead.Reset()
	e.diskWrite.Reset()
	if s.Disk.Device != "" {
		e.diskRead.WithLabelValues(s.Disk.Device).Set(s.Disk.ReadSpeed)
		e.diskWrite.WithLabelValues(s.Disk.Device).Set(s.Disk.WriteSpeed)
	}

	e.netRx.Set(s.Network.RxSpeed)
	e.netTx.Set(s.Network.TxSpeed)

	e.uptime.Set(float64(s.System.UptimeSeconds))
}

// ObserveReads publishes the attribute cache counters.
func (e *Exporter) ObserveReads(st sysfs.Stats) {
	e.reads.WithLabelValues("hit").Set(float64(st.Hits))
	e.reads.WithLabelValues("miss").Set(float64(st.Misses))
	e.reads.WithLabelValues("failure").Set(float64(st.Failures))
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
