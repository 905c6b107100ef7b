// Package metrics wires the engine's admission/release/expiry events into
// Prometheus instruments, the way the teacher's internal/core/*_metrics.go
// files wire lease events into its own Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every Prometheus instrument the engine updates. A nil
// *Registry is valid everywhere it is used — every method is a no-op on a
// nil receiver — so wiring metrics is opt-in.
type Registry struct {
	partitionsActive *prometheus.GaugeVec
	admissions       *prometheus.CounterVec
	releases         *prometheus.CounterVec
	deviceAvailable  *prometheus.GaugeVec
}

// New registers a fresh set of instruments against reg. Pass
// prometheus.NewRegistry() for an isolated registry (tests, multiple
// engines in one process) or prometheus.DefaultRegisterer to expose
// alongside the rest of a process's metrics.
func New(reg prometheus.Registerer) *Registry {
	r := &Registry{
		partitionsActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chronos_partitions_active",
			Help: "Number of active partitions per device.",
		}, []string{"device"}),
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chronos_admissions_total",
			Help: "Outcomes of create() admission attempts.",
		}, []string{"outcome"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chronos_releases_total",
			Help: "Partitions released, labeled by reason.",
		}, []string{"reason"}),
		deviceAvailable: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chronos_device_available_bytes",
			Help: "Bytes of device memory currently available to this process.",
		}, []string{"device"}),
	}
	reg.MustRegister(r.partitionsActive, r.admissions, r.releases, r.deviceAvailable)
	return r
}

// ObserveAdmission records one create() outcome: "ok", or a Failure code.
func (r *Registry) ObserveAdmission(outcome string) {
	if r == nil {
		return
	}
	r.admissions.WithLabelValues(outcome).Inc()
}

// ObserveRelease records one release, labeled by why it happened: "manual",
// "expired", or "shutdown".
func (r *Registry) ObserveRelease(reason string) {
	if r == nil {
		return
	}
	r.releases.WithLabelValues(reason).Inc()
}

// SetDeviceGauges snapshots a device's live numbers into the gauges.
func (r *Registry) SetDeviceGauges(deviceLabel string, activePartitions int, availableBytes uint64) {
	if r == nil {
		return
	}
	r.partitionsActive.WithLabelValues(deviceLabel).Set(float64(activePartitions))
	r.deviceAvailable.WithLabelValues(deviceLabel).Set(float64(availableBytes))
}
