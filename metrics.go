package hwseed

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Initialization outcomes recorded by [Metrics].
const (
	outcomeCreated  = "created"
	outcomeLoaded   = "loaded"
	outcomeFallback = "fallback"
)

// Metrics holds the Prometheus collectors updated by a [Seeder].
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	initializations *prometheus.CounterVec
	storeErrors     *prometheus.CounterVec
	overrides       prometheus.Counter
	rotations       prometheus.Counter
	bootCount       prometheus.Gauge
}

// NewMetrics creates the seeder collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		initializations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hwseed",
			Name:      "initializations_total",
			Help:      "Seed system initializations by outcome (created, loaded, fallback).",
		}, []string{"outcome"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hwseed",
			Name:      "store_errors_total",
			Help:      "Failed persistence operations by backend and operation.",
		}, []string{"backend", "op"}),
		overrides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hwseed",
			Name:      "user_seed_overrides_total",
			Help:      "Master seed overrides applied through SetUserSeed.",
		}),
		rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hwseed",
			Name:      "session_rotations_total",
			Help:      "Session seed regenerations.",
		}),
		bootCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hwseed",
			Name:      "boot_count",
			Help:      "Boot count of the active seed record.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.initializations, m.storeErrors, m.overrides, m.rotations, m.bootCount)
	}

	return m
}

func (m *Metrics) observeInit(outcome string, bootCount uint32) {
	if m == nil {
		return
	}
	m.initializations.WithLabelValues(outcome).Inc()
	m.bootCount.Set(float64(bootCount))
}

func (m *Metrics) observeStoreError(backend, op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(backend, op).Inc()
}

func (m *Metrics) observeOverride() {
	if m == nil {
		return
	}
	m.overrides.Inc()
}

func (m *Metrics) observeRotation() {
	if m == nil {
		return
	}
	m.rotations.Inc()
}
