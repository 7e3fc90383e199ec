// Package metrics provides Prometheus metrics for the calendar sync service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// One counter per run-summary outcome, plus run bookkeeping.
	syncRuns            prometheus.Counter
	eventsAdded         prometheus.Counter
	eventsUpdated       prometheus.Counter
	pastSkipped         prometheus.Counter
	invalidSkipped      prometheus.Counter
	duplicateCandidates prometheus.Counter
	remoteErrors        prometheus.Counter
	feedErrors          prometheus.Counter

	racesFetched      prometheus.Gauge
	lastSyncUnix      prometheus.Gauge
	remoteCallLatency prometheus.Histogram
}

// Global manager on a custom registry, so the default Go collectors do not
// pollute the scrape output.
var (
	customRegistry = prometheus.NewRegistry()
	globalManager  = NewManager(WithRegistry(customRegistry))
)

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "f1calsync",
		subsystem:        "sync",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.register()
	return m
}

func (m *Manager) register() {
	auto := promauto.With(m.registry)

	m.syncRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of reconciliation passes started",
	})
	m.eventsAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_added_total",
		Help:      "Total number of calendar events created",
	})
	m.eventsUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_updated_total",
		Help:      "Total number of calendar events replaced",
	})
	m.pastSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_past_skipped_total",
		Help:      "Total number of sessions skipped for being in the past",
	})
	m.invalidSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_invalid_skipped_total",
		Help:      "Total number of sessions skipped for malformed timestamps",
	})
	m.duplicateCandidates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_candidates_total",
		Help:      "Total number of same-pass duplicate candidates skipped",
	})
	m.remoteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "remote_errors_total",
		Help:      "Total number of failed calendar store calls",
	})
	m.feedErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_errors_total",
		Help:      "Total number of failed schedule fetches",
	})
	m.racesFetched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "races_fetched",
		Help:      "Number of races returned by the most recent fetch",
	})
	m.lastSyncUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the most recent completed reconciliation pass",
	})
	m.remoteCallLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "remote_call_duration_seconds",
		Help:      "Latency of individual calendar store calls",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the registry backing the global manager, for the
// /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordRunStarted()             { globalManager.syncRuns.Inc() }
func RecordEventAdded()             { globalManager.eventsAdded.Inc() }
func RecordEventUpdated()           { globalManager.eventsUpdated.Inc() }
func RecordPastSkipped()            { globalManager.pastSkipped.Inc() }
func RecordInvalidSkipped()         { globalManager.invalidSkipped.Inc() }
func RecordDuplicateCandidate()     { globalManager.duplicateCandidates.Inc() }
func RecordRemoteError()            { globalManager.remoteErrors.Inc() }
func RecordFeedError()              { globalManager.feedErrors.Inc() }
func UpdateRacesFetched(n int)      { globalManager.racesFetched.Set(float64(n)) }
func RecordRunCompleted(t time.Time) {
	globalManager.lastSyncUnix.Set(float64(t.Unix()))
}

// ObserveRemoteCall records the latency of one calendar store call.
func ObserveRemoteCall(d time.Duration) {
	globalManager.remoteCallLatency.Observe(d.Seconds())
}
