// Package metrics exposes Prometheus counters for roster operations and remote sync.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the collectors of one server. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	operations      *prometheus.CounterVec
	pulls           *prometheus.CounterVec
	replaces        *prometheus.CounterVec
	replaceDuration prometheus.Histogram
	merges          prometheus.Counter
	groups          prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry,
// together with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_operations_total",
			Help: "Roster operations by name and result.",
		}, []string{"operation", "result"}),
		pulls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_remote_pulls_total",
			Help: "Pulls from the remote group store by result.",
		}, []string{"result"}),
		replaces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_remote_replaces_total",
			Help: "Group replaces sent to the remote store by result.",
		}, []string{"result"}),
		replaceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "attendance_remote_replace_duration_seconds",
			Help:    "Histogram of remote replace durations.",
			Buckets: prometheus.DefBuckets,
		}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_poll_merges_total",
			Help: "Polls whose data differed from local state and were merged.",
		}),
		groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "attendance_groups",
			Help: "Groups currently held in application state.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
		m.pulls,
		m.replaces,
		m.replaceDuration,
		m.merges,
		m.groups,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Operation counts one roster operation.
func (m *Metrics) Operation(name string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(name, result(err)).Inc()
}

// Pull counts one pull from the remote store.
func (m *Metrics) Pull(err error) {
	if m == nil {
		return
	}
	m.pulls.WithLabelValues(result(err)).Inc()
}

// Replace counts one replace sent to the remote store.
func (m *Metrics) Replace(started time.Time, err error) {
	if m == nil {
		return
	}
	m.replaces.WithLabelValues(result(err)).Inc()
	m.replaceDuration.Observe(time.Since(started).Seconds())
}

// Merged counts a poll that changed local state.
func (m *Metrics) Merged() {
	if m == nil {
		return
	}
	m.merges.Inc()
}

// SetGroups records how many groups are held.
func (m *Metrics) SetGroups(n int) {
	if m == nil {
		return
	}
	m.groups.Set(float64(n))
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
