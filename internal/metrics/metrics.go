// Package metrics exposes the monitor's counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements weather.Recorder.
type Metrics struct {
	fetches       *prometheus.CounterVec
	alerts        *prometheus.CounterVec
	summaryWrites *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_fetches_total",
			Help: "Provider fetches by city and result.",
		}, []string{"city", "result"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_alerts_total",
			Help: "Consecutive-breach alerts fired by city.",
		}, []string{"city"}),
		summaryWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_summary_writes_total",
			Help: "Daily summary writes by city and result. Failed writes are lost.",
		}, []string{"city", "result"}),
	}

	reg.MustRegister(m.fetches, m.alerts, m.summaryWrites)
	return m
}

func (m *Metrics) FetchSucceeded(city string) {
	m.fetches.WithLabelValues(city, "ok").Inc()
}

func (m *Metrics) FetchFailed(city string) {
	m.fetches.WithLabelValues(city, "error").Inc()
}

func (m *Metrics) AlertFired(city string) {
	m.alerts.WithLabelValues(city).Inc()
}

func (m *Metrics) SummaryPersisted(city string) {
	m.summaryWrites.WithLabelValues(city, "ok").Inc()
}

func (m *Metrics) SummaryPersistFailed(city string) {
	m.summaryWrites.WithLabelValues(city, "error").Inc()
}
