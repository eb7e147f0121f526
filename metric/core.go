package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all bridge-level metrics (not application-specific)
type Metrics struct {
	// Driver loop metrics
	DriverIterations    prometheus.Counter
	DriverMissedCycles  prometheus.Counter
	DriverCycleDuration prometheus.Histogram
	DriverRunning       prometheus.Gauge

	// Request metrics
	RequestsInFlight prometheus.Gauge
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec

	// Completion metrics
	CompletionsDiscarded prometheus.Counter

	// Connection metrics
	ConnectionState prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all bridge metrics
func NewMetrics() *Metrics {
	return &Metrics{
		DriverIterations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "opcbridge",
				Subsystem: "driver",
				Name:      "iterations_total",
				Help:      "Total number of driver loop iterations",
			},
		),

		DriverMissedCycles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "opcbridge",
				Subsystem: "driver",
				Name:      "missed_cycles_total",
				Help:      "Total number of cycles missed because an iteration overran the cycle time",
			},
		),

		DriverCycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "opcbridge",
				Subsystem: "driver",
				Name:      "cycle_duration_seconds",
				Help:      "Duration of a single driver iteration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),

		DriverRunning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "opcbridge",
				Subsystem: "driver",
				Name:      "running",
				Help:      "Driver loop status (0=terminated, 1=running)",
			},
		),

		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "opcbridge",
				Subsystem: "requests",
				Name:      "in_flight",
				Help:      "Number of requests awaiting completion",
			},
		),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "opcbridge",
				Subsystem: "requests",
				Name:      "total",
				Help:      "Total number of completed requests",
			},
			[]string{"service", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "opcbridge",
				Subsystem: "requests",
				Name:      "duration_seconds",
				Help:      "Request round-trip duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service"},
		),

		CompletionsDiscarded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "opcbridge",
				Subsystem: "completions",
				Name:      "discarded_total",
				Help:      "Completions discarded because the awaiting caller had already gone away",
			},
		),

		ConnectionState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "opcbridge",
				Subsystem: "connection",
				Name:      "connected",
				Help:      "Connection status (0=disconnected, 1=connected)",
			},
		),
	}
}

// RecordIteration increments the driver iteration counter and records the
// cycle duration
func (m *Metrics) RecordIteration(duration time.Duration) {
	m.DriverIterations.Inc()
	m.DriverCycleDuration.Observe(duration.Seconds())
}

// RecordMissedCycles adds to the missed cycle counter
func (m *Metrics) RecordMissedCycles(count int) {
	m.DriverMissedCycles.Add(float64(count))
}

// RecordDriverRunning updates the driver loop status gauge
func (m *Metrics) RecordDriverRunning(running bool) {
	value := 0.0
	if running {
		value = 1.0
	}
	m.DriverRunning.Set(value)
}

// RecordRequestStarted increments the in-flight gauge
func (m *Metrics) RecordRequestStarted() {
	m.RequestsInFlight.Inc()
}

// RecordRequestCompleted decrements the in-flight gauge and records the
// outcome
func (m *Metrics) RecordRequestCompleted(service, status string, duration time.Duration) {
	m.RequestsInFlight.Dec()
	m.RequestsTotal.WithLabelValues(service, status).Inc()
	m.RequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordCompletionDiscarded increments the discarded completion counter
func (m *Metrics) RecordCompletionDiscarded() {
	m.CompletionsDiscarded.Inc()
}

// RecordConnectionState updates the connection status gauge
func (m *Metrics) RecordConnectionState(connected bool) {
	value := 0.0
	if connected {
		value = 1.0
	}
	m.ConnectionState.Set(value)
}
