// Package metric provides Prometheus-based metrics collection for the
// opcbridge client.
//
// The package offers a metrics registry managing the core bridge metrics
// (driver loop, request round-trips, completion handling, connection state)
// and accepting additional application-specific collectors.
//
// # Core Metrics
//
// All core metrics use the namespace "opcbridge":
//
//   - opcbridge_driver_iterations_total: driver loop iterations
//   - opcbridge_driver_missed_cycles_total: cycles missed because an
//     iteration overran the cycle time
//   - opcbridge_driver_cycle_duration_seconds: iteration duration
//   - opcbridge_driver_running: 1 while the driver loop is alive
//   - opcbridge_requests_in_flight: requests awaiting completion
//   - opcbridge_requests_total{service,status}: completed requests
//   - opcbridge_requests_duration_seconds{service}: round-trip duration
//   - opcbridge_completions_discarded_total: completions whose awaiting
//     caller had already gone away
//   - opcbridge_connection_connected: connection state
//
// # Basic Usage
//
//	registry := metric.NewRegistry()
//	client, err := bridge.Connect(engine, endpoint,
//	    bridge.WithMetrics(registry.Core()))
//
//	// expose registry.Prometheus() via promhttp in the host application
//
// Metric recording is lock-free (a Prometheus guarantee); registration is
// mutex-protected and safe for concurrent use.
package metric
