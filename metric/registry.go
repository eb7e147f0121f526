package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/c360/opcbridge/errors"
)

// Registrar is the interface for registering application-specific metrics
// alongside the core bridge metrics
type Registrar interface {
	Register(name string, collector prometheus.Collector) error
	Unregister(name string) bool
}

// Registry manages the registration and lifecycle of metrics
type Registry struct {
	prometheusRegistry *prometheus.Registry
	core               *Metrics
	registered         map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// NewRegistry creates a new metrics registry with the core bridge metrics and
// Go runtime collectors pre-registered
func NewRegistry() *Registry {
	prometheusRegistry := prometheus.NewRegistry()

	registry := &Registry{
		prometheusRegistry: prometheusRegistry,
		core:               NewMetrics(),
		registered:         make(map[string]prometheus.Collector),
	}

	registry.registerCore()

	registry.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// Prometheus returns the underlying Prometheus registry
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.prometheusRegistry
}

// Core returns the core bridge metrics
func (r *Registry) Core() *Metrics {
	return r.core
}

// Register registers an application-specific collector under a unique name
func (r *Registry) Register(name string, collector prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registered[name]; exists {
		return errors.Wrap(
			fmt.Errorf("collector %s already registered", name),
			"Registry", "Register", "duplicate registration")
	}

	if err := r.prometheusRegistry.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if stderrors.As(err, &alreadyRegErr) {
			return errors.Wrap(err, "Registry", "Register",
				fmt.Sprintf("prometheus conflict for collector %s", name))
		}
		return errors.Wrap(err, "Registry", "Register", "register with prometheus")
	}

	r.registered[name] = collector
	return nil
}

// Unregister removes a previously registered collector
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	collector, exists := r.registered[name]
	if !exists {
		return false
	}

	success := r.prometheusRegistry.Unregister(collector)
	if success {
		delete(r.registered, name)
	}

	return success
}

// registerCore registers all core bridge metrics
func (r *Registry) registerCore() {
	r.prometheusRegistry.MustRegister(
		r.core.DriverIterations,
		r.core.DriverMissedCycles,
		r.core.DriverCycleDuration,
		r.core.DriverRunning,
		r.core.RequestsInFlight,
		r.core.RequestsTotal,
		r.core.RequestDuration,
		r.core.CompletionsDiscarded,
		r.core.ConnectionState,
	)
}
