package bridge

import (
	"io"
	"log/slog"
	"time"

	"github.com/c360/opcbridge/errors"
	"github.com/c360/opcbridge/metric"
)

// DefaultCycleTime is the driver loop period used when no option overrides
// it.
const DefaultCycleTime = 100 * time.Millisecond

// Option is a functional option for configuring the Client
type Option func(*Client) error

// WithCycleTime sets the driver loop period. Shorter periods reduce request
// latency at the cost of more wakeups.
func WithCycleTime(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errors.New("cycle time must be positive")
		}
		c.cycleTime = d
		return nil
	}
}

// WithLogger sets a custom structured logger for the client. The default
// logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = discardLogger()
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics attaches Prometheus-backed bridge metrics, typically
// metric.NewRegistry().Core(). Without this option the client records into an
// unregistered Metrics instance, so recording is always safe.
func WithMetrics(m *metric.Metrics) Option {
	return func(c *Client) error {
		if m == nil {
			return errors.New("metrics must not be nil")
		}
		c.metrics = m
		return nil
	}
}

// WithMaxReferencesPerNode sets the per-node reference batch limit requested
// from the server when browsing. Zero (the default) lets the server choose.
func WithMaxReferencesPerNode(limit uint32) Option {
	return func(c *Client) error {
		c.maxReferencesPerNode = limit
		return nil
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
