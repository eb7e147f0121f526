package bridge

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/c360/opcbridge/metric"
	"github.com/c360/opcbridge/ua"
)

// driver is the background loop that keeps the engine alive. One per client.
//
// Each cycle acquires the guarded handle for a single zero-timeout iterate,
// which maintains the connection and fires any due completion callbacks. The
// loop suspends only at its tick wait, never while holding the guard.
type driver struct {
	handle    *guardedHandle
	cycleTime time.Duration
	logger    *slog.Logger
	metrics   *metric.Metrics

	cancel context.CancelFunc
	done   chan struct{}

	// Always-on statistics, independent of Prometheus registration.
	iterations   atomic.Uint64
	missedCycles atomic.Uint64
}

// DriverStats is a snapshot of the driver loop's always-on statistics.
type DriverStats struct {
	Iterations   uint64
	MissedCycles uint64
}

func startDriver(handle *guardedHandle, cycleTime time.Duration, logger *slog.Logger, metrics *metric.Metrics) *driver {
	ctx, cancel := context.WithCancel(context.Background())

	d := &driver{
		handle:    handle,
		cycleTime: cycleTime,
		logger:    logger,
		metrics:   metrics,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go d.run(ctx)

	return d
}

// Stop aborts the loop and waits for it to exit. Safe to call after the loop
// has already terminated on its own.
func (d *driver) Stop() {
	d.cancel()
	<-d.done
}

// Stats returns a snapshot of the loop's statistics.
func (d *driver) Stats() DriverStats {
	return DriverStats{
		Iterations:   d.iterations.Load(),
		MissedCycles: d.missedCycles.Load(),
	}
}

func (d *driver) run(ctx context.Context) {
	defer close(d.done)

	d.logger.Debug("starting driver loop", "cycle_time", d.cycleTime)
	d.metrics.RecordDriverRunning(true)
	defer d.metrics.RecordDriverRunning(false)

	// time.Ticker keeps at most one pending tick, so an iteration that
	// overruns the cycle time skips the missed ticks instead of triggering a
	// burst of back-to-back iterations afterwards.
	ticker := time.NewTicker(d.cycleTime)
	defer ticker.Stop()

	// The first cycle runs immediately; the ticker only paces the following
	// ones.
	for {
		if !d.cycle() {
			return
		}

		select {
		case <-ctx.Done():
			d.logger.Debug("driver loop canceled")
			return
		case <-ticker.C:
		}
	}
}

// cycle performs one guarded iterate and returns false when the loop must
// terminate.
func (d *driver) cycle() bool {
	start := time.Now()

	status, err := d.handle.Drive()
	if err != nil {
		// Guard poisoned or handle closed underneath us.
		d.logger.Error("terminating driver loop: drive failed", "error", err)
		return false
	}

	elapsed := time.Since(start)
	d.iterations.Add(1)
	d.metrics.RecordIteration(elapsed)

	if !status.IsGood() {
		if status == ua.StatusBadDisconnect {
			// Not an error.
			d.logger.Info("terminating driver loop after disconnect")
		} else {
			d.logger.Error("terminating driver loop: iterate failed", "status", status)
		}
		return false
	}

	// Detect and report missed cycles. Diagnostic only.
	if d.cycleTime > 0 && elapsed > d.cycleTime {
		missed := uint64(elapsed / d.cycleTime)
		d.missedCycles.Add(missed)
		d.metrics.RecordMissedCycles(int(missed))
		d.logger.Warn("iterate overran cycle time",
			"elapsed", elapsed,
			"missed_cycles", missed)
	}

	return true
}
