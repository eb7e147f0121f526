package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/opcbridge/engine/enginetest"
	"github.com/c360/opcbridge/metric"
)

func newTestDriver(t *testing.T, sim *enginetest.Simulator, cycleTime time.Duration) *driver {
	t.Helper()

	require.NoError(t, sim.Connect("opc.tcp://localhost:4840"))
	d := startDriver(newGuardedHandle(sim), cycleTime, discardLogger(), metric.NewMetrics())
	t.Cleanup(d.Stop)
	return d
}

func TestDriver_IteratesAtCycleTime(t *testing.T) {
	sim := enginetest.NewSimulator()
	d := newTestDriver(t, sim, time.Millisecond)

	assert.Eventually(t, func() bool {
		return d.Stats().Iterations >= 5
	}, time.Second, time.Millisecond)
}

func TestDriver_StopsCleanlyOnDisconnect(t *testing.T) {
	sim := enginetest.NewSimulator()
	d := newTestDriver(t, sim, time.Millisecond)

	assert.Eventually(t, func() bool {
		return d.Stats().Iterations >= 1
	}, time.Second, time.Millisecond)

	sim.DropConnection()

	// The loop observes the disconnect and exits on its own.
	select {
	case <-d.done:
	case <-time.After(time.Second):
		t.Fatal("driver loop did not terminate after disconnect")
	}

	// Stop after self-termination must not hang.
	d.Stop()
}

func TestDriver_CountsMissedCycles(t *testing.T) {
	sim := enginetest.NewSimulator()
	sim.SetIterateDelay(25 * time.Millisecond)
	d := newTestDriver(t, sim, 5*time.Millisecond)

	// Each 25ms iterate overruns the 5ms cycle by a factor of five: every
	// completed cycle misses several ticks, and the count reflects the whole
	// multiple of the cycle time, not just one per overrun.
	assert.Eventually(t, func() bool {
		stats := d.Stats()
		return stats.Iterations >= 2 && stats.MissedCycles >= 2*4
	}, 2*time.Second, time.Millisecond)
}

func TestDriver_SkipsMissedTicksInsteadOfBursting(t *testing.T) {
	sim := enginetest.NewSimulator()
	sim.SetIterateDelay(30 * time.Millisecond)
	d := newTestDriver(t, sim, 5*time.Millisecond)

	time.Sleep(200 * time.Millisecond)
	iterations := d.Stats().Iterations

	// With each iterate taking 30ms and skipped ticks never replayed, the
	// loop cannot have run anywhere near the 40 cycles the period alone
	// would allow.
	assert.LessOrEqual(t, iterations, uint64(10))
	assert.GreaterOrEqual(t, iterations, uint64(2))
}
