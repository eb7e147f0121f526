package bridge

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360/opcbridge/engine"
	"github.com/c360/opcbridge/errors"
	"github.com/c360/opcbridge/ua"
)

// guardedHandle is the mutually-exclusive owner of the protocol engine
// handle. All access to the engine, from façade calls and from the driver
// loop alike, goes through Submit or Drive.
//
// The guard is never held across a blocking wait: an operation either hands a
// request to the engine or performs one zero-timeout iterate, then releases.
type guardedHandle struct {
	mu     sync.Mutex
	engine engine.Engine

	// poisoned is set when a guarded operation panics. The panic still
	// propagates to the offending goroutine; every later access fails with a
	// lock-failure error instead of touching state of unknown integrity.
	poisoned atomic.Bool

	closed atomic.Bool
}

func newGuardedHandle(eng engine.Engine) *guardedHandle {
	return &guardedHandle{engine: eng}
}

// Submit acquires exclusive access, runs op against the engine, and releases.
// op must not block on anything but the engine call itself.
func (h *guardedHandle) Submit(operation string, op func(engine.Engine) error) error {
	if h.poisoned.Load() {
		return errors.LockFailure(operation)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Re-check under the lock: a holder may have poisoned the guard while we
	// were waiting for it.
	if h.poisoned.Load() {
		return errors.LockFailure(operation)
	}
	if h.closed.Load() {
		return errors.Internal(operation, errors.ErrClientClosed)
	}

	defer func() {
		if r := recover(); r != nil {
			h.poisoned.Store(true)
			panic(r)
		}
	}()

	return op(h.engine)
}

// Drive acquires the guard and runs one engine iteration with zero blocking
// time, so the guard is never held waiting on network I/O. Any completion
// callbacks due to fire are invoked synchronously inside this call.
func (h *guardedHandle) Drive() (ua.StatusCode, error) {
	var status ua.StatusCode
	err := h.Submit("drive", func(eng engine.Engine) error {
		status = eng.Iterate(0 * time.Millisecond)
		return nil
	})
	return status, err
}

// State returns the engine's connection state.
func (h *guardedHandle) State() (ua.ClientState, error) {
	var state ua.ClientState
	err := h.Submit("state", func(eng engine.Engine) error {
		state = eng.State()
		return nil
	})
	return state, err
}

// IsDetached reports whether the handle has been closed or poisoned. Child
// resources use this as their liveness check before attempting teardown.
func (h *guardedHandle) IsDetached() bool {
	return h.closed.Load() || h.poisoned.Load()
}

// Close marks the handle closed and issues a best-effort synchronous
// disconnect. Safe to call more than once; only the first call disconnects.
func (h *guardedHandle) Close() error {
	if h.poisoned.Load() {
		return errors.LockFailure("close")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed.Swap(true) {
		return nil
	}
	return h.engine.Disconnect()
}
