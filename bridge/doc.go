// Package bridge provides the asynchronous OPC UA client: a bridge between
// the cooperative, callback-driven protocol engine and Go's multi-goroutine
// concurrency model.
//
// # Overview
//
// The protocol engine (see package engine) exposes a non-reentrant handle: at
// most one goroutine may touch it at a time, it must be driven periodically to
// process network I/O, and every outgoing request completes later via a
// callback invoked from inside that drive call. This package makes that
// handle safely reachable from arbitrarily many concurrent callers without
// serializing their visible latency behind each other's network round-trips.
//
// Four pieces cooperate:
//
//   - The guarded handle serializes access to the engine. Every access is a
//     single acquire-operate-release; the guard is never held across a
//     blocking wait. A panic inside a guarded operation poisons the guard and
//     every later access fails with a lock-failure error.
//   - The completion arena converts "register a callback, receive exactly one
//     invocation later" into a channel the submitting goroutine can await.
//     Slots are addressed by opaque tokens, so a completion that fires after
//     the awaiting caller has gone away is discarded silently instead of
//     touching freed state.
//   - The driver loop is one background goroutine per client. It wakes on a
//     fixed cycle, acquires the guard, and drives the engine with zero
//     blocking time, which fires any due completion callbacks synchronously.
//     Overlong iterations skip ticks instead of bursting.
//   - The client façade builds the public read/write/call/browse/subscribe
//     operations on top of the other three. A façade call holds the guard
//     only long enough to hand its request to the engine, then suspends on
//     its arena slot.
//
// # Basic usage
//
//	client, err := bridge.Connect(eng, "opc.tcp://localhost:4840",
//	    bridge.WithCycleTime(100*time.Millisecond))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	value, err := client.ReadValue(ctx, ua.NewNumericNodeID(1, 1773))
//
// # Cancellation
//
// Every public operation takes a context. Canceling it abandons the caller's
// interest only; the in-flight engine operation is not canceled, and its
// eventual completion is discarded safely. Closing the client stops the
// driver loop, resolves all pending requests with an internal error, and
// issues a best-effort disconnect.
package bridge
