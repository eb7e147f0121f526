// Package opcbridge provides an asynchronous OPC UA client built on top of a
// callback-driven protocol engine.
//
// # Philosophy: Concurrent Facade Over a Single-Threaded Engine
//
// OPC UA protocol engines are typically single-threaded: one handle, no
// reentrancy, progress only when explicitly iterated, results delivered
// through one-shot callbacks. opcbridge wraps such an engine so that any
// number of goroutines can issue blocking-style requests concurrently,
// without ever violating the engine's threading contract.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│          Request Facade             │  Read, Write, Call,
//	│   (bridge.Client, Subscription)     │  Browse, Subscriptions
//	└─────────────────────────────────────┘
//	           ↓ awaits via
//	┌─────────────────────────────────────┐
//	│        Completion Arena             │  One-shot token slots,
//	│  (callback → channel conversion)    │  late results discarded
//	└─────────────────────────────────────┘
//	           ↓ resolved by
//	┌─────────────────────────────────────┐
//	│      Guarded Handle + Driver        │  Exclusive engine access,
//	│  (mutex guard, fixed-cycle loop)    │  zero-blocking iterates
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│        Protocol Engine              │  engine.Engine interface
//	│  (connect, iterate, send async)     │  (enginetest.Simulator)
//	└─────────────────────────────────────┘
//
// # Packages
//
// Core:
//   - bridge: the asynchronous client (guarded handle, completion arena,
//     driver loop, request facade, subscriptions)
//   - engine: the protocol engine boundary interface
//   - engine/enginetest: in-memory engine for tests and examples
//   - ua: OPC UA value types (node IDs, status codes, variants, services)
//
// Infrastructure:
//   - errors: structured error handling with failure-kind classification
//   - metric: Prometheus metrics
//   - config: configuration loading and validation
//
// # Usage
//
//	client, err := bridge.Connect(eng, "opc.tcp://plc:4840",
//	    bridge.WithCycleTime(50*time.Millisecond),
//	    bridge.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	value, err := client.ReadValue(ctx, ua.NewStringNodeID(1, "the.answer"))
//
// Every facade call holds the engine guard only long enough to hand over the
// request, then suspends on its own completion. The background driver loop
// iterates the engine at a fixed cycle time, skipping missed ticks rather
// than bursting to catch up, and fires the pending completion callbacks.
//
// # Design Principles
//
// Non-reentrancy by construction:
//   - all engine access funnels through one mutex-owned handle
//   - the guard is never held across a blocking wait
//   - a panic inside the guard poisons it; later access fails fast
//
// Robust completion delivery:
//   - completions resolve token-addressed one-shot slots
//   - abandoned awaits and double-executed callbacks are safe no-ops
//   - closing the client fails all in-flight requests, none left hanging
//
// Decoupled child lifecycles:
//   - subscriptions and monitored items hold non-owning client references
//   - teardown is fire-and-forget and degrades to a no-op once the client
//     is gone; the server expires the resources on its own
package opcbridge
