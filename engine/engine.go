// Package engine defines the boundary to the OPC UA protocol engine: the
// external, non-reentrant client implementation that performs the actual
// wire-level request/response and session maintenance work.
//
// Everything behind this interface is owned by the engine: encoding, session
// and channel management, endpoint negotiation, and the publish loop. The
// bridge owns everything in front of it: serializing access to the handle,
// driving it periodically, and converting its callback completion model into
// awaitable calls.
package engine

import (
	"time"

	"github.com/c360/opcbridge/ua"
)

// ResponseCallback receives the response for one asynchronous request. The
// engine invokes it exactly once, from inside a later Iterate call (or from
// engine teardown), never from the goroutine that submitted the request.
type ResponseCallback func(resp ua.Response)

// Engine is a non-reentrant handle to the protocol engine's client object.
//
// Non-reentrancy is the defining constraint: at most one goroutine may call
// any method at a time, and implementations are free to misbehave arbitrarily
// if that is violated. The bridge guarantees it by routing every call through
// a single guarded handle.
//
// Iterate processes pending network I/O for at most the given duration (zero
// means no blocking at all) and fires any due response callbacks synchronously
// before returning. It must be called periodically to maintain the connection.
type Engine interface {
	// Connect establishes a connection to the endpoint. Synchronous.
	Connect(endpointURL string) error

	// Disconnect closes the connection. Synchronous. Any requests still
	// pending have their callbacks invoked with a bad status before this
	// returns, or never.
	Disconnect() error

	// Iterate drives the engine for at most timeout, firing due callbacks
	// synchronously. Returns StatusBadDisconnect after a clean disconnect.
	Iterate(timeout time.Duration) ua.StatusCode

	// SendAsync hands one request to the engine and registers cb to receive
	// its response. The returned status reports only whether the request was
	// accepted for sending; the outcome arrives via cb.
	SendAsync(req ua.Request, cb ResponseCallback) ua.StatusCode

	// State returns the current channel, session, and connect state.
	State() ua.ClientState
}
