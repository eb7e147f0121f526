// Package errors provides standardized error handling for the opcbridge
// client. It defines the error kinds every public operation can surface,
// sentinel errors for common conditions, and helper functions for consistent
// wrapping and classification.
//
// # Error kinds
//
//   - KindLockFailure: the guard around the protocol engine handle is poisoned
//     (a prior holder panicked mid-access). Fatal, never retried, surfaced to
//     every subsequent caller.
//   - KindServiceFailure: the protocol engine reported a bad status for one
//     specific operation. Carries the ua.StatusCode. Surfaced to that
//     operation's caller only; never fatal to the client.
//   - KindInternalInvariant: a response-shape contract that the protocol
//     guarantees was violated (missing result list, mismatched list length).
//     A library/engine bug, surfaced as an error rather than a crash.
//   - KindDetachedParent: an operation was attempted on a resource whose owner
//     is already gone (for example a monitored item created on a subscription
//     whose client has been closed).
//
// The classification integrates with Go's standard error handling, supporting
// errors.Is(), errors.As(), and wrapping chains.
//
// # Quick start
//
//	if err := client.WriteValue(ctx, nodeID, value); err != nil {
//	    if errors.IsServiceFailure(err) {
//	        status, _ := errors.ServiceStatus(err)
//	        // the server rejected this one write; the client stays usable
//	    }
//	}
package errors
