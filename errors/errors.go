// Package errors provides standardized error handling patterns for the
// opcbridge client. It includes error kind classification, standard error
// variables, and helper functions for consistent error wrapping across the
// bridge.
package errors

import (
	"errors"
	"fmt"

	"github.com/c360/opcbridge/ua"
)

// Kind represents the classification of errors for handling purposes
type Kind int

const (
	// KindInternalInvariant represents violations of response-shape contracts
	// that the protocol guarantees (a library or engine bug)
	KindInternalInvariant Kind = iota
	// KindServiceFailure represents a bad service-level status reported by the
	// protocol engine for one specific operation
	KindServiceFailure
	// KindLockFailure represents a poisoned guard around the engine handle;
	// fatal and never retried
	KindLockFailure
	// KindDetachedParent represents an operation on a resource whose owning
	// client is already gone
	KindDetachedParent
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindServiceFailure:
		return "service_failure"
	case KindLockFailure:
		return "lock_failure"
	case KindDetachedParent:
		return "detached_parent"
	case KindInternalInvariant:
		return "internal_invariant"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// ErrClientClosed reports a request that could not complete because the
	// owning client was closed while it was in flight.
	ErrClientClosed = errors.New("client closed")

	// ErrGuardPoisoned reports that a prior holder of the engine guard
	// panicked mid-access. The client is unusable from this point on.
	ErrGuardPoisoned = errors.New("engine guard poisoned")

	// ErrDetachedParent reports an operation on a child resource whose owning
	// client no longer exists.
	ErrDetachedParent = errors.New("owning client already closed")

	// ErrMissingResults reports a response without the result list the
	// protocol guarantees.
	ErrMissingResults = errors.New("response carries no results")

	// ErrResultCountMismatch reports a result list whose length differs from
	// the request's target list length.
	ErrResultCountMismatch = errors.New("result count does not match request")
)

// KindError wraps an error with its kind classification. ServiceFailure
// errors additionally carry the reported status code.
type KindError struct {
	Kind      Kind
	Err       error
	Status    ua.StatusCode // set for KindServiceFailure only
	Operation string
}

// Error implements the error interface
func (e *KindError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: %s", e.Operation, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *KindError) Unwrap() error {
	return e.Err
}

// newKind creates a new kind-classified error
func newKind(kind Kind, err error, operation string) *KindError {
	return &KindError{Kind: kind, Err: err, Operation: operation}
}

// ServiceFailure creates an error reporting a bad service-level status for
// one operation.
func ServiceFailure(operation string, status ua.StatusCode) error {
	return &KindError{
		Kind:      KindServiceFailure,
		Err:       fmt.Errorf("service result %s", status),
		Status:    status,
		Operation: operation,
	}
}

// LockFailure creates an error reporting a poisoned engine guard.
func LockFailure(operation string) error {
	return newKind(KindLockFailure, ErrGuardPoisoned, operation)
}

// DetachedParent creates an error reporting an operation on a resource whose
// owner is already gone.
func DetachedParent(operation string) error {
	return newKind(KindDetachedParent, ErrDetachedParent, operation)
}

// Internal creates an internal-invariant error from a violated contract.
func Internal(operation string, err error) error {
	if err == nil {
		return nil
	}
	return newKind(KindInternalInvariant, err, operation)
}

// Internalf creates an internal-invariant error from a format string.
func Internalf(operation, format string, args ...any) error {
	return newKind(KindInternalInvariant, fmt.Errorf(format, args...), operation)
}

// ClassOf returns the kind of an error. Unclassified errors report
// KindInternalInvariant: anything the bridge did not classify explicitly is a
// contract violation by definition.
func ClassOf(err error) Kind {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return KindInternalInvariant
}

// IsServiceFailure checks if an error reports a bad service-level status
func IsServiceFailure(err error) bool {
	var ke *KindError
	return errors.As(err, &ke) && ke.Kind == KindServiceFailure
}

// IsLockFailure checks if an error reports a poisoned engine guard
func IsLockFailure(err error) bool {
	var ke *KindError
	return errors.As(err, &ke) && ke.Kind == KindLockFailure
}

// IsDetachedParent checks if an error reports a detached parent resource
func IsDetachedParent(err error) bool {
	var ke *KindError
	return errors.As(err, &ke) && ke.Kind == KindDetachedParent
}

// IsInternal checks if an error reports a violated internal invariant
func IsInternal(err error) bool {
	var ke *KindError
	return errors.As(err, &ke) && ke.Kind == KindInternalInvariant
}

// ServiceStatus extracts the status code from a service-failure error. The
// second return value is false for all other errors.
func ServiceStatus(err error) (ua.StatusCode, bool) {
	var ke *KindError
	if errors.As(err, &ke) && ke.Kind == KindServiceFailure {
		return ke.Status, true
	}
	return 0, false
}

// VerifyGood returns nil for a good status code and a service-failure error
// otherwise.
func VerifyGood(operation string, status ua.StatusCode) error {
	if status.IsGood() {
		return nil
	}
	return ServiceFailure(operation, status)
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// Is reports whether any error in err's chain matches target. Re-exported so
// callers do not need to import both this package and the standard library
// errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target. Re-exported
// alongside Is.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text. Re-exported alongside
// Is and As.
func New(text string) error {
	return errors.New(text)
}
