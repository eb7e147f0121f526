package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/c360/opcbridge/ua"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindInternalInvariant, "internal_invariant"},
		{KindServiceFailure, "service_failure"},
		{KindLockFailure, "lock_failure"},
		{KindDetachedParent, "detached_parent"},
		{Kind(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.kind.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestServiceFailure(t *testing.T) {
	err := ServiceFailure("read", ua.StatusBadNodeIDUnknown)

	if !IsServiceFailure(err) {
		t.Errorf("expected service failure classification for %v", err)
	}
	if IsLockFailure(err) || IsDetachedParent(err) || IsInternal(err) {
		t.Errorf("unexpected secondary classification for %v", err)
	}

	status, ok := ServiceStatus(err)
	if !ok {
		t.Fatalf("expected status code on %v", err)
	}
	if status != ua.StatusBadNodeIDUnknown {
		t.Errorf("expected BadNodeIdUnknown, got %v", status)
	}
}

func TestServiceStatus_OtherKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"nil", nil},
		{"plain", fmt.Errorf("plain error")},
		{"lock failure", LockFailure("submit")},
		{"detached parent", DetachedParent("create monitored item")},
		{"internal", Internal("read", ErrMissingResults)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, ok := ServiceStatus(test.err); ok {
				t.Errorf("expected no status code on %v", test.err)
			}
		})
	}
}

func TestVerifyGood(t *testing.T) {
	if err := VerifyGood("read", ua.StatusGood); err != nil {
		t.Errorf("expected nil for good status, got %v", err)
	}
	// Uncertain severity still counts as not-good for service results.
	if err := VerifyGood("read", ua.StatusUncertainInitialValue); err == nil {
		t.Error("expected error for uncertain status")
	}
	if err := VerifyGood("read", ua.StatusBadInternalError); err == nil {
		t.Error("expected error for bad status")
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"service failure", ServiceFailure("write", ua.StatusBadNotWritable), KindServiceFailure},
		{"lock failure", LockFailure("drive"), KindLockFailure},
		{"detached parent", DetachedParent("delete subscription"), KindDetachedParent},
		{"internal", Internalf("browse", "missing results"), KindInternalInvariant},
		{"unclassified", fmt.Errorf("some error"), KindInternalInvariant},
		{"wrapped service failure", fmt.Errorf("outer: %w", ServiceFailure("call", ua.StatusBadMethodInvalid)), KindServiceFailure},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ClassOf(test.err); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestUnwrap_Sentinels(t *testing.T) {
	if !errors.Is(LockFailure("submit"), ErrGuardPoisoned) {
		t.Error("lock failure should unwrap to ErrGuardPoisoned")
	}
	if !errors.Is(DetachedParent("op"), ErrDetachedParent) {
		t.Error("detached parent should unwrap to ErrDetachedParent")
	}
	if !errors.Is(Internal("read", ErrResultCountMismatch), ErrResultCountMismatch) {
		t.Error("internal error should unwrap to its cause")
	}
}

func TestInternal_NilError(t *testing.T) {
	if err := Internal("read", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestWrap(t *testing.T) {
	base := fmt.Errorf("boom")
	err := Wrap(base, "Client", "ReadValue", "submit request")

	expected := "Client.ReadValue: submit request failed: boom"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
	if Wrap(nil, "Client", "ReadValue", "submit request") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestKindError_Message(t *testing.T) {
	err := ServiceFailure("browse", ua.StatusBadNodeIDUnknown)
	expected := "browse: service result BadNodeIdUnknown"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
