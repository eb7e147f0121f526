package ua

import (
	"fmt"
	"time"
)

// DataValue is a value read from (or written to) a node attribute, together
// with its status and timestamps. Value and Status are optional: a server may
// return a status without a value, a value without a status, or neither. The
// zero value is the unset data value.
type DataValue struct {
	value     Variant
	hasValue  bool
	status    StatusCode
	hasStatus bool

	sourceTimestamp time.Time
	serverTimestamp time.Time
}

// NewDataValue creates a data value holding the given variant with good
// status.
func NewDataValue(value Variant) DataValue {
	return DataValue{
		value:     value,
		hasValue:  true,
		status:    StatusGood,
		hasStatus: true,
	}
}

// NewDataValueStatus creates a data value carrying only a status code.
func NewDataValueStatus(status StatusCode) DataValue {
	return DataValue{status: status, hasStatus: true}
}

// WithSourceTimestamp returns a copy with the source timestamp set.
func (d DataValue) WithSourceTimestamp(ts time.Time) DataValue {
	d.sourceTimestamp = ts
	return d
}

// WithServerTimestamp returns a copy with the server timestamp set.
func (d DataValue) WithServerTimestamp(ts time.Time) DataValue {
	d.serverTimestamp = ts
	return d
}

// Value returns the held variant and whether one is present.
func (d DataValue) Value() (Variant, bool) {
	if !d.hasValue {
		return Variant{}, false
	}
	return d.value, true
}

// Status returns the status code and whether one is present.
func (d DataValue) Status() (StatusCode, bool) {
	if !d.hasStatus {
		return 0, false
	}
	return d.status, true
}

// SourceTimestamp returns the source timestamp; the zero time means unset.
func (d DataValue) SourceTimestamp() time.Time {
	return d.sourceTimestamp
}

// ServerTimestamp returns the server timestamp; the zero time means unset.
func (d DataValue) ServerTimestamp() time.Time {
	return d.serverTimestamp
}

// IsSet reports whether the data value carries a value or a status at all.
func (d DataValue) IsSet() bool {
	return d.hasValue || d.hasStatus
}

// String formats the data value for logging and diagnostics.
func (d DataValue) String() string {
	switch {
	case d.hasValue && d.hasStatus:
		return fmt.Sprintf("DataValue(%v, %v)", d.value, d.status)
	case d.hasValue:
		return fmt.Sprintf("DataValue(%v)", d.value)
	case d.hasStatus:
		return fmt.Sprintf("DataValue(status %v)", d.status)
	default:
		return "DataValue(unset)"
	}
}
