package ua

import "fmt"

// Variant holds a scalar OPC UA value of any type, or nothing at all. The zero
// value is the empty variant.
type Variant struct {
	value any
}

// NewVariant creates a variant holding the given scalar value. Passing nil
// yields the empty variant.
func NewVariant(value any) Variant {
	return Variant{value: value}
}

// EmptyVariant returns the empty variant.
func EmptyVariant() Variant {
	return Variant{}
}

// IsEmpty reports whether the variant holds no value.
func (v Variant) IsEmpty() bool {
	return v.value == nil
}

// Value returns the held value and whether the variant is non-empty.
func (v Variant) Value() (any, bool) {
	if v.value == nil {
		return nil, false
	}
	return v.value, true
}

// Bool returns the held value as bool.
func (v Variant) Bool() (bool, bool) {
	b, ok := v.value.(bool)
	return b, ok
}

// Int64 returns the held value as int64, converting from the smaller signed
// integer types.
func (v Variant) Int64() (int64, bool) {
	switch n := v.value.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// Uint64 returns the held value as uint64, converting from the smaller
// unsigned integer types.
func (v Variant) Uint64() (uint64, bool) {
	switch n := v.value.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}

// Float64 returns the held value as float64, converting from float32.
func (v Variant) Float64() (float64, bool) {
	switch n := v.value.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Str returns the held value as string.
func (v Variant) Str() (string, bool) {
	s, ok := v.value.(string)
	return s, ok
}

// NodeID returns the held value as NodeID.
func (v Variant) NodeID() (NodeID, bool) {
	n, ok := v.value.(NodeID)
	return n, ok
}

// String formats the variant for logging and diagnostics.
func (v Variant) String() string {
	if v.value == nil {
		return "Variant(empty)"
	}
	return fmt.Sprintf("Variant(%v)", v.value)
}
