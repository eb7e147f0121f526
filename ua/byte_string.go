package ua

// ArrayState is the tri-state of an OPC UA array-like value. The protocol
// distinguishes an invalid (unset) array from a valid array that happens to be
// empty, and that distinction must survive the trip through this package.
type ArrayState int

// Array states.
const (
	ArrayInvalid ArrayState = iota
	ArrayEmpty
	ArrayValid
)

// String returns the state name.
func (s ArrayState) String() string {
	switch s {
	case ArrayEmpty:
		return "empty"
	case ArrayValid:
		return "valid"
	default:
		return "invalid"
	}
}

// ByteString is an OPC UA byte string. Unlike a plain []byte it is tri-state:
// invalid, empty, or valid with data. The zero value is the invalid byte
// string.
type ByteString struct {
	state ArrayState
	data  []byte
}

// NewByteString creates a valid byte string with the given contents. A nil or
// zero-length slice yields the empty (but valid) byte string.
func NewByteString(data []byte) ByteString {
	if len(data) == 0 {
		return ByteString{state: ArrayEmpty}
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return ByteString{state: ArrayValid, data: copied}
}

// InvalidByteString returns the invalid byte string. This is distinct from the
// empty byte string.
func InvalidByteString() ByteString {
	return ByteString{}
}

// State returns the tri-state of the byte string.
func (b ByteString) State() ArrayState {
	return b.state
}

// IsInvalid reports whether the byte string is invalid (unset).
func (b ByteString) IsInvalid() bool {
	return b.state == ArrayInvalid
}

// IsEmpty reports whether the byte string is valid but empty.
func (b ByteString) IsEmpty() bool {
	return b.state == ArrayEmpty
}

// Bytes returns the contents. The second return value is false when the byte
// string is invalid; an empty byte string returns an empty slice and true.
func (b ByteString) Bytes() ([]byte, bool) {
	switch b.state {
	case ArrayInvalid:
		return nil, false
	case ArrayEmpty:
		return []byte{}, true
	default:
		copied := make([]byte, len(b.data))
		copy(copied, b.data)
		return copied, true
	}
}

// Equal reports whether two byte strings have the same state and contents.
func (b ByteString) Equal(other ByteString) bool {
	if b.state != other.state {
		return false
	}
	if b.state != ArrayValid {
		return true
	}
	if len(b.data) != len(other.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// ContinuationPoint is an opaque server-issued token that allows retrieving
// further paginated results from a prior browse. The zero value is the absent
// continuation point.
type ContinuationPoint struct {
	inner ByteString
}

// NewContinuationPoint wraps a server-issued token. An invalid or empty byte
// string yields the absent continuation point.
func NewContinuationPoint(inner ByteString) ContinuationPoint {
	return ContinuationPoint{inner: inner}
}

// IsAbsent reports whether there are no further results to retrieve.
func (c ContinuationPoint) IsAbsent() bool {
	return c.inner.IsInvalid() || c.inner.IsEmpty()
}

// ByteString returns the raw token.
func (c ContinuationPoint) ByteString() ByteString {
	return c.inner
}
