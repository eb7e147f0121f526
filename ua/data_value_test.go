package ua

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataValue_ValueAndStatusAreOptional(t *testing.T) {
	var unset DataValue
	assert.False(t, unset.IsSet())

	_, ok := unset.Value()
	assert.False(t, ok)
	_, ok = unset.Status()
	assert.False(t, ok)

	withValue := NewDataValue(NewVariant(int32(1)))
	assert.True(t, withValue.IsSet())
	_, ok = withValue.Value()
	assert.True(t, ok)
	status, ok := withValue.Status()
	require.True(t, ok)
	assert.Equal(t, StatusGood, status)

	statusOnly := NewDataValueStatus(StatusBadNodeIDUnknown)
	assert.True(t, statusOnly.IsSet())
	_, ok = statusOnly.Value()
	assert.False(t, ok)
	status, ok = statusOnly.Status()
	require.True(t, ok)
	assert.Equal(t, StatusBadNodeIDUnknown, status)
}

func TestDataValue_Timestamps(t *testing.T) {
	now := time.Now()
	dv := NewDataValue(NewVariant(true)).WithSourceTimestamp(now).WithServerTimestamp(now)

	assert.Equal(t, now, dv.SourceTimestamp())
	assert.Equal(t, now, dv.ServerTimestamp())
	assert.True(t, NewDataValue(NewVariant(true)).SourceTimestamp().IsZero())
}

func TestVariant_TypedAccessors(t *testing.T) {
	assert.True(t, EmptyVariant().IsEmpty())
	assert.True(t, NewVariant(nil).IsEmpty())

	b, ok := NewVariant(true).Bool()
	require.True(t, ok)
	assert.True(t, b)

	n, ok := NewVariant(int32(-7)).Int64()
	require.True(t, ok)
	assert.Equal(t, int64(-7), n)

	u, ok := NewVariant(uint16(9)).Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(9), u)

	// Every integer width converts, down to single bytes.
	for _, v := range []any{int8(5), int16(5), int32(5), int64(5), int(5)} {
		n, ok := NewVariant(v).Int64()
		require.True(t, ok, "width %T", v)
		assert.Equal(t, int64(5), n)
	}
	for _, v := range []any{uint8(5), uint16(5), uint32(5), uint64(5), uint(5)} {
		u, ok := NewVariant(v).Uint64()
		require.True(t, ok, "width %T", v)
		assert.Equal(t, uint64(5), u)
	}

	f, ok := NewVariant(float32(1.5)).Float64()
	require.True(t, ok)
	assert.Equal(t, 1.5, f)

	s, ok := NewVariant("hello").Str()
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	// Accessors never coerce across kinds.
	_, ok = NewVariant("hello").Int64()
	assert.False(t, ok)
	_, ok = NewVariant(int32(1)).Str()
	assert.False(t, ok)
}
