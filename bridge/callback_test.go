package bridge

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/opcbridge/errors"
	"github.com/c360/opcbridge/metric"
	"github.com/c360/opcbridge/ua"
)

func newTestArena() *completionArena {
	return newCompletionArena(discardLogger(), metric.NewMetrics())
}

func goodReadResponse() *ua.ReadResponse {
	return &ua.ReadResponse{
		Header:  ua.ResponseHeader{ServiceResult: ua.StatusGood},
		Results: []ua.DataValue{},
	}
}

func TestCompletionArena_ExecuteResolvesSlot(t *testing.T) {
	arena := newTestArena()

	token, future := arena.Prepare()
	assert.Equal(t, 1, arena.Pending())

	arena.Execute(token, goodReadResponse())

	done := <-future
	require.NoError(t, done.err)
	assert.IsType(t, &ua.ReadResponse{}, done.resp)
	assert.Equal(t, 0, arena.Pending())
}

func TestCompletionArena_DoubleExecuteIsHarmless(t *testing.T) {
	arena := newTestArena()

	token, future := arena.Prepare()
	arena.Execute(token, goodReadResponse())

	// A misbehaving engine fires the callback again. Must not panic, must
	// not deliver twice.
	require.NotPanics(t, func() {
		arena.Execute(token, goodReadResponse())
	})

	<-future
	select {
	case <-future:
		t.Fatal("slot resolved twice")
	default:
	}
}

func TestCompletionArena_AbandonDiscardsLateCompletion(t *testing.T) {
	arena := newTestArena()

	token, future := arena.Prepare()
	arena.Abandon(token)
	assert.Equal(t, 0, arena.Pending())

	require.NotPanics(t, func() {
		arena.Execute(token, goodReadResponse())
	})

	select {
	case <-future:
		t.Fatal("abandoned slot must not resolve")
	default:
	}
}

func TestCompletionArena_UnknownTokenIsHarmless(t *testing.T) {
	arena := newTestArena()

	require.NotPanics(t, func() {
		arena.Execute(uuid.New(), goodReadResponse())
	})
}

func TestCompletionArena_FailAllResolvesEverySlot(t *testing.T) {
	arena := newTestArena()

	_, first := arena.Prepare()
	_, second := arena.Prepare()

	closeErr := errors.Internal("request", errors.ErrClientClosed)
	arena.FailAll(closeErr)

	for _, future := range []<-chan completion{first, second} {
		done := <-future
		require.Error(t, done.err)
		assert.True(t, errors.Is(done.err, errors.ErrClientClosed))
	}
	assert.Equal(t, 0, arena.Pending())

	// Idempotent.
	require.NotPanics(t, func() { arena.FailAll(closeErr) })
}

func TestCompletionArena_PrepareAfterFailAll(t *testing.T) {
	arena := newTestArena()
	arena.FailAll(errors.Internal("request", errors.ErrClientClosed))

	_, future := arena.Prepare()

	// The slot arrives pre-failed so no caller can block on a closed arena.
	done := <-future
	require.Error(t, done.err)
	assert.True(t, errors.Is(done.err, errors.ErrClientClosed))
}
