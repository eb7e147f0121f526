package bridge

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/c360/opcbridge/errors"
	"github.com/c360/opcbridge/metric"
	"github.com/c360/opcbridge/ua"
)

// completion is the outcome delivered through a pending slot: a response from
// the engine, or a bridge-level error (client closed while in flight).
type completion struct {
	resp ua.Response
	err  error
}

// completionArena converts the engine's one-shot callback model into channels
// the submitting goroutines can await. Each pending request owns one slot,
// addressed by an opaque token that is safe to hand across the engine
// boundary: if the awaiting side has already gone away when the callback
// fires, the token no longer resolves and the result is discarded silently.
//
// Slots are single-producer single-consumer with capacity one, so executing a
// completion never blocks the goroutine that is driving the engine.
type completionArena struct {
	mu      sync.Mutex
	slots   map[uuid.UUID]chan completion
	closed  bool
	logger  *slog.Logger
	metrics *metric.Metrics
}

func newCompletionArena(logger *slog.Logger, metrics *metric.Metrics) *completionArena {
	return &completionArena{
		slots:   make(map[uuid.UUID]chan completion),
		logger:  logger,
		metrics: metrics,
	}
}

// Prepare allocates a one-shot slot and returns its token together with the
// channel that resolves when the slot is filled. If the arena has already
// been closed the channel arrives pre-filled with the close error.
func (a *completionArena) Prepare() (uuid.UUID, <-chan completion) {
	token := uuid.New()
	ch := make(chan completion, 1)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		ch <- completion{err: errors.Internal("request", errors.ErrClientClosed)}
		return token, ch
	}

	a.slots[token] = ch
	return token, ch
}

// Execute fills the slot for token and wakes the awaiting caller. Calling it
// with a token that no longer resolves (the caller abandoned its await, or a
// misbehaving engine invoked the callback twice) is a safe no-op.
func (a *completionArena) Execute(token uuid.UUID, resp ua.Response) {
	a.mu.Lock()
	ch, ok := a.slots[token]
	if ok {
		delete(a.slots, token)
	}
	a.mu.Unlock()

	if !ok {
		// The receiving side is gone. Must not panic here: this path runs
		// inside the engine's callback invocation.
		a.logger.Debug("discarding completion without receiver")
		a.metrics.RecordCompletionDiscarded()
		return
	}

	// Capacity one and the slot was just removed from the map, so this send
	// cannot block and cannot race another Execute.
	ch <- completion{resp: resp}
}

// Abandon withdraws the caller's interest in a pending slot. A completion
// that fires for the token afterwards is discarded by Execute.
func (a *completionArena) Abandon(token uuid.UUID) {
	a.mu.Lock()
	delete(a.slots, token)
	a.mu.Unlock()
}

// Pending returns the number of outstanding slots.
func (a *completionArena) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.slots)
}

// FailAll resolves every outstanding slot with err and refuses new slots.
// Called when the owning client closes, so no caller is left hanging on a
// callback that can never fire.
func (a *completionArena) FailAll(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true

	for token, ch := range a.slots {
		delete(a.slots, token)
		ch <- completion{err: err}
	}
}
