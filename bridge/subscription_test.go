package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/opcbridge/errors"
	"github.com/c360/opcbridge/ua"
)

func TestSubscription_CreateAndClose(t *testing.T) {
	sim := newSimulator()
	c := newTestClient(t, sim)
	ctx := context.Background()

	sub, err := c.CreateSubscription(ctx)
	require.NoError(t, err)
	assert.NotZero(t, sub.ID())
	assert.Equal(t, 1, sim.SubscriptionCount())

	require.NoError(t, sub.Close())
	assert.Equal(t, 1, sim.DeleteSubscriptionCalls())
	assert.Equal(t, 0, sim.SubscriptionCount())

	// Close is one-shot; a second call must not issue another delete.
	require.NoError(t, sub.Close())
	assert.Equal(t, 1, sim.DeleteSubscriptionCalls())
}

func TestSubscription_CreateMonitoredItem(t *testing.T) {
	sim := newSimulator()
	c := newTestClient(t, sim)
	ctx := context.Background()

	sub, err := c.CreateSubscription(ctx)
	require.NoError(t, err)

	item, err := sub.CreateMonitoredItem(ctx, answerNodeID)
	require.NoError(t, err)
	assert.NotZero(t, item.ID())

	require.NoError(t, item.Close())
	assert.Equal(t, 1, sim.DeleteMonitoredItemCalls())

	require.NoError(t, item.Close())
	assert.Equal(t, 1, sim.DeleteMonitoredItemCalls())
}

func TestSubscription_CreateMonitoredItemUnknownNode(t *testing.T) {
	sim := newSimulator()
	c := newTestClient(t, sim)
	ctx := context.Background()

	sub, err := c.CreateSubscription(ctx)
	require.NoError(t, err)

	_, err = sub.CreateMonitoredItem(ctx, ua.NewStringNodeID(1, "no.such.node"))
	require.Error(t, err)
	assert.True(t, errors.IsServiceFailure(err))
}

func TestSubscription_DetachedParent(t *testing.T) {
	sim := newSimulator()
	c := newTestClient(t, sim)
	ctx := context.Background()

	sub, err := c.CreateSubscription(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	deletes := sim.DeleteSubscriptionCalls()

	// With the owner gone, creating children fails locally.
	_, err = sub.CreateMonitoredItem(ctx, answerNodeID)
	require.Error(t, err)
	assert.True(t, errors.IsDetachedParent(err))

	// Teardown degrades to a no-op. The server expires the subscription on
	// its own; no request is issued.
	require.NoError(t, sub.Close())
	assert.Equal(t, deletes, sim.DeleteSubscriptionCalls())
}

func TestMonitoredItem_DetachedParent(t *testing.T) {
	sim := newSimulator()
	c := newTestClient(t, sim)
	ctx := context.Background()

	sub, err := c.CreateSubscription(ctx)
	require.NoError(t, err)
	item, err := sub.CreateMonitoredItem(ctx, answerNodeID)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	deletes := sim.DeleteMonitoredItemCalls()

	require.NoError(t, item.Close())
	assert.Equal(t, deletes, sim.DeleteMonitoredItemCalls())
}
