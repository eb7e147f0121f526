package enginetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/opcbridge/ua"
)

func newTestSpace(t *testing.T) *Simulator {
	t.Helper()

	sim := NewSimulator()
	sim.AddObject(ua.NewNumericNodeID(0, 85), "Objects")
	sim.AddVariable(ua.NewStringNodeID(1, "the.answer"), "TheAnswer",
		ua.NewVariant(int32(42)), ua.NewNumericNodeID(0, 6))
	sim.AddReference(ua.NewNumericNodeID(0, 85), ua.NewStringNodeID(1, "the.answer"))

	require.NoError(t, sim.Connect("opc.tcp://localhost:4840"))
	return sim
}

func TestSimulator_CompletionsDeferredToIterate(t *testing.T) {
	sim := newTestSpace(t)

	fired := false
	status := sim.SendAsync(&ua.ReadRequest{
		NodesToRead: []ua.ReadValueID{{
			NodeID:      ua.NewStringNodeID(1, "the.answer"),
			AttributeID: ua.AttributeIDValue,
		}},
	}, func(ua.Response) { fired = true })
	require.Equal(t, ua.StatusGood, status)

	assert.False(t, fired, "callback must not fire from SendAsync")
	assert.Equal(t, 1, sim.PendingCompletions())

	require.Equal(t, ua.StatusGood, sim.Iterate(0))
	assert.True(t, fired, "callback must fire from Iterate")
	assert.Equal(t, 0, sim.PendingCompletions())
}

func TestSimulator_ReadUnknownNodePerElementStatus(t *testing.T) {
	sim := newTestSpace(t)

	var got *ua.ReadResponse
	sim.SendAsync(&ua.ReadRequest{
		NodesToRead: []ua.ReadValueID{
			{NodeID: ua.NewStringNodeID(1, "the.answer"), AttributeID: ua.AttributeIDValue},
			{NodeID: ua.NewStringNodeID(1, "no.such.node"), AttributeID: ua.AttributeIDValue},
		},
	}, func(resp ua.Response) { got = resp.(*ua.ReadResponse) })
	sim.Iterate(0)

	require.NotNil(t, got)
	require.Len(t, got.Results, 2)

	status, ok := got.Results[0].Status()
	require.True(t, ok)
	assert.Equal(t, ua.StatusGood, status)

	status, ok = got.Results[1].Status()
	require.True(t, ok)
	assert.Equal(t, ua.StatusBadNodeIDUnknown, status)
}

func TestSimulator_WriteRespectsWritable(t *testing.T) {
	sim := newTestSpace(t)
	sim.AddReadOnlyVariable(ua.NewStringNodeID(1, "constant"), "Constant",
		ua.NewVariant(3.14), ua.NewNumericNodeID(0, 11))

	var got *ua.WriteResponse
	sim.SendAsync(&ua.WriteRequest{
		NodesToWrite: []ua.WriteValue{
			{
				NodeID:      ua.NewStringNodeID(1, "the.answer"),
				AttributeID: ua.AttributeIDValue,
				Value:       ua.NewDataValue(ua.NewVariant(int32(43))),
			},
			{
				NodeID:      ua.NewStringNodeID(1, "constant"),
				AttributeID: ua.AttributeIDValue,
				Value:       ua.NewDataValue(ua.NewVariant(2.71)),
			},
		},
	}, func(resp ua.Response) { got = resp.(*ua.WriteResponse) })
	sim.Iterate(0)

	require.NotNil(t, got)
	require.Len(t, got.Results, 2)
	assert.Equal(t, ua.StatusGood, got.Results[0])
	assert.Equal(t, ua.StatusBadNotWritable, got.Results[1])

	value, ok := sim.Value(ua.NewStringNodeID(1, "the.answer"))
	require.True(t, ok)
	n, ok := value.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(43), n)
}

func TestSimulator_BrowsePaging(t *testing.T) {
	sim := NewSimulator()
	root := ua.NewNumericNodeID(0, 85)
	sim.AddObject(root, "Objects")
	for i := 0; i < 5; i++ {
		id := ua.NewNumericNodeID(1, uint32(1000+i))
		sim.AddVariable(id, "v", ua.NewVariant(int32(i)), ua.NewNumericNodeID(0, 6))
		sim.AddReference(root, id)
	}
	sim.SetBrowseLimit(2)
	require.NoError(t, sim.Connect("opc.tcp://localhost:4840"))

	var first *ua.BrowseResponse
	sim.SendAsync(&ua.BrowseRequest{
		NodesToBrowse: []ua.BrowseDescription{{NodeID: root}},
	}, func(resp ua.Response) { first = resp.(*ua.BrowseResponse) })
	sim.Iterate(0)

	require.NotNil(t, first)
	require.Len(t, first.Results, 1)
	assert.Len(t, first.Results[0].References, 2)
	require.False(t, first.Results[0].ContinuationPoint.IsAbsent())

	// Walk the continuation to exhaustion.
	total := len(first.Results[0].References)
	cp := first.Results[0].ContinuationPoint
	for !cp.IsAbsent() {
		var next *ua.BrowseNextResponse
		sim.SendAsync(&ua.BrowseNextRequest{
			ContinuationPoints: []ua.ContinuationPoint{cp},
		}, func(resp ua.Response) { next = resp.(*ua.BrowseNextResponse) })
		sim.Iterate(0)

		require.NotNil(t, next)
		require.Len(t, next.Results, 1)
		total += len(next.Results[0].References)
		cp = next.Results[0].ContinuationPoint
	}
	assert.Equal(t, 5, total)
}

func TestSimulator_BrowseNextStaleContinuationPoint(t *testing.T) {
	sim := newTestSpace(t)

	var got *ua.BrowseNextResponse
	sim.SendAsync(&ua.BrowseNextRequest{
		ContinuationPoints: []ua.ContinuationPoint{
			ua.NewContinuationPoint(ua.NewByteString([]byte("not a token"))),
		},
	}, func(resp ua.Response) { got = resp.(*ua.BrowseNextResponse) })
	sim.Iterate(0)

	require.NotNil(t, got)
	require.Len(t, got.Results, 1)
	assert.Equal(t, ua.StatusBadContinuationPointInvalid, got.Results[0].StatusCode)
}

func TestSimulator_IterateAfterDisconnect(t *testing.T) {
	sim := newTestSpace(t)

	require.NoError(t, sim.Disconnect())
	assert.Equal(t, ua.StatusBadDisconnect, sim.Iterate(0))

	status := sim.SendAsync(&ua.ReadRequest{}, func(ua.Response) {})
	assert.Equal(t, ua.StatusBadServerNotConnected, status)
}

func TestSimulator_SubscriptionLifecycle(t *testing.T) {
	sim := newTestSpace(t)

	var created *ua.CreateSubscriptionResponse
	sim.SendAsync(ua.DefaultCreateSubscriptionRequest(),
		func(resp ua.Response) { created = resp.(*ua.CreateSubscriptionResponse) })
	sim.Iterate(0)

	require.NotNil(t, created)
	assert.Equal(t, 1, sim.SubscriptionCount())
	assert.Equal(t, 500*time.Millisecond, created.RevisedPublishingInterval)

	var item *ua.CreateMonitoredItemsResponse
	sim.SendAsync(&ua.CreateMonitoredItemsRequest{
		SubscriptionID: created.SubscriptionID,
		ItemsToCreate: []ua.MonitoredItemCreateRequest{{
			ItemToMonitor: ua.ReadValueID{
				NodeID:      ua.NewStringNodeID(1, "the.answer"),
				AttributeID: ua.AttributeIDValue,
			},
		}},
	}, func(resp ua.Response) { item = resp.(*ua.CreateMonitoredItemsResponse) })
	sim.Iterate(0)

	require.NotNil(t, item)
	require.Len(t, item.Results, 1)
	assert.Equal(t, ua.StatusGood, item.Results[0].StatusCode)

	var deleted *ua.DeleteSubscriptionsResponse
	sim.SendAsync(&ua.DeleteSubscriptionsRequest{
		SubscriptionIDs: []ua.SubscriptionID{created.SubscriptionID, 9999},
	}, func(resp ua.Response) { deleted = resp.(*ua.DeleteSubscriptionsResponse) })
	sim.Iterate(0)

	require.NotNil(t, deleted)
	require.Len(t, deleted.Results, 2)
	assert.Equal(t, ua.StatusGood, deleted.Results[0])
	assert.Equal(t, ua.StatusBadSubscriptionIDInvalid, deleted.Results[1])
	assert.Equal(t, 0, sim.SubscriptionCount())
}

func TestSimulator_PanicsOnConcurrentEntry(t *testing.T) {
	sim := newTestSpace(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	sim.AddMethod(ua.NewStringNodeID(1, "block"), "Block",
		func([]ua.Variant) ([]ua.Variant, ua.StatusCode) {
			close(entered)
			<-release
			return nil, ua.StatusGood
		})

	go sim.SendAsync(&ua.CallRequest{
		MethodsToCall: []ua.CallMethodRequest{{
			ObjectID: ua.NewNumericNodeID(0, 85),
			MethodID: ua.NewStringNodeID(1, "block"),
		}},
	}, func(ua.Response) {})

	<-entered
	assert.Panics(t, func() { sim.Iterate(0) })
	close(release)
}
