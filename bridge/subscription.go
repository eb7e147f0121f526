package bridge

import (
	"context"
	"sync"

	"github.com/c360/opcbridge/errors"
	"github.com/c360/opcbridge/ua"
)

// Subscription is a handle to a server-side subscription. It holds a
// non-owning back-reference to its client: once the client is closed, the
// subscription's own teardown degrades to a no-op (the server expires the
// subscription on its own), and creating monitored items fails with a
// detached-parent error.
type Subscription struct {
	client         *Client
	subscriptionID ua.SubscriptionID

	closeOnce sync.Once
}

// CreateSubscription creates a subscription with the engine's default
// publishing parameters.
func (c *Client) CreateSubscription(ctx context.Context) (*Subscription, error) {
	req := ua.DefaultCreateSubscriptionRequest()

	resp, err := serviceRequest[*ua.CreateSubscriptionResponse](ctx, c, "create_subscription", req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("created subscription", "subscription_id", resp.SubscriptionID)

	return &Subscription{
		client:         c,
		subscriptionID: resp.SubscriptionID,
	}, nil
}

// ID returns the server-assigned subscription identifier.
func (s *Subscription) ID() ua.SubscriptionID {
	return s.subscriptionID
}

// CreateMonitoredItem creates a monitored item for the value attribute of the
// given node. It fails with a detached-parent error when the owning client
// has already been closed.
func (s *Subscription) CreateMonitoredItem(ctx context.Context, nodeID ua.NodeID) (*MonitoredItem, error) {
	if s.client.handle.IsDetached() {
		return nil, errors.DetachedParent("create_monitored_item")
	}

	req := &ua.CreateMonitoredItemsRequest{
		SubscriptionID: s.subscriptionID,
		ItemsToCreate: []ua.MonitoredItemCreateRequest{{
			ItemToMonitor: ua.ReadValueID{NodeID: nodeID, AttributeID: ua.AttributeIDValue},
		}},
	}

	resp, err := serviceRequest[*ua.CreateMonitoredItemsResponse](ctx, s.client, "create_monitored_item", req)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, errors.Internal("create_monitored_item", errors.ErrMissingResults)
	}

	result := resp.Results[0]
	if err := errors.VerifyGood("create_monitored_item", result.StatusCode); err != nil {
		return nil, err
	}

	return &MonitoredItem{
		client:          s.client,
		subscriptionID:  s.subscriptionID,
		monitoredItemID: result.MonitoredItemID,
	}, nil
}

// Close deletes the subscription server-side, best effort: the delete request
// is fired without waiting for its completion, and skipped entirely when the
// owning client is already gone. Safe to call more than once.
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		if s.client.handle.IsDetached() {
			// Nothing to clean up from this process's perspective; the
			// server expires the subscription on its own.
			return
		}

		req := &ua.DeleteSubscriptionsRequest{
			SubscriptionIDs: []ua.SubscriptionID{s.subscriptionID},
		}
		fireAndForget(s.client, "delete_subscription", req)
	})
	return nil
}

// MonitoredItem is a handle to one server-side monitored data point, scoped
// under its subscription. It follows the same non-owning back-reference and
// best-effort teardown discipline as Subscription.
type MonitoredItem struct {
	client          *Client
	subscriptionID  ua.SubscriptionID
	monitoredItemID ua.MonitoredItemID

	closeOnce sync.Once
}

// ID returns the server-assigned monitored item identifier.
func (m *MonitoredItem) ID() ua.MonitoredItemID {
	return m.monitoredItemID
}

// Close deletes the monitored item server-side, best effort, without waiting
// for completion. Skipped entirely when the owning client is already gone.
// Safe to call more than once.
func (m *MonitoredItem) Close() error {
	m.closeOnce.Do(func() {
		if m.client.handle.IsDetached() {
			return
		}

		req := &ua.DeleteMonitoredItemsRequest{
			SubscriptionID:   m.subscriptionID,
			MonitoredItemIDs: []ua.MonitoredItemID{m.monitoredItemID},
		}
		fireAndForget(m.client, "delete_monitored_item", req)
	})
	return nil
}
