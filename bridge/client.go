package bridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/c360/opcbridge/engine"
	"github.com/c360/opcbridge/errors"
	"github.com/c360/opcbridge/metric"
	"github.com/c360/opcbridge/ua"
)

// Client is the asynchronous OPC UA client. It is safe for concurrent use by
// any number of goroutines; every operation suspends only while awaiting its
// own completion, never while holding the engine guard.
type Client struct {
	handle *guardedHandle
	arena  *completionArena
	driver *driver

	cycleTime            time.Duration
	maxReferencesPerNode uint32
	logger               *slog.Logger
	metrics              *metric.Metrics

	closeOnce sync.Once
	closeErr  error
}

// Connect establishes a connection to the endpoint and returns a running
// client: the background driver loop is already started when Connect
// returns.
func Connect(eng engine.Engine, endpointURL string, opts ...Option) (*Client, error) {
	c, err := newClient(eng, opts)
	if err != nil {
		return nil, err
	}

	if err := eng.Connect(endpointURL); err != nil {
		return nil, errors.Wrap(err, "Client", "Connect", "establish connection")
	}
	c.metrics.RecordConnectionState(true)

	c.start()
	return c, nil
}

// New wraps an engine that is already connected (or whose connection is
// managed elsewhere) and starts the background driver loop.
func New(eng engine.Engine, opts ...Option) (*Client, error) {
	c, err := newClient(eng, opts)
	if err != nil {
		return nil, err
	}

	c.start()
	return c, nil
}

func newClient(eng engine.Engine, opts []Option) (*Client, error) {
	c := &Client{
		cycleTime: DefaultCycleTime,
		logger:    discardLogger(),
		metrics:   metric.NewMetrics(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.Wrap(err, "Client", "New", "apply option")
		}
	}

	c.handle = newGuardedHandle(eng)
	c.arena = newCompletionArena(c.logger, c.metrics)

	return c, nil
}

func (c *Client) start() {
	c.driver = startDriver(c.handle, c.cycleTime, c.logger, c.metrics)
}

// State returns the engine's current channel, session, and connect state.
func (c *Client) State() (ua.ClientState, error) {
	return c.handle.State()
}

// DriverStats returns a snapshot of the background driver loop's statistics.
func (c *Client) DriverStats() DriverStats {
	return c.driver.Stats()
}

// Close stops the background driver loop, resolves all in-flight requests
// with an internal error, and issues a best-effort disconnect. Subsequent
// calls return the first call's result.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.logger.Debug("closing client")

		c.driver.Stop()
		c.arena.FailAll(errors.Internal("request", errors.ErrClientClosed))

		c.closeErr = c.handle.Close()
		c.metrics.RecordConnectionState(false)
	})
	return c.closeErr
}

// ReadAttribute reads one attribute of one node.
//
// To read only the value attribute, ReadValue is a shorthand.
func (c *Client) ReadAttribute(ctx context.Context, nodeID ua.NodeID, attributeID ua.AttributeID) (ua.DataValue, error) {
	values, err := c.ReadAttributes(ctx, nodeID, []ua.AttributeID{attributeID})
	if err != nil {
		return ua.DataValue{}, err
	}

	// We requested exactly one attribute; the read path has already verified
	// the 1:1 result correspondence.
	if len(values) != 1 {
		return ua.DataValue{}, errors.Internal("read", errors.ErrResultCountMismatch)
	}
	return values[0], nil
}

// ReadValue reads the value attribute of a node.
func (c *Client) ReadValue(ctx context.Context, nodeID ua.NodeID) (ua.DataValue, error) {
	return c.ReadAttribute(ctx, nodeID, ua.AttributeIDValue)
}

// ReadAttributes reads several attributes of one node. The size and order of
// the result list matches the size and order of the given attribute ID list;
// a per-attribute failure is reported inside that element's DataValue status,
// never by omitting the element.
func (c *Client) ReadAttributes(ctx context.Context, nodeID ua.NodeID, attributeIDs []ua.AttributeID) ([]ua.DataValue, error) {
	nodesToRead := make([]ua.ReadValueID, len(attributeIDs))
	for i, attributeID := range attributeIDs {
		nodesToRead[i] = ua.ReadValueID{NodeID: nodeID, AttributeID: attributeID}
	}

	req := &ua.ReadRequest{NodesToRead: nodesToRead}

	resp, err := serviceRequest[*ua.ReadResponse](ctx, c, "read", req)
	if err != nil {
		return nil, err
	}

	if resp.Results == nil {
		return nil, errors.Internal("read", errors.ErrMissingResults)
	}
	// The protocol guarantees the result list has the same number of elements
	// as the request list. Without this we could not match the two anyway.
	if len(resp.Results) != len(attributeIDs) {
		return nil, errors.Internal("read", errors.ErrResultCountMismatch)
	}

	return resp.Results, nil
}

// WriteValue writes the value attribute of a node.
func (c *Client) WriteValue(ctx context.Context, nodeID ua.NodeID, value ua.DataValue) error {
	req := &ua.WriteRequest{NodesToWrite: []ua.WriteValue{{
		NodeID:      nodeID,
		AttributeID: ua.AttributeIDValue,
		Value:       value,
	}}}

	resp, err := serviceRequest[*ua.WriteResponse](ctx, c, "write", req)
	if err != nil {
		return err
	}

	if len(resp.Results) == 0 {
		return errors.Internal("write", errors.ErrMissingResults)
	}
	// Write defines a single pass/fail per target; the first element's status
	// determines the overall result.
	return errors.VerifyGood("write", resp.Results[0])
}

// CallMethod calls a method node on an object node. A nil result with nil
// error signals a void method; a non-nil empty slice is a method that
// returned zero output arguments.
func (c *Client) CallMethod(ctx context.Context, objectID, methodID ua.NodeID, inputArguments []ua.Variant) ([]ua.Variant, error) {
	req := &ua.CallRequest{MethodsToCall: []ua.CallMethodRequest{{
		ObjectID:       objectID,
		MethodID:       methodID,
		InputArguments: inputArguments,
	}}}

	resp, err := serviceRequest[*ua.CallResponse](ctx, c, "call", req)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, errors.Internal("call", errors.ErrMissingResults)
	}

	result := resp.Results[0]
	if err := errors.VerifyGood("call", result.StatusCode); err != nil {
		return nil, err
	}

	return result.OutputArguments, nil
}

// BrowsePage is one node's browse outcome: the references found so far and,
// when the server truncated the result, the continuation point to feed into
// BrowseNext.
type BrowsePage struct {
	References        []ua.ReferenceDescription
	ContinuationPoint ua.ContinuationPoint
}

// Browse browses one node. Unlike the plural BrowseMany, a failed element is
// surfaced directly as a service failure carrying that element's own status.
func (c *Client) Browse(ctx context.Context, nodeID ua.NodeID) (*BrowsePage, error) {
	req := &ua.BrowseRequest{
		NodesToBrowse:                 []ua.BrowseDescription{{NodeID: nodeID}},
		RequestedMaxReferencesPerNode: c.maxReferencesPerNode,
	}

	resp, err := serviceRequest[*ua.BrowseResponse](ctx, c, "browse", req)
	if err != nil {
		return nil, err
	}

	if resp.Results == nil {
		return nil, errors.Internal("browse", errors.ErrMissingResults)
	}
	if len(resp.Results) != 1 {
		return nil, errors.Internal("browse", errors.ErrResultCountMismatch)
	}

	result := resp.Results[0]
	if err := errors.VerifyGood("browse", result.StatusCode); err != nil {
		return nil, err
	}
	return &BrowsePage{
		References:        result.References,
		ContinuationPoint: result.ContinuationPoint,
	}, nil
}

// BrowseMany browses several nodes with a single request to the server
// (preferred over several individual Browse calls). The size and order of the
// result list matches the size and order of the given node ID list; a nil
// element denotes that node's own failure without failing the whole batch.
func (c *Client) BrowseMany(ctx context.Context, nodeIDs []ua.NodeID) ([]*BrowsePage, error) {
	nodesToBrowse := make([]ua.BrowseDescription, len(nodeIDs))
	for i, nodeID := range nodeIDs {
		nodesToBrowse[i] = ua.BrowseDescription{NodeID: nodeID}
	}

	req := &ua.BrowseRequest{
		NodesToBrowse:                 nodesToBrowse,
		RequestedMaxReferencesPerNode: c.maxReferencesPerNode,
	}

	resp, err := serviceRequest[*ua.BrowseResponse](ctx, c, "browse", req)
	if err != nil {
		return nil, err
	}

	return browsePages("browse", resp.Results, len(nodeIDs))
}

// BrowseNext retrieves further references for continuation points returned
// from Browse or BrowseMany. The size and order of the result list matches
// the size and order of the given continuation point list.
func (c *Client) BrowseNext(ctx context.Context, continuationPoints []ua.ContinuationPoint) ([]*BrowsePage, error) {
	req := &ua.BrowseNextRequest{ContinuationPoints: continuationPoints}

	resp, err := serviceRequest[*ua.BrowseNextResponse](ctx, c, "browse_next", req)
	if err != nil {
		return nil, err
	}

	return browsePages("browse_next", resp.Results, len(continuationPoints))
}

func browsePages(operation string, results []ua.BrowseResult, want int) ([]*BrowsePage, error) {
	if results == nil {
		return nil, errors.Internal(operation, errors.ErrMissingResults)
	}
	// Same 1:1 correspondence guarantee as for read.
	if len(results) != want {
		return nil, errors.Internal(operation, errors.ErrResultCountMismatch)
	}

	pages := make([]*BrowsePage, len(results))
	for i, result := range results {
		if !result.StatusCode.IsGood() {
			continue
		}
		pages[i] = &BrowsePage{
			References:        result.References,
			ContinuationPoint: result.ContinuationPoint,
		}
	}
	return pages, nil
}
