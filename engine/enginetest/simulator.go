// Package enginetest provides an in-memory protocol engine for testing the
// bridge and for running the example binary without a real server.
//
// The Simulator implements engine.Engine against a small in-memory address
// space. Requests submitted through SendAsync are answered from that address
// space, but the completion callbacks are queued and only fired from a later
// Iterate call, exactly like the real engine: nothing completes unless
// something drives the handle.
//
// The simulator also enforces the engine's non-reentrancy contract: it panics
// when two goroutines enter it concurrently, which turns a broken guard in
// the bridge into an immediate test failure.
package enginetest

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/c360/opcbridge/engine"
	"github.com/c360/opcbridge/ua"
)

// MethodFunc implements a callable method node. Returning nil output
// arguments signals a void method.
type MethodFunc func(inputArguments []ua.Variant) ([]ua.Variant, ua.StatusCode)

// node is one entry in the simulated address space.
type node struct {
	id          ua.NodeID
	class       ua.NodeClass
	browseName  ua.QualifiedName
	displayName string
	dataType    ua.NodeID
	writable    bool
	value       ua.Variant
	method      MethodFunc
	references  []ua.ReferenceDescription
}

// pendingCall is one queued completion, fired on the next Iterate.
type pendingCall struct {
	cb   engine.ResponseCallback
	resp ua.Response
}

// continuation tracks the remaining references of a truncated browse.
type continuation struct {
	nodeKey string
	offset  int
}

// Simulator is an in-memory engine.Engine implementation.
type Simulator struct {
	// busy trips when two goroutines enter the engine concurrently, which
	// would violate the non-reentrancy contract the bridge must uphold.
	busy atomic.Bool

	mu            sync.Mutex
	connected     bool
	disconnected  bool
	nodes         map[string]*node
	browseLimit   int
	iterateDelay  time.Duration
	pending       []pendingCall
	continuations map[string]continuation
	subscriptions map[ua.SubscriptionID]map[ua.MonitoredItemID]ua.NodeID
	nextSubID     uint32
	nextItemID    uint32

	injectServiceResult *ua.StatusCode
	injectSendStatus    *ua.StatusCode
	injectBrowseStatus  *ua.StatusCode

	deleteSubscriptionCalls  int
	deleteMonitoredItemCalls int
}

// NewSimulator creates an empty simulator. Populate the address space with
// AddObject, AddVariable, AddMethod, and AddReference before connecting.
func NewSimulator() *Simulator {
	return &Simulator{
		nodes:         make(map[string]*node),
		continuations: make(map[string]continuation),
		subscriptions: make(map[ua.SubscriptionID]map[ua.MonitoredItemID]ua.NodeID),
	}
}

// AddObject adds an object node.
func (s *Simulator) AddObject(id ua.NodeID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[id.String()] = &node{
		id:          id,
		class:       ua.NodeClassObject,
		browseName:  ua.QualifiedName{NamespaceIndex: id.NamespaceIndex(), Name: name},
		displayName: name,
	}
}

// AddVariable adds a writable variable node holding the given value.
func (s *Simulator) AddVariable(id ua.NodeID, name string, value ua.Variant, dataType ua.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[id.String()] = &node{
		id:          id,
		class:       ua.NodeClassVariable,
		browseName:  ua.QualifiedName{NamespaceIndex: id.NamespaceIndex(), Name: name},
		displayName: name,
		dataType:    dataType,
		writable:    true,
		value:       value,
	}
}

// AddReadOnlyVariable adds a variable node that rejects writes with
// BadNotWritable.
func (s *Simulator) AddReadOnlyVariable(id ua.NodeID, name string, value ua.Variant, dataType ua.NodeID) {
	s.AddVariable(id, name, value, dataType)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[id.String()].writable = false
}

// AddMethod adds a method node backed by fn.
func (s *Simulator) AddMethod(id ua.NodeID, name string, fn MethodFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[id.String()] = &node{
		id:          id,
		class:       ua.NodeClassMethod,
		browseName:  ua.QualifiedName{NamespaceIndex: id.NamespaceIndex(), Name: name},
		displayName: name,
		method:      fn,
	}
}

// AddReference adds a forward hierarchical reference from parent to child.
// The child must already exist in the address space.
func (s *Simulator) AddReference(parent, child ua.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.nodes[parent.String()]
	if !ok {
		return
	}
	c, ok := s.nodes[child.String()]
	if !ok {
		return
	}

	p.references = append(p.references, ua.ReferenceDescription{
		NodeID:      c.id,
		IsForward:   true,
		BrowseName:  c.browseName,
		DisplayName: c.displayName,
		NodeClass:   c.class,
	})
}

// SetBrowseLimit caps the number of references returned per browse result.
// Results beyond the cap are retrievable via continuation points. Zero means
// unlimited.
func (s *Simulator) SetBrowseLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.browseLimit = limit
}

// SetIterateDelay makes every Iterate call take at least d, for exercising
// overlong driver cycles.
func (s *Simulator) SetIterateDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iterateDelay = d
}

// DropConnection severs the connection out-of-band, as a network failure
// would. The next Iterate reports BadDisconnect. Unlike Disconnect this is a
// test control, not an engine entry point, so it may be called while another
// goroutine is inside the engine.
func (s *Simulator) DropConnection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.disconnected = true
	s.pending = nil
}

// InjectServiceResult makes the next request's response carry the given
// service-level result. One-shot.
func (s *Simulator) InjectServiceResult(status ua.StatusCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectServiceResult = &status
}

// InjectSendStatus makes the next SendAsync call itself return the given
// status without queueing a completion. One-shot.
func (s *Simulator) InjectSendStatus(status ua.StatusCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectSendStatus = &status
}

// InjectBrowseResultStatus makes every element of the next browse response
// carry the given per-element status. The response itself stays good.
// One-shot.
func (s *Simulator) InjectBrowseResultStatus(status ua.StatusCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectBrowseStatus = &status
}

// Value returns the current value of a variable node.
func (s *Simulator) Value(id ua.NodeID) (ua.Variant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id.String()]
	if !ok || n.class != ua.NodeClassVariable {
		return ua.Variant{}, false
	}
	return n.value, true
}

// PendingCompletions returns the number of completions queued for the next
// Iterate.
func (s *Simulator) PendingCompletions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// SubscriptionCount returns the number of live subscriptions.
func (s *Simulator) SubscriptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscriptions)
}

// DeleteSubscriptionCalls returns how many delete-subscriptions requests the
// simulator has received.
func (s *Simulator) DeleteSubscriptionCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteSubscriptionCalls
}

// DeleteMonitoredItemCalls returns how many delete-monitored-items requests
// the simulator has received.
func (s *Simulator) DeleteMonitoredItemCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteMonitoredItemCalls
}

// enter enforces the non-reentrancy contract for engine entry points.
func (s *Simulator) enter() func() {
	if !s.busy.CompareAndSwap(false, true) {
		panic("enginetest: concurrent access to non-reentrant engine")
	}
	return func() { s.busy.Store(false) }
}

// Connect implements engine.Engine.
func (s *Simulator) Connect(endpointURL string) error {
	defer s.enter()()
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = endpointURL
	s.connected = true
	s.disconnected = false
	return nil
}

// Disconnect implements engine.Engine. Completions still pending are dropped,
// which the engine contract permits ("or never").
func (s *Simulator) Disconnect() error {
	defer s.enter()()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	s.disconnected = true
	s.pending = nil
	return nil
}

// Iterate implements engine.Engine. It drains the queued completions,
// invoking their callbacks synchronously before returning.
func (s *Simulator) Iterate(timeout time.Duration) ua.StatusCode {
	defer s.enter()()

	s.mu.Lock()
	delay := s.iterateDelay
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	_ = timeout

	s.mu.Lock()
	if s.disconnected {
		s.mu.Unlock()
		return ua.StatusBadDisconnect
	}
	if !s.connected {
		s.mu.Unlock()
		return ua.StatusBadServerNotConnected
	}
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	// Callbacks run without the state lock held: a callback may re-enter the
	// simulator's test accessors, never its engine entry points.
	for _, call := range due {
		call.cb(call.resp)
	}
	return ua.StatusGood
}

// SendAsync implements engine.Engine. The response is computed immediately
// from the address space, but the callback is only queued: it fires from a
// later Iterate, never from this call.
func (s *Simulator) SendAsync(req ua.Request, cb engine.ResponseCallback) ua.StatusCode {
	defer s.enter()()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.injectSendStatus != nil {
		status := *s.injectSendStatus
		s.injectSendStatus = nil
		return status
	}
	if !s.connected {
		return ua.StatusBadServerNotConnected
	}

	resp := s.handle(req)

	if s.injectServiceResult != nil {
		resp = overrideServiceResult(resp, *s.injectServiceResult)
		s.injectServiceResult = nil
	}

	s.pending = append(s.pending, pendingCall{cb: cb, resp: resp})
	return ua.StatusGood
}

// State implements engine.Engine.
func (s *Simulator) State() ua.ClientState {
	defer s.enter()()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return ua.ClientState{
			Channel:       ua.ChannelOpen,
			Session:       ua.SessionActivated,
			ConnectStatus: ua.StatusGood,
		}
	}
	state := ua.ClientState{Channel: ua.ChannelClosed, Session: ua.SessionClosed}
	if s.disconnected {
		state.ConnectStatus = ua.StatusBadDisconnect
	}
	return state
}

// handle builds the response for one request. Callers hold s.mu.
func (s *Simulator) handle(req ua.Request) ua.Response {
	header := ua.ResponseHeader{ServiceResult: ua.StatusGood, Timestamp: time.Now()}

	switch r := req.(type) {
	case *ua.ReadRequest:
		results := make([]ua.DataValue, len(r.NodesToRead))
		for i, target := range r.NodesToRead {
			results[i] = s.readAttribute(target)
		}
		return &ua.ReadResponse{Header: header, Results: results}

	case *ua.WriteRequest:
		results := make([]ua.StatusCode, len(r.NodesToWrite))
		for i, target := range r.NodesToWrite {
			results[i] = s.writeAttribute(target)
		}
		return &ua.WriteResponse{Header: header, Results: results}

	case *ua.CallRequest:
		results := make([]ua.CallMethodResult, len(r.MethodsToCall))
		for i, call := range r.MethodsToCall {
			results[i] = s.callMethod(call)
		}
		return &ua.CallResponse{Header: header, Results: results}

	case *ua.BrowseRequest:
		results := make([]ua.BrowseResult, len(r.NodesToBrowse))
		for i, target := range r.NodesToBrowse {
			if s.injectBrowseStatus != nil {
				results[i] = ua.BrowseResult{StatusCode: *s.injectBrowseStatus}
				continue
			}
			results[i] = s.browse(target.NodeID)
		}
		s.injectBrowseStatus = nil
		return &ua.BrowseResponse{Header: header, Results: results}

	case *ua.BrowseNextRequest:
		results := make([]ua.BrowseResult, len(r.ContinuationPoints))
		for i, cp := range r.ContinuationPoints {
			results[i] = s.browseNext(cp, r.ReleaseContinuationPoints)
		}
		return &ua.BrowseNextResponse{Header: header, Results: results}

	case *ua.CreateSubscriptionRequest:
		s.nextSubID++
		id := ua.SubscriptionID(s.nextSubID)
		s.subscriptions[id] = make(map[ua.MonitoredItemID]ua.NodeID)
		return &ua.CreateSubscriptionResponse{
			Header:                    header,
			SubscriptionID:            id,
			RevisedPublishingInterval: r.RequestedPublishingInterval,
			RevisedLifetimeCount:      r.RequestedLifetimeCount,
			RevisedMaxKeepAliveCount:  r.RequestedMaxKeepAliveCount,
		}

	case *ua.DeleteSubscriptionsRequest:
		s.deleteSubscriptionCalls++
		results := make([]ua.StatusCode, len(r.SubscriptionIDs))
		for i, id := range r.SubscriptionIDs {
			if _, ok := s.subscriptions[id]; ok {
				delete(s.subscriptions, id)
				results[i] = ua.StatusGood
			} else {
				results[i] = ua.StatusBadSubscriptionIDInvalid
			}
		}
		return &ua.DeleteSubscriptionsResponse{Header: header, Results: results}

	case *ua.CreateMonitoredItemsRequest:
		items, ok := s.subscriptions[r.SubscriptionID]
		if !ok {
			header.ServiceResult = ua.StatusBadSubscriptionIDInvalid
			return &ua.CreateMonitoredItemsResponse{Header: header}
		}
		results := make([]ua.MonitoredItemCreateResult, len(r.ItemsToCreate))
		for i, item := range r.ItemsToCreate {
			if _, exists := s.nodes[item.ItemToMonitor.NodeID.String()]; !exists {
				results[i] = ua.MonitoredItemCreateResult{StatusCode: ua.StatusBadNodeIDUnknown}
				continue
			}
			s.nextItemID++
			id := ua.MonitoredItemID(s.nextItemID)
			items[id] = item.ItemToMonitor.NodeID
			results[i] = ua.MonitoredItemCreateResult{
				StatusCode:              ua.StatusGood,
				MonitoredItemID:         id,
				RevisedSamplingInterval: item.SamplingInterval,
				RevisedQueueSize:        item.QueueSize,
			}
		}
		return &ua.CreateMonitoredItemsResponse{Header: header, Results: results}

	case *ua.DeleteMonitoredItemsRequest:
		s.deleteMonitoredItemCalls++
		items, ok := s.subscriptions[r.SubscriptionID]
		if !ok {
			header.ServiceResult = ua.StatusBadSubscriptionIDInvalid
			return &ua.DeleteMonitoredItemsResponse{Header: header}
		}
		results := make([]ua.StatusCode, len(r.MonitoredItemIDs))
		for i, id := range r.MonitoredItemIDs {
			if _, exists := items[id]; exists {
				delete(items, id)
				results[i] = ua.StatusGood
			} else {
				results[i] = ua.StatusBadMonitoredItemIDInvalid
			}
		}
		return &ua.DeleteMonitoredItemsResponse{Header: header, Results: results}

	default:
		header.ServiceResult = ua.StatusBadServiceUnsupported
		return &unsupportedResponse{header: header}
	}
}

func (s *Simulator) readAttribute(target ua.ReadValueID) ua.DataValue {
	n, ok := s.nodes[target.NodeID.String()]
	if !ok {
		return ua.NewDataValueStatus(ua.StatusBadNodeIDUnknown)
	}

	now := time.Now()
	switch target.AttributeID {
	case ua.AttributeIDNodeID:
		return ua.NewDataValue(ua.NewVariant(n.id))
	case ua.AttributeIDNodeClass:
		return ua.NewDataValue(ua.NewVariant(uint32(n.class)))
	case ua.AttributeIDBrowseName:
		return ua.NewDataValue(ua.NewVariant(n.browseName.String()))
	case ua.AttributeIDDisplayName:
		return ua.NewDataValue(ua.NewVariant(n.displayName))
	case ua.AttributeIDValue:
		if n.class != ua.NodeClassVariable {
			return ua.NewDataValueStatus(ua.StatusBadAttributeIDInvalid)
		}
		return ua.NewDataValue(n.value).WithSourceTimestamp(now).WithServerTimestamp(now)
	case ua.AttributeIDDataType:
		if n.class != ua.NodeClassVariable {
			return ua.NewDataValueStatus(ua.StatusBadAttributeIDInvalid)
		}
		return ua.NewDataValue(ua.NewVariant(n.dataType))
	default:
		return ua.NewDataValueStatus(ua.StatusBadAttributeIDInvalid)
	}
}

func (s *Simulator) writeAttribute(target ua.WriteValue) ua.StatusCode {
	n, ok := s.nodes[target.NodeID.String()]
	if !ok {
		return ua.StatusBadNodeIDUnknown
	}
	if target.AttributeID != ua.AttributeIDValue || n.class != ua.NodeClassVariable {
		return ua.StatusBadAttributeIDInvalid
	}
	if !n.writable {
		return ua.StatusBadNotWritable
	}

	value, ok := target.Value.Value()
	if !ok {
		return ua.StatusBadAttributeIDInvalid
	}
	n.value = value
	return ua.StatusGood
}

func (s *Simulator) callMethod(call ua.CallMethodRequest) ua.CallMethodResult {
	if _, ok := s.nodes[call.ObjectID.String()]; !ok {
		return ua.CallMethodResult{StatusCode: ua.StatusBadNodeIDUnknown}
	}
	m, ok := s.nodes[call.MethodID.String()]
	if !ok || m.method == nil {
		return ua.CallMethodResult{StatusCode: ua.StatusBadMethodInvalid}
	}

	outputs, status := m.method(call.InputArguments)
	return ua.CallMethodResult{StatusCode: status, OutputArguments: outputs}
}

func (s *Simulator) browse(nodeID ua.NodeID) ua.BrowseResult {
	n, ok := s.nodes[nodeID.String()]
	if !ok {
		return ua.BrowseResult{StatusCode: ua.StatusBadNodeIDUnknown}
	}

	refs := n.references
	if s.browseLimit <= 0 || len(refs) <= s.browseLimit {
		return ua.BrowseResult{StatusCode: ua.StatusGood, References: refs}
	}

	token := uuid.New()
	s.continuations[token.String()] = continuation{
		nodeKey: nodeID.String(),
		offset:  s.browseLimit,
	}
	return ua.BrowseResult{
		StatusCode:        ua.StatusGood,
		References:        refs[:s.browseLimit],
		ContinuationPoint: ua.NewContinuationPoint(ua.NewByteString(token[:])),
	}
}

func (s *Simulator) browseNext(cp ua.ContinuationPoint, release bool) ua.BrowseResult {
	raw, ok := cp.ByteString().Bytes()
	if !ok || cp.IsAbsent() {
		return ua.BrowseResult{StatusCode: ua.StatusBadContinuationPointInvalid}
	}
	token, err := uuid.FromBytes(raw)
	if err != nil {
		return ua.BrowseResult{StatusCode: ua.StatusBadContinuationPointInvalid}
	}

	state, ok := s.continuations[token.String()]
	if !ok {
		return ua.BrowseResult{StatusCode: ua.StatusBadContinuationPointInvalid}
	}

	if release {
		delete(s.continuations, token.String())
		return ua.BrowseResult{StatusCode: ua.StatusGood}
	}

	refs := s.nodes[state.nodeKey].references
	end := state.offset + s.browseLimit
	if s.browseLimit <= 0 || end >= len(refs) {
		// Final page.
		delete(s.continuations, token.String())
		return ua.BrowseResult{StatusCode: ua.StatusGood, References: refs[state.offset:]}
	}

	s.continuations[token.String()] = continuation{nodeKey: state.nodeKey, offset: end}
	return ua.BrowseResult{
		StatusCode:        ua.StatusGood,
		References:        refs[state.offset:end],
		ContinuationPoint: cp,
	}
}

// overrideServiceResult rewrites the service-level result of a computed
// response, for failure injection.
func overrideServiceResult(resp ua.Response, status ua.StatusCode) ua.Response {
	switch r := resp.(type) {
	case *ua.ReadResponse:
		r.Header.ServiceResult = status
	case *ua.WriteResponse:
		r.Header.ServiceResult = status
	case *ua.CallResponse:
		r.Header.ServiceResult = status
	case *ua.BrowseResponse:
		r.Header.ServiceResult = status
	case *ua.BrowseNextResponse:
		r.Header.ServiceResult = status
	case *ua.CreateSubscriptionResponse:
		r.Header.ServiceResult = status
	case *ua.DeleteSubscriptionsResponse:
		r.Header.ServiceResult = status
	case *ua.CreateMonitoredItemsResponse:
		r.Header.ServiceResult = status
	case *ua.DeleteMonitoredItemsResponse:
		r.Header.ServiceResult = status
	}
	return resp
}

// unsupportedResponse is returned for request types the simulator does not
// implement.
type unsupportedResponse struct {
	header ua.ResponseHeader
}

// ServiceResult implements ua.Response.
func (r *unsupportedResponse) ServiceResult() ua.StatusCode {
	return r.header.ServiceResult
}
