package ua

import "time"

// Request is implemented by all service request payloads that can be handed to
// the protocol engine's asynchronous send primitive.
type Request interface {
	isRequest()
}

// Response is implemented by all service response payloads. The service result
// is the top-level status of the whole call; per-target results live in the
// concrete response's Results list, which the protocol guarantees to have the
// same length as the request's target list.
type Response interface {
	ServiceResult() StatusCode
}

// ResponseHeader is common to all service responses.
type ResponseHeader struct {
	ServiceResult StatusCode
	Timestamp     time.Time
}

// ReadValueID selects one attribute of one node to read.
type ReadValueID struct {
	NodeID      NodeID
	AttributeID AttributeID
}

// ReadRequest reads one or more node attributes.
type ReadRequest struct {
	NodesToRead []ReadValueID
}

func (*ReadRequest) isRequest() {}

// ReadResponse carries one DataValue per requested attribute, in request
// order.
type ReadResponse struct {
	Header  ResponseHeader
	Results []DataValue
}

// ServiceResult returns the top-level status of the read call.
func (r *ReadResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }

// WriteValue selects one attribute of one node and the value to write to it.
type WriteValue struct {
	NodeID      NodeID
	AttributeID AttributeID
	Value       DataValue
}

// WriteRequest writes one or more node attributes.
type WriteRequest struct {
	NodesToWrite []WriteValue
}

func (*WriteRequest) isRequest() {}

// WriteResponse carries one status code per written attribute, in request
// order.
type WriteResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

// ServiceResult returns the top-level status of the write call.
func (r *WriteResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }

// CallMethodRequest selects one method on one object and its input arguments.
type CallMethodRequest struct {
	ObjectID       NodeID
	MethodID       NodeID
	InputArguments []Variant
}

// CallRequest calls one or more methods.
type CallRequest struct {
	MethodsToCall []CallMethodRequest
}

func (*CallRequest) isRequest() {}

// CallMethodResult is the per-method outcome of a call. OutputArguments is nil
// for a void method; a non-nil empty slice means the method returned an empty
// argument list. The distinction is deliberate and preserved.
type CallMethodResult struct {
	StatusCode      StatusCode
	OutputArguments []Variant
}

// CallResponse carries one result per called method, in request order.
type CallResponse struct {
	Header  ResponseHeader
	Results []CallMethodResult
}

// ServiceResult returns the top-level status of the call.
func (r *CallResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }

// BrowseDescription selects one node to browse.
type BrowseDescription struct {
	NodeID NodeID
}

// BrowseRequest browses one or more nodes. RequestedMaxReferencesPerNode of
// zero lets the server pick its own batch limit.
type BrowseRequest struct {
	NodesToBrowse                 []BrowseDescription
	RequestedMaxReferencesPerNode uint32
}

func (*BrowseRequest) isRequest() {}

// BrowseResult is the per-node outcome of a browse. A non-absent
// ContinuationPoint signals that more references remain server-side.
type BrowseResult struct {
	StatusCode        StatusCode
	ContinuationPoint ContinuationPoint
	References        []ReferenceDescription
}

// BrowseResponse carries one result per browsed node, in request order.
type BrowseResponse struct {
	Header  ResponseHeader
	Results []BrowseResult
}

// ServiceResult returns the top-level status of the browse call.
func (r *BrowseResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }

// BrowseNextRequest retrieves further references for earlier browse results.
// With ReleaseContinuationPoints set the server frees the continuation points
// without returning further references.
type BrowseNextRequest struct {
	ContinuationPoints        []ContinuationPoint
	ReleaseContinuationPoints bool
}

func (*BrowseNextRequest) isRequest() {}

// BrowseNextResponse carries one result per continuation point, in request
// order.
type BrowseNextResponse struct {
	Header  ResponseHeader
	Results []BrowseResult
}

// ServiceResult returns the top-level status of the browse-next call.
func (r *BrowseNextResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }

// CreateSubscriptionRequest creates a server-side subscription.
type CreateSubscriptionRequest struct {
	RequestedPublishingInterval time.Duration
	RequestedLifetimeCount      uint32
	RequestedMaxKeepAliveCount  uint32
	PublishingEnabled           bool
}

func (*CreateSubscriptionRequest) isRequest() {}

// DefaultCreateSubscriptionRequest returns a request with the default
// publishing parameters used by the protocol engine.
func DefaultCreateSubscriptionRequest() *CreateSubscriptionRequest {
	return &CreateSubscriptionRequest{
		RequestedPublishingInterval: 500 * time.Millisecond,
		RequestedLifetimeCount:      10000,
		RequestedMaxKeepAliveCount:  10,
		PublishingEnabled:           true,
	}
}

// CreateSubscriptionResponse carries the server-assigned subscription
// identifier and the revised publishing parameters.
type CreateSubscriptionResponse struct {
	Header                    ResponseHeader
	SubscriptionID            SubscriptionID
	RevisedPublishingInterval time.Duration
	RevisedLifetimeCount      uint32
	RevisedMaxKeepAliveCount  uint32
}

// ServiceResult returns the top-level status of the create-subscription call.
func (r *CreateSubscriptionResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }

// DeleteSubscriptionsRequest deletes one or more subscriptions.
type DeleteSubscriptionsRequest struct {
	SubscriptionIDs []SubscriptionID
}

func (*DeleteSubscriptionsRequest) isRequest() {}

// DeleteSubscriptionsResponse carries one status per deleted subscription, in
// request order.
type DeleteSubscriptionsResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

// ServiceResult returns the top-level status of the delete call.
func (r *DeleteSubscriptionsResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }

// MonitoredItemCreateRequest selects one node attribute to monitor.
type MonitoredItemCreateRequest struct {
	ItemToMonitor    ReadValueID
	SamplingInterval time.Duration
	QueueSize        uint32
}

// CreateMonitoredItemsRequest creates monitored items under a subscription.
type CreateMonitoredItemsRequest struct {
	SubscriptionID SubscriptionID
	ItemsToCreate  []MonitoredItemCreateRequest
}

func (*CreateMonitoredItemsRequest) isRequest() {}

// MonitoredItemCreateResult is the per-item outcome of a create-monitored-items
// call.
type MonitoredItemCreateResult struct {
	StatusCode              StatusCode
	MonitoredItemID         MonitoredItemID
	RevisedSamplingInterval time.Duration
	RevisedQueueSize        uint32
}

// CreateMonitoredItemsResponse carries one result per created item, in request
// order.
type CreateMonitoredItemsResponse struct {
	Header  ResponseHeader
	Results []MonitoredItemCreateResult
}

// ServiceResult returns the top-level status of the create call.
func (r *CreateMonitoredItemsResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }

// DeleteMonitoredItemsRequest deletes monitored items under a subscription.
type DeleteMonitoredItemsRequest struct {
	SubscriptionID   SubscriptionID
	MonitoredItemIDs []MonitoredItemID
}

func (*DeleteMonitoredItemsRequest) isRequest() {}

// DeleteMonitoredItemsResponse carries one status per deleted item, in request
// order.
type DeleteMonitoredItemsResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

// ServiceResult returns the top-level status of the delete call.
func (r *DeleteMonitoredItemsResponse) ServiceResult() StatusCode { return r.Header.ServiceResult }
