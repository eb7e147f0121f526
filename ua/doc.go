// Package ua provides thin value-type wrappers for the OPC UA data types that
// cross the protocol-engine boundary.
//
// # Overview
//
// The wrappers carry no behavior beyond construction, inspection, and
// formatting. Their one non-negotiable job is to preserve the distinctions the
// protocol itself makes:
//
//   - Arrays and byte strings are tri-state: valid-with-data, valid-but-empty,
//     and invalid are three different things. Collapsing "empty" and "invalid"
//     loses information that servers actually report.
//   - Optional fields (a DataValue without a value, a CallMethodResult without
//     output arguments) are represented as absent, not as zero values.
//
// # Service payloads
//
// Request/response pairs for each service (read, write, call, browse,
// browse-next, subscription and monitored-item management) live in service.go.
// Every response carries a ResponseHeader with the service-level result and a
// per-target result list whose length the protocol guarantees to equal the
// request's target list length.
package ua
