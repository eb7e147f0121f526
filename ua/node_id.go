package ua

import "fmt"

// NodeIDType discriminates the identifier variant held by a NodeID.
type NodeIDType int

// Supported identifier types. GUID and opaque identifiers are not needed by the
// bridge and are omitted.
const (
	NodeIDTypeNumeric NodeIDType = iota
	NodeIDTypeString
)

// NodeID identifies a node in a server's address space. The zero value is the
// null node ID (ns=0;i=0).
type NodeID struct {
	namespaceIndex uint16
	idType         NodeIDType
	numeric        uint32
	str            string
}

// NewNumericNodeID creates a node ID with a numeric identifier.
func NewNumericNodeID(namespaceIndex uint16, numeric uint32) NodeID {
	return NodeID{
		namespaceIndex: namespaceIndex,
		idType:         NodeIDTypeNumeric,
		numeric:        numeric,
	}
}

// NewStringNodeID creates a node ID with a string identifier.
func NewStringNodeID(namespaceIndex uint16, identifier string) NodeID {
	return NodeID{
		namespaceIndex: namespaceIndex,
		idType:         NodeIDTypeString,
		str:            identifier,
	}
}

// NamespaceIndex returns the namespace index.
func (n NodeID) NamespaceIndex() uint16 {
	return n.namespaceIndex
}

// Type returns the identifier type.
func (n NodeID) Type() NodeIDType {
	return n.idType
}

// Numeric returns the numeric identifier and whether the node ID holds one.
func (n NodeID) Numeric() (uint32, bool) {
	if n.idType != NodeIDTypeNumeric {
		return 0, false
	}
	return n.numeric, true
}

// StringID returns the string identifier and whether the node ID holds one.
func (n NodeID) StringID() (string, bool) {
	if n.idType != NodeIDTypeString {
		return "", false
	}
	return n.str, true
}

// IsNull reports whether the node ID is the null node ID.
func (n NodeID) IsNull() bool {
	return n == NodeID{}
}

// String formats the node ID in the standard OPC UA print form, e.g.
// "ns=1;i=1773" or "ns=2;s=Demo.Static".
func (n NodeID) String() string {
	switch n.idType {
	case NodeIDTypeString:
		if n.namespaceIndex == 0 {
			return fmt.Sprintf("s=%s", n.str)
		}
		return fmt.Sprintf("ns=%d;s=%s", n.namespaceIndex, n.str)
	default:
		if n.namespaceIndex == 0 {
			return fmt.Sprintf("i=%d", n.numeric)
		}
		return fmt.Sprintf("ns=%d;i=%d", n.namespaceIndex, n.numeric)
	}
}
