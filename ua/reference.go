package ua

import "fmt"

// QualifiedName is a name qualified by a namespace index.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// String formats the qualified name in the standard "ns:name" print form.
func (q QualifiedName) String() string {
	if q.NamespaceIndex == 0 {
		return q.Name
	}
	return fmt.Sprintf("%d:%s", q.NamespaceIndex, q.Name)
}

// ReferenceDescription describes one reference found while browsing a node.
type ReferenceDescription struct {
	NodeID          NodeID
	ReferenceTypeID NodeID
	IsForward       bool
	BrowseName      QualifiedName
	DisplayName     string
	NodeClass       NodeClass
	TypeDefinition  NodeID
}

// SubscriptionID is a server-assigned subscription identifier.
type SubscriptionID uint32

// MonitoredItemID is a server-assigned monitored-item identifier, scoped under
// a subscription.
type MonitoredItemID uint32
