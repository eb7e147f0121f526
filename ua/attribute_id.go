package ua

import "fmt"

// AttributeID identifies a node attribute as defined in OPC 10000-3.
type AttributeID uint32

// Attribute identifiers.
const (
	AttributeIDNodeID          AttributeID = 1
	AttributeIDNodeClass       AttributeID = 2
	AttributeIDBrowseName      AttributeID = 3
	AttributeIDDisplayName     AttributeID = 4
	AttributeIDDescription     AttributeID = 5
	AttributeIDWriteMask       AttributeID = 6
	AttributeIDUserWriteMask   AttributeID = 7
	AttributeIDValue           AttributeID = 13
	AttributeIDDataType        AttributeID = 14
	AttributeIDValueRank       AttributeID = 15
	AttributeIDArrayDimensions AttributeID = 16
	AttributeIDAccessLevel     AttributeID = 17
	AttributeIDUserAccessLevel AttributeID = 18
)

var attributeNames = map[AttributeID]string{
	AttributeIDNodeID:          "NodeId",
	AttributeIDNodeClass:       "NodeClass",
	AttributeIDBrowseName:      "BrowseName",
	AttributeIDDisplayName:     "DisplayName",
	AttributeIDDescription:     "Description",
	AttributeIDWriteMask:       "WriteMask",
	AttributeIDUserWriteMask:   "UserWriteMask",
	AttributeIDValue:           "Value",
	AttributeIDDataType:        "DataType",
	AttributeIDValueRank:       "ValueRank",
	AttributeIDArrayDimensions: "ArrayDimensions",
	AttributeIDAccessLevel:     "AccessLevel",
	AttributeIDUserAccessLevel: "UserAccessLevel",
}

// String returns the attribute name, or the numeric value for unknown IDs.
func (a AttributeID) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AttributeId(%d)", uint32(a))
}

// NodeClass categorizes a node in the address space.
type NodeClass uint32

// Node classes.
const (
	NodeClassUnspecified   NodeClass = 0
	NodeClassObject        NodeClass = 1
	NodeClassVariable      NodeClass = 2
	NodeClassMethod        NodeClass = 4
	NodeClassObjectType    NodeClass = 8
	NodeClassVariableType  NodeClass = 16
	NodeClassReferenceType NodeClass = 32
	NodeClassDataType      NodeClass = 64
	NodeClassView          NodeClass = 128
)

// String returns the node class name.
func (c NodeClass) String() string {
	switch c {
	case NodeClassObject:
		return "Object"
	case NodeClassVariable:
		return "Variable"
	case NodeClassMethod:
		return "Method"
	case NodeClassObjectType:
		return "ObjectType"
	case NodeClassVariableType:
		return "VariableType"
	case NodeClassReferenceType:
		return "ReferenceType"
	case NodeClassDataType:
		return "DataType"
	case NodeClassView:
		return "View"
	default:
		return "Unspecified"
	}
}
