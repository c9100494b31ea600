package graph

// =============================================================================
// Closed Enumerations - Single Source of Truth
// =============================================================================

// Type classifies a graph.
type Type string

// Graph types.
const (
	TypeCode     Type = "code"     // class/function structure graph
	TypeWorkflow Type = "workflow" // workflow/state graph
)

// ValidType reports whether t is a recognized graph type.
func ValidType(t Type) bool {
	return t == TypeCode || t == TypeWorkflow
}

// NodeType classifies a node within a graph.
type NodeType string

// Node types.
const (
	NodeClass        NodeType = "class"
	NodeFunction     NodeType = "function"
	NodeMember       NodeType = "member"
	NodeProperty     NodeType = "property"
	NodeVariable     NodeType = "variable"
	NodeConstant     NodeType = "constant"
	NodeEvent        NodeType = "event"
	NodeEventHandler NodeType = "eventhandler"
	NodeState        NodeType = "state"
)

// NodeTypes lists every recognized node type, in declaration order.
// Used for validation and for error messages enumerating the choices.
var NodeTypes = []NodeType{
	NodeClass,
	NodeFunction,
	NodeMember,
	NodeProperty,
	NodeVariable,
	NodeConstant,
	NodeEvent,
	NodeEventHandler,
	NodeState,
}

// ValidNodeType reports whether t is a recognized node type.
func ValidNodeType(t NodeType) bool {
	for _, v := range NodeTypes {
		if t == v {
			return true
		}
	}
	return false
}

// EdgeType classifies an edge within a graph.
type EdgeType string

// Edge types.
const (
	EdgeNormal     EdgeType = "normal"     // general relationship
	EdgeTransition EdgeType = "transition" // state transition
)

// EdgeTypeDefault is used when a data annotation omits the edge type.
const EdgeTypeDefault = EdgeNormal

// ValidEdgeType reports whether t is a recognized edge type.
func ValidEdgeType(t EdgeType) bool {
	return t == EdgeNormal || t == EdgeTransition
}

// =============================================================================
// Node and Edge
// =============================================================================

// Node is a single vertex in a graph. Nodes are created by node-data
// annotations and are immutable after creation except for the id, which is
// assigned sequentially by the owning graph.
type Node struct {
	ID    string   // assigned id, "n01", "n02", ... scoped to the graph
	Name  string   // cross-reference key used by edges
	Type  NodeType // one of the closed node type enumeration
	Group string   // optional cluster name, empty for ungrouped nodes
}

// Edge is a directed edge between two nodes, referenced by name.
// FromID and ToID start empty and are filled exactly once by Resolve;
// an endpoint whose name was never defined keeps an empty id.
type Edge struct {
	FromName string
	ToName   string
	Label    string
	Type     EdgeType
	FromID   string
	ToID     string
}

// Resolved reports whether both endpoints were bound to node ids.
func (e *Edge) Resolved() bool {
	return e.FromID != "" && e.ToID != ""
}
