// Package graph holds the graph data model built from annotation input.
//
// A Graph is created exactly once by a definition annotation and mutated
// afterward only by data annotations referencing its id. Nodes and edges
// keep insertion order; groups keep first-seen order independent of node
// order. After all input is consumed, Resolve binds edge endpoint names
// to the sequential node ids, and the renderer walks the model without
// mutating it further.
package graph

import (
	"fmt"

	"github.com/graphtools/graphmark/pkg/errors"
)

// Graph accumulates the nodes and edges for one rendered output artifact.
type Graph struct {
	ID             string
	Type           Type
	Title          string
	Description    string
	FilenameSuffix string

	nodes      []*Node
	edges      []*Edge
	groups     []string         // first-seen order
	groupNodes map[string][]int // group name -> indices into nodes
	nameToID   map[string]string
}

// New creates a graph. Field validation happens at decode time; New only
// builds the containers.
func New(typ Type, id, title, description, filenameSuffix string) *Graph {
	return &Graph{
		ID:             id,
		Type:           typ,
		Title:          title,
		Description:    description,
		FilenameSuffix: filenameSuffix,
		groupNodes:     make(map[string][]int),
		nameToID:       make(map[string]string),
	}
}

// NodeCount returns the number of nodes added so far.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges added so far.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns the nodes in insertion order. The slice is shared; callers
// must not modify it.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the edges in insertion order. The slice is shared; callers
// must not modify it.
func (g *Graph) Edges() []*Edge { return g.edges }

// Groups returns the group names in first-seen order.
func (g *Graph) Groups() []string { return g.groups }

// GroupNodes returns the nodes belonging to the named group, in insertion
// order. Returns nil for an unknown group.
func (g *Graph) GroupNodes(group string) []*Node {
	indices, ok := g.groupNodes[group]
	if !ok {
		return nil
	}
	nodes := make([]*Node, 0, len(indices))
	for _, i := range indices {
		nodes = append(nodes, g.nodes[i])
	}
	return nodes
}

// NodeID looks up the assigned id for a node name.
// If a name was defined more than once, the later definition wins.
func (g *Graph) NodeID(name string) (string, bool) {
	id, ok := g.nameToID[name]
	return id, ok
}

// AddNode appends a node, assigning the next sequential id for this graph.
// Ids are "n" plus a two-digit, zero-padded, 1-based index. If the name was
// already defined, the name-to-id mapping is rebound to the new node.
func (g *Graph) AddNode(name string, typ NodeType, group string) *Node {
	n := &Node{
		ID:    fmt.Sprintf("n%02d", len(g.nodes)+1),
		Name:  name,
		Type:  typ,
		Group: group,
	}
	index := len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.nameToID[name] = n.ID

	if group != "" {
		if _, seen := g.groupNodes[group]; !seen {
			g.groups = append(g.groups, group)
		}
		g.groupNodes[group] = append(g.groupNodes[group], index)
	}

	return n
}

// AddEdge appends an edge with unresolved endpoint ids.
// Endpoints are validated at resolution time, not here.
func (g *Graph) AddEdge(fromName, toName, label string, typ EdgeType) *Edge {
	e := &Edge{
		FromName: fromName,
		ToName:   toName,
		Label:    label,
		Type:     typ,
	}
	g.edges = append(g.edges, e)
	return e
}

// =============================================================================
// Registry
// =============================================================================

// Registry holds every graph defined during a run, indexed by id.
// Iteration order is the order of first definition, so output is
// deterministic across runs.
type Registry struct {
	order []string
	byID  map[string]*Graph
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Graph)}
}

// Define registers g under its id. A graph id defined twice overwrites the
// earlier graph, discarding its accumulated nodes and edges; replaced
// reports whether that happened so the caller can surface a warning.
// The original definition's position in iteration order is kept.
func (r *Registry) Define(g *Graph) (replaced bool) {
	if _, ok := r.byID[g.ID]; !ok {
		r.order = append(r.order, g.ID)
	} else {
		replaced = true
	}
	r.byID[g.ID] = g
	return replaced
}

// Get returns the graph registered under id, or an UNDEFINED_GRAPH error.
func (r *Registry) Get(id string) (*Graph, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeUndefinedGraph,
			"attribute \"graphid\" has an unrecognized or undefined id value %q", id)
	}
	return g, nil
}

// Len returns the number of registered graphs.
func (r *Registry) Len() int { return len(r.byID) }

// Graphs returns every registered graph in definition order.
func (r *Registry) Graphs() []*Graph {
	out := make([]*Graph, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
