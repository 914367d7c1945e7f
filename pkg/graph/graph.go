package graph

import (
	"errors"
	"slices"

	"github.com/mlindgren/wirecut/pkg/circuit"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.RemoveNode] and the transform
	// package when the referenced node does not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrOrderRegression is returned by [Graph.Validate] when an edge points
	// from a node to one with a smaller order. Order must be non-decreasing
	// along every edge (ties are legal for sibling measurement terms and
	// sink/source pairs).
	ErrOrderRegression = errors.New("edge points backwards in order")

	// ErrWireChainBroken is returned by [Graph.Validate] when some node has
	// two predecessors or two successors on the same wire, breaking the
	// single-chain-per-wire invariant.
	ErrWireChainBroken = errors.New("wire chain has a branch")
)

// NodeKind distinguishes the node variants of a circuit graph.
type NodeKind int

const (
	// KindOperation is a regular circuit operation.
	KindOperation NodeKind = iota
	// KindMeasurement is a terminal readout (or one tensor term of one).
	KindMeasurement
	// KindCut is a wire-cut marker awaiting rewrite.
	KindCut
	// KindSink is the "measure and discard" half of a rewritten cut.
	KindSink
	// KindSource is the "prepare fresh" half of a rewritten cut.
	KindSource
)

// String returns the lowercase name of the kind.
func (k NodeKind) String() string {
	switch k {
	case KindOperation:
		return "operation"
	case KindMeasurement:
		return "measurement"
	case KindCut:
		return "cut"
	case KindSink:
		return "sink"
	case KindSource:
		return "source"
	default:
		return "unknown"
	}
}

// IsBoundary reports whether the kind is one of the two boundary halves
// introduced by cut rewriting.
func (k NodeKind) IsBoundary() bool { return k == KindSink || k == KindSource }

// Node is a vertex of the circuit graph. Identity is the ID, never the
// struct value: two nodes with identical labels, wires, and order are still
// distinct as long as their IDs differ.
//
// The zero value is not usable; ID must be set before adding to a Graph.
type Node struct {
	ID    string         // Unique identifier
	Kind  NodeKind       // Operation, measurement, cut, sink, or source
	Label string         // Display label (gate or observable name)
	Wires []circuit.Wire // Ordered wires the node touches (may be empty for whole-system measurements)
	Order int            // Position in the original sequence; ties are documented degeneracies
}

// Edge is a directed, wire-labeled connection between two nodes.
// Multiple edges between the same node pair (with different wires) are
// legal and preserved.
type Edge struct {
	From string
	To   string
	Wire circuit.Wire
}

// Graph is a directed multigraph over order-tagged nodes with wire-labeled
// edges. Adjacency is keyed by node ID. The zero value is not usable; use
// [New]. Graph is not safe for concurrent use.
type Graph struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]Edge // nodeID -> edges leaving the node
	incoming map[string][]Edge // nodeID -> edges entering the node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]Edge),
		incoming: make(map[string][]Edge),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	return nil
}

// AddEdge adds a directed wire-labeled edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing. AddEdge does not police the chain invariant; use Validate after
// building or rewriting.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e)
	g.incoming[e.To] = append(g.incoming[e.To], e)
	return nil
}

// RemoveNode removes a node and every edge incident to it.
// Returns ErrUnknownNode if the node does not exist. Removal is final:
// callers wanting the node's neighborhood must capture it first.
func (g *Graph) RemoveNode(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return ErrUnknownNode
	}
	delete(g.nodes, id)

	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == id || e.To == id })

	for _, e := range g.outgoing[id] {
		g.incoming[e.To] = slices.DeleteFunc(g.incoming[e.To], func(in Edge) bool { return in.From == id })
	}
	for _, e := range g.incoming[id] {
		g.outgoing[e.From] = slices.DeleteFunc(g.outgoing[e.From], func(out Edge) bool { return out.To == id })
	}
	delete(g.outgoing, id)
	delete(g.incoming, id)
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in the graph. The order is not guaranteed.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// In returns the edges entering the node. The returned slice is a read-only
// view; it must not be modified.
func (g *Graph) In(id string) []Edge { return g.incoming[id] }

// Out returns the edges leaving the node. The returned slice is a read-only
// view; it must not be modified.
func (g *Graph) Out(id string) []Edge { return g.outgoing[id] }

// WirePredecessor returns the ID of the node feeding id on the given wire.
// By the chain invariant there is at most one; ok is false when the node is
// first on that wire.
func (g *Graph) WirePredecessor(id string, w circuit.Wire) (string, bool) {
	for _, e := range g.incoming[id] {
		if e.Wire == w {
			return e.From, true
		}
	}
	return "", false
}

// WireSuccessor returns the ID of the node fed by id on the given wire.
// By the chain invariant there is at most one; ok is false when the node is
// last on that wire.
func (g *Graph) WireSuccessor(id string, w circuit.Wire) (string, bool) {
	for _, e := range g.outgoing[id] {
		if e.Wire == w {
			return e.To, true
		}
	}
	return "", false
}

// NodesOnWire returns every node with an incident edge labeled w, sorted by
// order. Nodes declaring w but connected to nothing (a one-node chain) are
// found via their Wires list.
func (g *Graph) NodesOnWire(w circuit.Wire) []*Node {
	seen := make(map[string]bool)
	var nodes []*Node
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, g.nodes[id])
		}
	}
	for _, e := range g.edges {
		if e.Wire == w {
			add(e.From)
			add(e.To)
		}
	}
	for id, n := range g.nodes {
		if slices.Contains(n.Wires, w) {
			add(id)
		}
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return a.Order - b.Order })
	return nodes
}

// CutNodes returns all wire-cut marker nodes currently in the graph.
// The order is not guaranteed.
func (g *Graph) CutNodes() []*Node {
	var cuts []*Node
	for _, n := range g.nodes {
		if n.Kind == KindCut {
			cuts = append(cuts, n)
		}
	}
	return cuts
}

// Wires returns every wire appearing on an edge or a node's wire list.
// The order is not guaranteed.
func (g *Graph) Wires() []circuit.Wire {
	seen := make(map[circuit.Wire]bool)
	var wires []circuit.Wire
	for _, n := range g.nodes {
		for _, w := range n.Wires {
			if !seen[w] {
				seen[w] = true
				wires = append(wires, w)
			}
		}
	}
	for _, e := range g.edges {
		if !seen[e.Wire] {
			seen[e.Wire] = true
			wires = append(wires, e.Wire)
		}
	}
	return wires
}

// Validate checks graph integrity and returns nil if valid.
// It verifies two constraints:
//
//  1. Order is non-decreasing along every edge.
//  2. Per wire, no node has more than one incoming or more than one
//     outgoing edge labeled with that wire (the chain invariant).
//
// Returns ErrOrderRegression or ErrWireChainBroken respectively. Validate
// does not repair anything; a failing graph indicates a caller bug.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		src, okS := g.nodes[e.From]
		dst, okD := g.nodes[e.To]
		if !okS || !okD {
			return ErrUnknownNode
		}
		if dst.Order < src.Order {
			return ErrOrderRegression
		}
	}

	type slot struct {
		id   string
		wire circuit.Wire
	}
	in := make(map[slot]int)
	out := make(map[slot]int)
	for _, e := range g.edges {
		out[slot{e.From, e.Wire}]++
		in[slot{e.To, e.Wire}]++
	}
	for _, count := range in {
		if count > 1 {
			return ErrWireChainBroken
		}
	}
	for _, count := range out {
		if count > 1 {
			return ErrWireChainBroken
		}
	}
	return nil
}
