package graphio

import (
	"encoding/json"
	"slices"

	"github.com/mlindgren/wirecut/pkg/circuit"
	"github.com/mlindgren/wirecut/pkg/errors"
	"github.com/mlindgren/wirecut/pkg/graph"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node kind strings used in the serialized format.
const (
	KindOperation   = "operation"
	KindMeasurement = "measurement"
	KindCut         = "cut"
	KindSink        = "sink"
	KindSource      = "source"
)

// =============================================================================
// Graph - Circuit Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for circuit graphs.
// Used for API responses, storage, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// build → export → re-import produces an equivalent graph.
type Graph struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the serialized node type.
type Node struct {
	ID    string   `json:"id" bson:"id"`
	Kind  string   `json:"kind" bson:"kind"`
	Label string   `json:"label,omitempty" bson:"label,omitempty"`
	Order int      `json:"order" bson:"order"`
	Wires []string `json:"wires,omitempty" bson:"wires,omitempty"`
}

// Edge represents a directed wire-labeled edge.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Wire string `json:"wire" bson:"wire"`
}

// =============================================================================
// Graph ↔ graph.Graph Conversion
// =============================================================================

// FromGraph converts a graph to its serialization format.
// Nodes are sorted by order then ID for deterministic output; edges keep
// insertion order.
func FromGraph(g *graph.Graph) Graph {
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *graph.Node) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(g.Edges())),
	}

	for i, n := range nodes {
		out.Nodes[i] = Node{
			ID:    n.ID,
			Kind:  kindToString(n.Kind),
			Label: n.Label,
			Order: n.Order,
			Wires: wiresToStrings(n.Wires),
		}
	}

	for i, e := range g.Edges() {
		out.Edges[i] = Edge{From: e.From, To: e.To, Wire: string(e.Wire)}
	}

	return out
}

// ToGraph converts a serialized Graph back to a graph.Graph.
// Returns an error for duplicate node IDs, edges referencing missing nodes,
// or unknown kind strings.
func ToGraph(gj Graph) (*graph.Graph, error) {
	g := graph.New()

	for _, nj := range gj.Nodes {
		kind, ok := stringToKind(nj.Kind)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node %s: unknown kind %q", nj.ID, nj.Kind)
		}
		n := graph.Node{
			ID:    nj.ID,
			Kind:  kind,
			Label: nj.Label,
			Order: nj.Order,
			Wires: stringsToWires(nj.Wires),
		}
		if err := g.AddNode(n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "add node %s", nj.ID)
		}
	}

	for _, ej := range gj.Edges {
		e := graph.Edge{From: ej.From, To: ej.To, Wire: circuit.Wire(ej.Wire)}
		if err := g.AddEdge(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "add edge %s→%s", ej.From, ej.To)
		}
	}

	return g, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func wiresToStrings(wires []circuit.Wire) []string {
	if len(wires) == 0 {
		return nil
	}
	out := make([]string, len(wires))
	for i, w := range wires {
		out[i] = string(w)
	}
	return out
}

func stringsToWires(raw []string) []circuit.Wire {
	if len(raw) == 0 {
		return nil
	}
	out := make([]circuit.Wire, len(raw))
	for i, r := range raw {
		out[i] = circuit.Wire(r)
	}
	return out
}

func kindToString(k graph.NodeKind) string {
	switch k {
	case graph.KindMeasurement:
		return KindMeasurement
	case graph.KindCut:
		return KindCut
	case graph.KindSink:
		return KindSink
	case graph.KindSource:
		return KindSource
	default:
		return KindOperation
	}
}

func stringToKind(s string) (graph.NodeKind, bool) {
	switch s {
	case KindOperation, "":
		return graph.KindOperation, true
	case KindMeasurement:
		return graph.KindMeasurement, true
	case KindCut:
		return graph.KindCut, true
	case KindSink:
		return graph.KindSink, true
	case KindSource:
		return graph.KindSource, true
	default:
		return graph.KindOperation, false
	}
}
