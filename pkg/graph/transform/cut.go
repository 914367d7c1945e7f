package transform

import (
	"slices"

	"github.com/google/uuid"

	"github.com/mlindgren/wirecut/pkg/circuit"
	"github.com/mlindgren/wirecut/pkg/graph"
)

// Labels for the boundary halves of a rewritten cut.
const (
	LabelSink   = "measure"
	LabelSource = "prepare"
)

// ReplaceCut replaces the node with the given ID by one sink/source
// boundary pair per wire the node touches, rewiring its unique per-wire
// predecessor and successor onto the pair:
//
//	before:  A --w--> M --w--> C
//	after:   A --w--> sink --w--> source --w--> C
//
// Both halves inherit the replaced node's order. That tie is a deliberate
// degeneracy: a sink always structurally precedes its paired source, so
// consumers needing a strict order special-case the pair instead of
// trusting order alone. A wire on which the node was first (or last) yields
// a sink with no predecessor edge (or a source with no successor edge); a
// marker isolated on a wire produces a pair dangling on both ends.
//
// Returns [graph.ErrUnknownNode] if the node is not present. The rewrite
// assumes the chain invariant holds on entry and does not validate or roll
// back; partial mutation after an internal failure is final.
func ReplaceCut(g *graph.Graph, id string) error {
	node, ok := g.Node(id)
	if !ok {
		return graph.ErrUnknownNode
	}

	predOnWire := make(map[circuit.Wire]string)
	for _, e := range g.In(id) {
		predOnWire[e.Wire] = e.From
	}
	succOnWire := make(map[circuit.Wire]string)
	for _, e := range g.Out(id) {
		succOnWire[e.Wire] = e.To
	}

	order := node.Order
	wires := slices.Clone(node.Wires)

	if err := g.RemoveNode(id); err != nil {
		return err
	}

	for _, w := range wires {
		sink := graph.Node{
			ID:    uuid.NewString(),
			Kind:  graph.KindSink,
			Label: LabelSink,
			Wires: []circuit.Wire{w},
			Order: order,
		}
		source := graph.Node{
			ID:    uuid.NewString(),
			Kind:  graph.KindSource,
			Label: LabelSource,
			Wires: []circuit.Wire{w},
			Order: order,
		}
		mustAdd(g.AddNode(sink))
		mustAdd(g.AddNode(source))
		mustAdd(g.AddEdge(graph.Edge{From: sink.ID, To: source.ID, Wire: w}))

		if pred, ok := predOnWire[w]; ok {
			mustAdd(g.AddEdge(graph.Edge{From: pred, To: sink.ID, Wire: w}))
		}
		if succ, ok := succOnWire[w]; ok {
			mustAdd(g.AddEdge(graph.Edge{From: source.ID, To: succ, Wire: w}))
		}
	}

	return nil
}

// ReplaceAllCuts applies [ReplaceCut] to every wire-cut marker in the
// graph. The marker set is captured once at entry; boundary nodes are never
// marker-tagged, so the pass terminates after a single sweep. Rewrites of
// distinct markers touch disjoint node neighborhoods and cannot interfere.
// A graph without markers is left untouched.
func ReplaceAllCuts(g *graph.Graph) error {
	for _, n := range g.CutNodes() {
		if err := ReplaceCut(g, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// mustAdd panics on node/edge insertion failures that are impossible when
// the rewrite preconditions hold (fresh IDs, endpoints just added).
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}
