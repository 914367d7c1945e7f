package graph

import (
	"github.com/google/uuid"

	"github.com/mlindgren/wirecut/pkg/circuit"
)

// FromCircuit converts a sequential circuit into its dependency graph.
//
// Operations become nodes ordered by their position in the sequence.
// For each wire, an edge connects every node to the next node touching that
// wire, so the graph exposes true per-wire data flow rather than textual
// order. Measurements continue the order counter after the last operation.
//
// A measurement whose observable is a tensor of single-wire terms is split
// into one node per term, all sharing a single order index: the terms
// happened logically together and downstream consumers must not rely on
// edge ordering between siblings. A measurement with no observable terms
// (a whole-system probability or state readout) becomes a node touching no
// wires and participates in no wire chain.
func FromCircuit(c *circuit.Circuit) *Graph {
	g := New()
	latest := make(map[circuit.Wire]string, len(c.Operations))

	order := 0
	for _, op := range c.Operations {
		kind := KindOperation
		if op.Cut {
			kind = KindCut
		}
		link(g, Node{
			ID:    op.ID,
			Kind:  kind,
			Label: op.Gate,
			Wires: op.Wires,
			Order: order,
		}, latest)
		order++
	}

	for _, m := range c.Measurements {
		if m.IsTensor() {
			// Sibling terms share one order index and independent node
			// identities; the tensor branch does not advance the counter.
			for _, obs := range m.Obs {
				link(g, Node{
					ID:    uuid.NewString(),
					Kind:  KindMeasurement,
					Label: measurementLabel(m.Type, obs.Name),
					Wires: []circuit.Wire{obs.Wire},
					Order: order,
				}, latest)
			}
		} else {
			label := string(m.Type)
			if len(m.Obs) == 1 {
				label = measurementLabel(m.Type, m.Obs[0].Name)
			}
			link(g, Node{
				ID:    m.ID,
				Kind:  KindMeasurement,
				Label: label,
				Wires: m.Wires(),
				Order: order,
			}, latest)
			order++
		}
	}

	return g
}

// link adds the node and wires it against the latest node on each of its
// wires, then advances the latest pointers. Errors are impossible here:
// node IDs are fresh and edge endpoints were just added.
func link(g *Graph, n Node, latest map[circuit.Wire]string) {
	if err := g.AddNode(n); err != nil {
		panic(err)
	}
	for _, w := range n.Wires {
		if prev, ok := latest[w]; ok {
			if err := g.AddEdge(Edge{From: prev, To: n.ID, Wire: w}); err != nil {
				panic(err)
			}
		}
		latest[w] = n.ID
	}
}

func measurementLabel(t circuit.MeasurementType, obs string) string {
	return string(t) + "(" + obs + ")"
}
