package graphio

import (
	"testing"

	"github.com/mlindgren/wirecut/pkg/circuit"
	"github.com/mlindgren/wirecut/pkg/graph"
	"github.com/mlindgren/wirecut/pkg/graph/transform"
)

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	c := &circuit.Circuit{
		Name: "bell",
		Operations: []circuit.Op{
			circuit.NewOp("H", []circuit.Wire{"0"}),
			circuit.NewCut("0"),
			circuit.NewOp("CNOT", []circuit.Wire{"0", "1"}),
		},
		Measurements: []circuit.Measurement{
			circuit.NewMeasurement(circuit.Expval, circuit.Observable{Name: "PauliZ", Wire: "0"}),
		},
	}
	return graph.FromCircuit(c)
}

func TestRoundTrip(t *testing.T) {
	g := buildTestGraph(t)

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}

	gj, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error = %v", err)
	}
	back, err := ToGraph(gj)
	if err != nil {
		t.Fatalf("ToGraph() error = %v", err)
	}

	if back.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount() = %d, want %d", back.NodeCount(), g.NodeCount())
	}
	if back.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount() = %d, want %d", back.EdgeCount(), g.EdgeCount())
	}
	if err := back.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if len(back.CutNodes()) != 1 {
		t.Errorf("round trip lost the cut marker")
	}
}

func TestRoundTrip_AfterCut(t *testing.T) {
	// Boundary kinds survive serialization.
	g := buildTestGraph(t)
	if err := transform.ReplaceAllCuts(g); err != nil {
		t.Fatalf("ReplaceAllCuts() error = %v", err)
	}

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}
	gj, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error = %v", err)
	}

	kinds := map[string]int{}
	for _, n := range gj.Nodes {
		kinds[n.Kind]++
	}
	if kinds[KindSink] != 1 || kinds[KindSource] != 1 {
		t.Errorf("kinds after cut = %v, want one sink and one source", kinds)
	}
}

func TestFromGraph_SortedByOrder(t *testing.T) {
	g := buildTestGraph(t)

	gj := FromGraph(g)

	for i := 1; i < len(gj.Nodes); i++ {
		if gj.Nodes[i].Order < gj.Nodes[i-1].Order {
			t.Errorf("nodes not sorted: order %d before %d", gj.Nodes[i-1].Order, gj.Nodes[i].Order)
		}
	}
}

func TestToGraph_UnknownKind(t *testing.T) {
	gj := Graph{Nodes: []Node{{ID: "a", Kind: "banana"}}}

	if _, err := ToGraph(gj); err == nil {
		t.Error("ToGraph() error = nil, want unknown kind error")
	}
}

func TestToGraph_DanglingEdge(t *testing.T) {
	gj := Graph{
		Nodes: []Node{{ID: "a", Kind: KindOperation}},
		Edges: []Edge{{From: "a", To: "missing", Wire: "0"}},
	}

	if _, err := ToGraph(gj); err == nil {
		t.Error("ToGraph() error = nil, want dangling edge error")
	}
}

func TestToGraph_DuplicateNode(t *testing.T) {
	gj := Graph{
		Nodes: []Node{
			{ID: "a", Kind: KindOperation},
			{ID: "a", Kind: KindOperation},
		},
	}

	if _, err := ToGraph(gj); err == nil {
		t.Error("ToGraph() error = nil, want duplicate node error")
	}
}
