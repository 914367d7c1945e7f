package render

import (
	"strings"
	"testing"

	"github.com/mlindgren/wirecut/pkg/circuit"
	"github.com/mlindgren/wirecut/pkg/graph"
	"github.com/mlindgren/wirecut/pkg/graph/transform"
)

func cutCircuitGraph(t *testing.T) *graph.Graph {
	t.Helper()
	c := &circuit.Circuit{
		Operations: []circuit.Op{
			circuit.NewOp("H", []circuit.Wire{"0"}),
			circuit.NewCut("0"),
			circuit.NewOp("X", []circuit.Wire{"0"}),
		},
		Measurements: []circuit.Measurement{
			circuit.NewMeasurement(circuit.Expval, circuit.Observable{Name: "PauliZ", Wire: "0"}),
		},
	}
	return graph.FromCircuit(c)
}

func TestToDOT_Structure(t *testing.T) {
	g := cutCircuitGraph(t)

	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "digraph circuit {") {
		t.Errorf("ToDOT() does not start a digraph: %q", dot[:30])
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() missing rankdir=LR")
	}
	for _, want := range []string{`label="H"`, `label="WireCut"`, `label="X"`, `label="expval(PauliZ)"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s", want)
		}
	}
	// Three edges on wire 0.
	if got := strings.Count(dot, `[label="0"]`); got != 3 {
		t.Errorf("ToDOT() has %d wire-0 edges, want 3", got)
	}
}

func TestToDOT_CutMarkerStyling(t *testing.T) {
	g := cutCircuitGraph(t)

	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, "fillcolor=mistyrose") {
		t.Error("ToDOT() cut marker not styled")
	}
	if strings.Contains(dot, "fillcolor=lightgrey") {
		t.Error("ToDOT() has boundary styling before rewrite")
	}
}

func TestToDOT_BoundaryStyling(t *testing.T) {
	g := cutCircuitGraph(t)
	if err := transform.ReplaceAllCuts(g); err != nil {
		t.Fatalf("ReplaceAllCuts() error = %v", err)
	}

	dot := ToDOT(g, Options{})

	if got := strings.Count(dot, "fillcolor=lightgrey"); got != 2 {
		t.Errorf("ToDOT() has %d boundary nodes, want 2", got)
	}
	if strings.Contains(dot, "fillcolor=mistyrose") {
		t.Error("ToDOT() still styles a cut marker after rewrite")
	}
	for _, want := range []string{`label="measure"`, `label="prepare"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s", want)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := cutCircuitGraph(t)

	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, "order: 0") {
		t.Error("ToDOT(detailed) missing order annotation")
	}
	if !strings.Contains(dot, "wires: 0") {
		t.Error("ToDOT(detailed) missing wires annotation")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	g := cutCircuitGraph(t)

	a := ToDOT(g, Options{})
	b := ToDOT(g, Options{})

	if a != b {
		t.Error("ToDOT() output differs between calls on the same graph")
	}
}
