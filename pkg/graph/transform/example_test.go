package transform_test

import (
	"fmt"

	"github.com/mlindgren/wirecut/pkg/circuit"
	"github.com/mlindgren/wirecut/pkg/graph"
	"github.com/mlindgren/wirecut/pkg/graph/transform"
)

func ExampleReplaceAllCuts() {
	c := &circuit.Circuit{
		Name: "split",
		Operations: []circuit.Op{
			circuit.NewOp("H", []circuit.Wire{"0"}),
			circuit.NewCut("0"),
			circuit.NewOp("X", []circuit.Wire{"0"}),
		},
		Measurements: []circuit.Measurement{
			circuit.NewMeasurement(circuit.Expval, circuit.Observable{Name: "PauliZ", Wire: "0"}),
		},
	}

	g := graph.FromCircuit(c)
	if err := transform.ReplaceAllCuts(g); err != nil {
		fmt.Println(err)
		return
	}

	// Walk wire 0 from the first node; the marker is gone and a
	// sink/source boundary pair stands in its place.
	id := g.NodesOnWire("0")[0].ID
	for {
		n, _ := g.Node(id)
		fmt.Printf("%s %s\n", n.Kind, n.Label)
		next, ok := g.WireSuccessor(id, "0")
		if !ok {
			break
		}
		id = next
	}
	// Output:
	// operation H
	// sink measure
	// source prepare
	// operation X
	// measurement expval(PauliZ)
}
