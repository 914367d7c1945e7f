package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/mlindgren/wirecut/pkg/circuit"
	"github.com/mlindgren/wirecut/pkg/graph"
	"github.com/mlindgren/wirecut/pkg/graphio"
)

func TestRunCutSnapshot(t *testing.T) {
	c := &circuit.Circuit{
		Name: "chain",
		Operations: []circuit.Op{
			circuit.NewOp("H", []circuit.Wire{"0"}),
			circuit.NewCut("0"),
			circuit.NewOp("X", []circuit.Wire{"0"}),
		},
	}
	g := graph.FromCircuit(c)

	dir := t.TempDir()
	input := filepath.Join(dir, "chain.json")
	if err := graphio.WriteGraphFile(g, input); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	output := filepath.Join(dir, "chain-cut.json")
	cli := New(io.Discard, LogInfo)
	if err := cli.runCutSnapshot(input, output, true); err != nil {
		t.Fatalf("runCutSnapshot() error = %v", err)
	}

	got, err := graphio.ReadGraphFile(output)
	if err != nil {
		t.Fatalf("read rewritten snapshot: %v", err)
	}
	if n := len(got.CutNodes()); n != 0 {
		t.Errorf("CutNodes() = %d, want 0", n)
	}
	if got.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", got.NodeCount())
	}
}

func TestRunCutSnapshot_MissingFile(t *testing.T) {
	cli := New(io.Discard, LogInfo)
	if err := cli.runCutSnapshot(filepath.Join(t.TempDir(), "nope.json"), "", false); err == nil {
		t.Error("runCutSnapshot() error = nil, want error")
	}
}
