package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlindgren/wirecut/pkg/graphio"
)

// inspectCommand creates the inspect command for browsing graph snapshots.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Browse a graph snapshot interactively",
		Long: `Browse a graph snapshot interactively.

The inspect command loads a JSON graph snapshot (produced by 'build' or
'cut') and opens an interactive node browser. Selecting a node shows its
incoming and outgoing wire edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}

	return cmd
}

// runInspect loads the snapshot and starts the TUI.
func (c *CLI) runInspect(input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	snapshot, err := graphio.UnmarshalGraph(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	if len(snapshot.Nodes) == 0 {
		printWarning("Graph %s has no nodes", input)
		return nil
	}

	model := NewNodeListModel(snapshot)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}
