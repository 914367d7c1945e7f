package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlindgren/wirecut/pkg/graph/transform"
	"github.com/mlindgren/wirecut/pkg/graphio"
	"github.com/mlindgren/wirecut/pkg/pipeline"
)

// buildCommand creates the build command for constructing dependency graphs.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "build [manifest.toml]",
		Short: "Build a dependency graph from a circuit manifest",
		Long: `Build a dependency graph from a circuit manifest.

The build command parses a TOML circuit manifest, constructs the wire
dependency graph (one node per operation and measurement, one edge per
wire handoff), and writes it as a JSON snapshot.

Wire-cut markers are kept as ordinary nodes; use 'cut' to replace them
with measure/prepare boundary pairs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], output, validate, false)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <manifest>.json)")
	cmd.Flags().BoolVar(&validate, "validate", false, "check graph invariants after building")

	return cmd
}

// cutCommand creates the cut command, which rewrites wire-cut markers.
// It accepts either a manifest (build then cut) or a saved JSON snapshot.
func (c *CLI) cutCommand() *cobra.Command {
	var (
		output   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "cut [manifest.toml|graph.json]",
		Short: "Replace every wire-cut marker in a graph",
		Long: `Replace every wire-cut marker in a graph.

Each wire-cut marker node is removed and replaced, per wire it acts on,
with a measure node (end of the upstream fragment) and a prepare node
(start of the downstream fragment) joined by an edge. Neighbors of the
marker are reconnected to the boundary pair on their wire.

A .toml input is built first; a .json input (produced by 'build') is
rewritten directly. The rewritten graph is written as a JSON snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.HasSuffix(args[0], ".json") {
				return c.runCutSnapshot(args[0], output, validate)
			}
			return c.runBuild(cmd.Context(), args[0], output, validate, true)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <input>-cut.json)")
	cmd.Flags().BoolVar(&validate, "validate", false, "check graph invariants after cutting")

	return cmd
}

// runCutSnapshot rewrites the markers of a saved graph snapshot.
func (c *CLI) runCutSnapshot(input, output string, validate bool) error {
	g, err := graphio.ReadGraphFile(input)
	if err != nil {
		return err
	}

	markers := len(g.CutNodes())
	if err := transform.ReplaceAllCuts(g); err != nil {
		return err
	}
	if validate {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("validate rewritten graph: %w", err)
		}
	}

	printSuccess("Replaced %d cut markers", markers)
	printStats(g.NodeCount(), g.EdgeCount(), 0)

	path := output
	if path == "" {
		path = basePath("", input) + "-cut.json"
	}
	if err := graphio.WriteGraphFile(g, path); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// runBuild executes the build (and optionally cut) stages and writes the
// JSON snapshot.
func (c *CLI) runBuild(ctx context.Context, input, output string, validate, cut bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	opts := pipeline.Options{
		ManifestPath: input,
		Cut:          cut,
		Validate:     validate,
		Formats:      []string{pipeline.FormatJSON},
		Logger:       c.Logger,
	}

	verb := "Building"
	if cut {
		verb = "Cutting"
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("%s %s...", verb, input))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if cut {
		printSuccess("Replaced %d cut markers in %s", result.Stats.CutCount, result.Circuit.Name)
	} else {
		printSuccess("Built graph for %s", result.Circuit.Name)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Circuit.CutCount())

	base := basePath(output, input)
	if err := writeArtifacts(result.Artifacts, opts.Formats, base); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Processed %s", input))

	if !cut && result.Circuit.CutCount() > 0 {
		printNextStep("Replace the cut markers", fmt.Sprintf("wirecut cut %s", input))
	}
	printNextStep("Render the graph", fmt.Sprintf("wirecut render %s", input))

	return nil
}
