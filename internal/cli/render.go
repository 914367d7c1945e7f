package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlindgren/wirecut/pkg/graph/transform"
	"github.com/mlindgren/wirecut/pkg/graphio"
	"github.com/mlindgren/wirecut/pkg/pipeline"
	"github.com/mlindgren/wirecut/pkg/render"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		cut        bool
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "render [manifest.toml|graph.json]",
		Short: "Render a circuit dependency graph as SVG or DOT",
		Long: `Render a circuit dependency graph as SVG or DOT.

The render command builds the graph from a manifest (or loads a saved
JSON snapshot) and generates visual output. Cut markers are drawn as
dashed red nodes; measure/prepare boundary nodes (after --cut) are drawn
in grey.

Use --cut to replace the wire-cut markers before rendering, which shows
the fragment boundaries instead of the markers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, pipeline.FormatSVG)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if strings.HasSuffix(args[0], ".json") {
				return c.runRenderSnapshot(cmd.Context(), args[0], output, formats, cut, detailed)
			}
			return c.runRender(cmd.Context(), args[0], output, formats, cut, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().BoolVar(&cut, "cut", false, "replace wire-cut markers before rendering")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include order and wires in node labels")

	return cmd
}

// runRender builds the graph and writes the rendered artifacts.
func (c *CLI) runRender(ctx context.Context, input, output string, formats []string, cut, detailed bool) error {
	opts := pipeline.Options{
		ManifestPath: input,
		Cut:          cut,
		Formats:      formats,
		Detailed:     detailed,
		Logger:       c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", result.Circuit.Name)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.CutCount)

	return writeArtifacts(result.Artifacts, formats, basePath(output, input))
}

// runRenderSnapshot renders a saved graph snapshot without rebuilding it.
func (c *CLI) runRenderSnapshot(ctx context.Context, input, output string, formats []string, cut, detailed bool) error {
	g, err := graphio.ReadGraphFile(input)
	if err != nil {
		return err
	}
	if cut {
		if err := transform.ReplaceAllCuts(g); err != nil {
			return err
		}
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		switch format {
		case pipeline.FormatJSON:
			data, err := graphio.MarshalGraph(g)
			if err != nil {
				return err
			}
			artifacts[format] = data
		case pipeline.FormatDOT:
			artifacts[format] = []byte(render.ToDOT(g, render.Options{Detailed: detailed}))
		case pipeline.FormatSVG:
			dot := render.ToDOT(g, render.Options{Detailed: detailed})
			svg, err := render.SVG(ctx, dot)
			if err != nil {
				return err
			}
			artifacts[format] = svg
		}
	}

	printSuccess("Rendered %s", input)
	printStats(g.NodeCount(), g.EdgeCount(), len(g.CutNodes()))

	return writeArtifacts(artifacts, formats, basePath(output, input))
}
