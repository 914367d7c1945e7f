package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlindgren/wirecut/pkg/circuit"
	"github.com/mlindgren/wirecut/pkg/graph"
	"github.com/mlindgren/wirecut/pkg/graph/transform"
	"github.com/mlindgren/wirecut/pkg/graphio"
	"github.com/mlindgren/wirecut/pkg/render"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Circuit is the parsed circuit description.
	Circuit *circuit.Circuit

	// Graph is the dependency graph (after cutting, if requested).
	Graph *graph.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	CutCount   int // Markers replaced by the cut stage
	BuildTime  time.Duration
	CutTime    time.Duration
	RenderTime time.Duration
}

// Execute runs the complete build → cut → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	c, g, err := r.Build(opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Circuit = c
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built circuit graph",
		"circuit", c.Name,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cuts", c.CutCount(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Cut
	if opts.Cut {
		cutStart := time.Now()
		replaced, err := r.Cut(g, opts)
		if err != nil {
			return nil, fmt.Errorf("cut: %w", err)
		}
		result.Stats.CutCount = replaced
		result.Stats.CutTime = time.Since(cutStart)

		opts.Logger.Info("replaced cut markers",
			"markers", replaced,
			"nodes", g.NodeCount(),
			"edges", g.EdgeCount(),
			"duration", result.Stats.CutTime)
	}

	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build parses the manifest and constructs the dependency graph.
func (r *Runner) Build(opts Options) (*circuit.Circuit, *graph.Graph, error) {
	var c *circuit.Circuit
	var err error
	if opts.ManifestPath != "" {
		c, err = circuit.ReadManifestFile(opts.ManifestPath)
	} else {
		c, err = circuit.ParseManifest(opts.Manifest)
	}
	if err != nil {
		return nil, nil, err
	}

	g := graph.FromCircuit(c)
	if opts.Validate {
		if err := g.Validate(); err != nil {
			return nil, nil, fmt.Errorf("validate built graph: %w", err)
		}
	}
	return c, g, nil
}

// Cut replaces every wire-cut marker in the graph and returns the number of
// markers replaced. The graph is mutated in place.
func (r *Runner) Cut(g *graph.Graph, opts Options) (int, error) {
	markers := len(g.CutNodes())
	if err := transform.ReplaceAllCuts(g); err != nil {
		return 0, err
	}
	if opts.Validate {
		if err := g.Validate(); err != nil {
			return 0, fmt.Errorf("validate rewritten graph: %w", err)
		}
	}
	return markers, nil
}

// Render generates the requested artifact formats from the graph.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	renderOpts := render.Options{Detailed: opts.Detailed}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := graphio.MarshalGraph(g)
			if err != nil {
				return nil, fmt.Errorf("marshal graph: %w", err)
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(render.ToDOT(g, renderOpts))
		case FormatSVG:
			svg, err := render.SVG(ctx, render.ToDOT(g, renderOpts))
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg
		default:
			return nil, ValidateFormat(format)
		}
	}

	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
