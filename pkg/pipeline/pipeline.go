// Package pipeline provides the core build → cut → render pipeline.
//
// This package implements the complete manifest-to-artifact flow shared by
// the CLI and the HTTP API. By centralizing this logic, both entry points
// behave identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Parse a circuit manifest and construct its dependency graph
//  2. Cut: Replace every wire-cut marker with sink/source boundary pairs
//  3. Render: Generate output in various formats (JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Manifest: manifestBytes,
//	    Cut:      true,
//	    Formats:  []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/mlindgren/wirecut/pkg/errors"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options. Exactly one of ManifestPath or Manifest is required.
	ManifestPath string `json:"manifest_path,omitempty"` // Path to a TOML circuit manifest
	Manifest     []byte `json:"manifest,omitempty"`      // Inline TOML manifest bytes

	// Cut replaces every wire-cut marker after building.
	Cut bool `json:"cut,omitempty"`

	// Validate runs graph invariant checks after build and after cut.
	Validate bool `json:"validate,omitempty"`

	// Render options.
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Include order/wires in rendered node labels

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ManifestPath == "" && len(o.Manifest) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "manifest or manifest_path is required")
	}
	if o.ManifestPath != "" && len(o.Manifest) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "manifest and manifest_path are mutually exclusive")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
