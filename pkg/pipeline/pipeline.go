// Package pipeline provides the core visualization pipeline for Suitree.
//
// This package implements the complete decode → layout → render pipeline
// that both the CLI commands and the interactive viewer build on. By
// centralizing this logic, every entry point resolves options, reports
// stage progress and produces artifacts the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read a surrogate tree document (JSON or YAML) into a tree
//  2. Layout: Compute node positions and the edge graph
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:   "model.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Decode only
//	t, err := runner.Decode(ctx, opts)
//
//	// Layout with an existing tree
//	sc, err := runner.Layout(ctx, t, opts)
//
//	// Render with an existing scene
//	artifacts, err := runner.Render(ctx, sc, opts)
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lbrandt/suitree/pkg/edgegraph"
	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/tree"
)

// DefaultScale is the default PNG resolution multiplier.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Engine constants for the rendering engine.
const (
	// EngineNative draws the column layout with the built-in SVG sink.
	EngineNative = "native"
	// EngineGraphviz lets Graphviz lay the tree out instead.
	EngineGraphviz = "graphviz"
)

// ValidEngines is the set of supported rendering engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for batch runs.
type Options struct {
	// Decode options
	Input  string      `json:"input,omitempty"`  // tree document path
	Format tree.Format `json:"format,omitempty"` // inferred from Input when empty

	// Layout options
	Layout   layout.Params    `json:"layout,omitempty"`
	Geometry edgegraph.Params `json:"geometry,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Engine    string   `json:"engine,omitempty"`
	Scale     float64  `json:"scale,omitempty"`     // PNG resolution multiplier
	Detailed  bool     `json:"detailed,omitempty"`  // verbose DOT labels
	Highlight string   `json:"highlight,omitempty"` // pre-lit node or edge id
	Static    bool     `json:"static,omitempty"`    // omit the SVG hover script

	// Runtime options (not serialized)
	Reader io.Reader   `json:"-"` // decode source; takes precedence over Input
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
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

// ValidateEngine checks that a rendering engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return fmt.Errorf("invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks required fields for decoding.
func (o *Options) ValidateForDecode() error {
	if o.Input == "" && o.Reader == nil {
		return fmt.Errorf("input path or reader is required")
	}
	if o.Format == "" {
		o.Format = tree.FormatForPath(o.Input)
	}
	if o.Format != tree.FormatJSON && o.Format != tree.FormatYAML {
		return fmt.Errorf("invalid tree format: %q (must be json or yaml)", o.Format)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateEngine(o.Engine)
}

// IsGraphviz returns true when Graphviz drives the svg/png/pdf formats.
func (o *Options) IsGraphviz() bool {
	return o.Engine == EngineGraphviz
}
