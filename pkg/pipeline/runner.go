package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lbrandt/suitree/pkg/edgegraph"
	"github.com/lbrandt/suitree/pkg/errors"
	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/observability"
	"github.com/lbrandt/suitree/pkg/render"
	"github.com/lbrandt/suitree/pkg/render/dot"
	"github.com/lbrandt/suitree/pkg/render/svg"
	"github.com/lbrandt/suitree/pkg/scene"
	"github.com/lbrandt/suitree/pkg/tree"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the decoded surrogate model.
	Tree *tree.Tree

	// Scene pairs the computed layout with its edge graph.
	Scene *scene.RenderContext

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains sizing and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes      int
	Leaves     int
	MaxDepth   int
	Edges      int
	ScaleEdges int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// Execute runs the complete decode → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Decode
	decodeStart := time.Now()
	t, err := r.Decode(ctx, opts)
	result.Stats.DecodeTime = time.Since(decodeStart)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Tree = t
	result.Stats.Nodes = t.CountNodes()
	result.Stats.Leaves = t.CountLeaves()
	result.Stats.MaxDepth = t.MaxDepth()

	opts.Logger.Info("decoded tree",
		"format", opts.Format,
		"nodes", result.Stats.Nodes,
		"leaves", result.Stats.Leaves,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	sc, err := r.Layout(ctx, t, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = sc
	result.Stats.Edges = sc.Graph().Len()
	for _, e := range sc.Graph().Edges() {
		if e.IsScale() {
			result.Stats.ScaleEdges++
		}
	}

	opts.Logger.Info("computed layout",
		"nodes", result.Stats.Nodes,
		"leaves", result.Stats.Leaves,
		"max_depth", result.Stats.MaxDepth,
		"edges", result.Stats.Edges,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, sc, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"engine", opts.Engine,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode reads the tree document named by the options.
func (r *Runner) Decode(ctx context.Context, opts Options) (*tree.Tree, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnDecodeStart(ctx, string(opts.Format))
	start := time.Now()

	src := opts.Reader
	if src == nil {
		f, err := os.Open(opts.Input)
		if err != nil {
			werr := errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", opts.Input)
			observability.Pipeline().OnDecodeComplete(ctx, string(opts.Format), 0, time.Since(start), werr)
			return nil, werr
		}
		defer f.Close()
		src = f
	}

	t, err := tree.Decode(src, opts.Format)
	nodes := 0
	if t != nil {
		nodes = t.CountNodes()
	}
	observability.Pipeline().OnDecodeComplete(ctx, string(opts.Format), nodes, time.Since(start), err)
	return t, err
}

// Layout computes positions and the edge graph for a decoded tree, paired
// as a scene ready for rendering.
func (r *Runner) Layout(ctx context.Context, t *tree.Tree, opts Options) (*scene.RenderContext, error) {
	r.applyLogger(&opts)

	observability.Pipeline().OnLayoutStart(ctx, t.CountNodes())
	start := time.Now()

	lay := layout.Compute(t, opts.Layout)
	g := edgegraph.Build(lay, opts.Geometry)
	sc := scene.NewContext(lay, g)

	observability.Pipeline().OnLayoutComplete(ctx, t.CountLeaves(), time.Since(start), nil)
	return sc, nil
}

// Render draws the scene in every requested format.
func (r *Runner) Render(ctx context.Context, sc *scene.RenderContext, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := r.renderFormats(sc, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func (r *Runner) renderFormats(sc *scene.RenderContext, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	// Both converters and the graphviz engine reuse one drawn document.
	var nativeDoc []byte
	native := func() []byte {
		if nativeDoc == nil {
			var svgOpts []svg.Option
			if opts.Highlight != "" {
				svgOpts = append(svgOpts, svg.WithHighlight(opts.Highlight))
			}
			if opts.Static {
				svgOpts = append(svgOpts, svg.WithoutScript())
			}
			nativeDoc = svg.Render(sc, svgOpts...)
		}
		return nativeDoc
	}
	dotSrc := ""
	source := func() string {
		if dotSrc == "" {
			dotSrc = dot.ToDOT(sc, dot.Options{Detailed: opts.Detailed})
		}
		return dotSrc
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch {
		case format == FormatDOT:
			data = []byte(source())
		case format == FormatJSON:
			data, err = render.ExportJSON(sc, render.WithTexts())
		case format == FormatSVG && opts.IsGraphviz():
			data, err = dot.RenderSVG(source())
		case format == FormatSVG:
			data = native()
		case format == FormatPNG && opts.IsGraphviz():
			data, err = dot.RenderPNG(source(), opts.Scale)
		case format == FormatPNG:
			data, err = render.ToPNG(native(), opts.Scale)
		case format == FormatPDF && opts.IsGraphviz():
			data, err = dot.RenderPDF(source())
		case format == FormatPDF:
			data, err = render.ToPDF(native())
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
