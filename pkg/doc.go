// Package pkg provides the core libraries for Suitree habitat suitability
// tree visualization.
//
// # Overview
//
// Suitree turns surrogate decision trees distilled from habitat suitability
// models into explorable diagrams. A tree arrives as a JSON or YAML document
// of feature splits over satellite statistics and suitability leaves, and the
// pkg directory takes it from there in five stages:
//
//  1. [tree] - Decoding and validation of surrogate tree documents
//  2. [layout] - Deterministic node positions (depth columns, leaf rows)
//  3. [edgegraph] - Edge routing and hover highlight sets
//  4. [scene] - Shared visual model and interaction state machine
//  5. [render] - Output sinks (interactive SVG, Graphviz, terminal, JSON)
//
// # Architecture
//
// The typical data flow through Suitree:
//
//	JSON/YAML surrogate tree
//	         ↓
//	    [tree] package (decode + suitability resolution)
//	         ↓
//	    [layout] package (positions + depth/ordinal order)
//	         ↓
//	    [edgegraph] package (edges + highlight sets)
//	         ↓
//	    [scene] package (visuals + presenter)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON/terminal output
//
// # Quick Start
//
// Decode a surrogate tree and render an interactive SVG:
//
//	import (
//	    "os"
//	    "github.com/lbrandt/suitree/pkg/edgegraph"
//	    "github.com/lbrandt/suitree/pkg/layout"
//	    "github.com/lbrandt/suitree/pkg/render/svg"
//	    "github.com/lbrandt/suitree/pkg/scene"
//	    "github.com/lbrandt/suitree/pkg/tree"
//	)
//
//	// 1. Decode the tree
//	f, _ := os.Open("tree.json")
//	t, _ := tree.Decode(f, tree.FormatJSON)
//
//	// 2. Compute the layout
//	lay := layout.Compute(t, layout.Params{})
//
//	// 3. Build the scene
//	g := edgegraph.Build(lay, edgegraph.Params{})
//	sc := scene.NewContext(lay, g)
//
//	// 4. Render to SVG
//	doc := svg.Render(sc)
//
// # Main Packages
//
// ## Domain Model
//
// [tree] - Surrogate tree decoding from JSON and YAML. Split nodes carry a
// feature code and threshold; leaves carry a suitability score, either given
// explicitly or resolved from a raw model margin through the logistic
// function.
//
// [semantics] - Feature code interpretation. Parses codes like m07_geary_ndvi
// into month, statistic, and spectral band, renders human decision texts, and
// selects color palettes per statistic. Labels and palettes can be extended
// at runtime, which is how config files plug in.
//
// ## Geometry
//
// [layout] - Deterministic layout of the decoded tree. Splits occupy depth
// columns, leaves share a terminal column, and every node gets a stable
// preorder position. The computed [layout.Result] answers position, parent,
// and extent queries for every consumer downstream.
//
// [edgegraph] - Edge construction on top of a layout: structural parent-child
// edges plus per-leaf scale edges that anchor leaves to the suitability axis.
// For any node it derives the highlight set (ancestor path and descendant
// cone) that drives hover and cursor interactions.
//
// ## Visualization
//
// [scene] - The shared visual model. A [scene.RenderContext] resolves node,
// edge, axis, and overlay visuals once, and a [scene.Presenter] replays
// enter/leave interactions onto any [scene.Surface] so the SVG hover script,
// the Graphviz export, and the terminal UI behave identically.
//
// [render] - Top-level utilities shared by the sinks: SVG to PDF/PNG
// conversion via rsvg-convert, and a JSON export for external viewers.
//
//   - [render/svg]: Interactive SVG documents with an embedded hover script
//   - [render/dot]: Graphviz DOT source and rendering via go-graphviz
//   - [render/tui]: Terminal outline built on Bubble Tea
//
// ## Orchestration
//
// [pipeline] - The complete decode → layout → render pipeline behind the CLI.
// A [pipeline.Runner] validates options once and produces all requested
// artifacts in a single pass, with per-stage timing in the result.
//
// [config] - TOML configuration (suitree.toml) for layout spacing, node
// geometry, and label/palette overrides. [config.Config.Apply] feeds the
// overrides into [semantics].
//
// ## Infrastructure
//
// [errors] - Coded errors shared across packages. Codes travel through wrap
// chains, so callers match on [errors.Is] with a code instead of string
// comparison.
//
// [observability] - Process-wide diagnostic hooks. Library packages report
// recoverable oddities (unknown feature codes, missing suitabilities) without
// choosing a logger; binaries decide where the reports go.
//
// [buildinfo] - Version, commit, and build date injected via ldflags.
//
// # Common Workflows
//
// Run the whole pipeline at once:
//
//	runner := pipeline.NewRunner(logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Input:   "tree.json",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPDF},
//	})
//
// Render a static document with a pre-lit decision path:
//
//	doc := svg.Render(sc, svg.WithoutScript(), svg.WithHighlight("n3"))
//
// Produce a Graphviz diagram:
//
//	src := dot.ToDOT(sc, dot.Options{Detailed: true})
//	png, _ := dot.RenderPNG(src, 2.0)
//
// Apply a config file's labels and palettes:
//
//	cfg, _ := config.Load("suitree.toml")
//	cfg.Apply()
//
// # Testing
//
// Run tests:
//
//	go test ./...               # All tests
//	go test ./pkg/layout/...    # Specific package
//	go test -run Example ./...  # Examples only
//
// [tree]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/tree
// [semantics]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/semantics
// [layout]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/layout
// [edgegraph]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/edgegraph
// [scene]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/scene
// [render]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/render/svg
// [render/dot]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/render/dot
// [render/tui]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/render/tui
// [pipeline]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/config
// [errors]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/lbrandt/suitree/pkg/buildinfo
package pkg
