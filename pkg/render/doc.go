// Package render provides output sinks for laid-out suitability trees.
//
// # Overview
//
// This package contains the rendering pipeline that turns a scene into
// shareable artifacts. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Interactive SVG documents (in [svg] subpackage)
//   - Graphviz diagrams (in [dot] subpackage)
//   - JSON export for external viewers
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are shared by both
// sinks.
//
//	doc := svg.Render(ctx, svg.WithoutScript())
//	pdf, err := render.ToPDF(doc)
//	png, err := render.ToPNG(doc, 2.0)  // 2x scale
//
// # Interactive SVG
//
// The [svg] subpackage draws the native column layout: split boxes with
// palette strips and threshold indicators, leaves tinted by suitability,
// bezier connectors and the vertical suitability scale. The document embeds
// a stylesheet and a hover script, so decision paths light up in any
// browser without external assets.
//
// # Graphviz Diagrams
//
// The [dot] subpackage hands the tree to Graphviz for layout instead of
// using the native columns. It is useful for quick structural inspection
// of large trees.
//
//	src := dot.ToDOT(ctx, dot.Options{})
//	doc, err := dot.RenderSVG(src)
//	pdf, err := render.ToPDF(doc)
//
// # JSON Export
//
// [ExportJSON] serializes the positioned nodes, edges and axis, optionally
// with the precomputed decision texts and highlight sets, so external
// tools can re-render the scene or drive their own interaction.
//
// [svg]: github.com/lbrandt/suitree/pkg/render/svg
// [dot]: github.com/lbrandt/suitree/pkg/render/dot
package render
