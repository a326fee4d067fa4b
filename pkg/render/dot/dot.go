// Package dot renders a scene through Graphviz for callers that want an
// auto-laid-out diagram instead of the native column layout.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/lbrandt/suitree/pkg/errors"
	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/render"
	"github.com/lbrandt/suitree/pkg/scene"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds node ids and raw feature codes to the labels.
	Detailed bool
}

// ToDOT converts a scene to Graphviz DOT format. Splits render as white
// boxes labeled with their decision, leaves as boxes tinted by suitability,
// and each leaf hangs a dashed connector to a plain score node standing in
// for the suitability scale. The result renders with [RenderSVG],
// [RenderPDF], or [RenderPNG].
func ToDOT(ctx *scene.RenderContext, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=16, margin=\"0.25,0.12\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.35;\n")
	buf.WriteString("\n")

	for _, n := range ctx.Layout().Nodes() {
		v := ctx.NodeVisual(n)
		label := fmtLabel(n, v, opts.Detailed)
		attrs := fmtAttrs(v, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range ctx.Graph().Edges() {
		if e.IsScale() {
			leaf, _ := ctx.Layout().Node(e.From)
			fmt.Fprintf(&buf, "  %q [shape=plaintext, fontsize=13, label=%q];\n", e.To, fmt.Sprintf("%.2f", leaf.Suitability))
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none, color=\"#9aa5b1\"];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Branch.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.PositionedNode, v scene.NodeVisual, detailed bool) string {
	lines := []string{v.Title}
	if v.Detail != "" {
		lines = append(lines, v.Detail)
	}
	if detailed {
		lines = append(lines, "id: "+n.ID)
		if n.Feature != "" {
			lines = append(lines, "feature: "+n.Feature)
		}
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(v scene.NodeVisual, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if v.Leaf && v.Fill != "" {
		attrs = append(attrs,
			fmt.Sprintf("fillcolor=%q", v.Fill),
			fmt.Sprintf("fontcolor=%q", fontColorFor(v.Fill)))
	}
	return attrs
}

// fontColorFor picks black or white text against a hex fill.
func fontColorFor(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return "black"
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return "black"
	}
	r := float64(v >> 16 & 0xff)
	g := float64(v >> 8 & 0xff)
	b := float64(v & 0xff)
	if 0.2126*r+0.7152*g+0.0722*b > 150 {
		return "black"
	}
	return "white"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg element so the document scales
// to its container instead of carrying fixed pt dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
