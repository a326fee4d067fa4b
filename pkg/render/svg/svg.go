// Package svg renders a scene as a self-contained interactive SVG document.
//
// The document embeds its own stylesheet and hover script: resting the
// pointer on a node or edge lights the decision path through it and shows
// the decision text in a floating popup, with no external assets. Overlay
// text and highlight sets are precomputed per element and stored in data
// attributes, so the script stays generic.
package svg

import (
	"bytes"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/lbrandt/suitree/pkg/scene"
)

// Option configures SVG rendering.
type Option func(*renderer)

// WithSize overrides the width and height attributes of the document. The
// drawing keeps its aspect ratio through the viewBox.
func WithSize(width, height float64) Option {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithoutScript omits the embedded hover script and popup, producing a
// static document. Use it before converting to PDF or PNG, where scripts
// never run.
func WithoutScript() Option {
	return func(r *renderer) {
		r.script = false
	}
}

// WithHighlight pre-lights the decision path through the given node or
// edge id and pins its overlay text, as if the pointer rested on it.
// Unknown ids render unhighlighted.
func WithHighlight(id string) Option {
	return func(r *renderer) {
		r.highlight = id
	}
}

// WithNamespace fixes the id namespace used for gradient and popup
// definitions. By default every render draws a fresh random one so that
// several documents can be inlined into the same page without clashes.
func WithNamespace(ns string) Option {
	return func(r *renderer) {
		if ns != "" {
			r.namespace = ns
		}
	}
}

type renderer struct {
	width     float64
	height    float64
	namespace string
	script    bool
	highlight string
}

// Render draws the scene as an SVG document.
func Render(ctx *scene.RenderContext, opts ...Option) []byte {
	r := renderer{script: true, namespace: uuid.NewString()[:8]}
	for _, opt := range opts {
		opt(&r)
	}

	b := &builder{marked: make(map[string]bool)}
	ctx.Render(b)
	if r.highlight != "" {
		scene.NewPresenter(ctx, b).Enter(r.highlight)
	}
	return b.document(&r)
}

// builder implements scene.Surface by collecting visuals, then writing the
// document in one pass once the frame extent is known.
type builder struct {
	nodes   []scene.NodeVisual
	edges   []scene.EdgeVisual
	axis    *scene.AxisVisual
	overlay *scene.OverlayVisual
	marked  map[string]bool
}

func (b *builder) DrawNode(v scene.NodeVisual) { b.nodes = append(b.nodes, v) }

func (b *builder) DrawEdge(v scene.EdgeVisual) { b.edges = append(b.edges, v) }

func (b *builder) DrawAxis(v scene.AxisVisual) { b.axis = &v }

func (b *builder) Mark(edgeID string) { b.marked[edgeID] = true }

func (b *builder) Unmark(edgeID string) { delete(b.marked, edgeID) }

func (b *builder) ShowOverlay(v scene.OverlayVisual) { b.overlay = &v }

func (b *builder) HideOverlay() { b.overlay = nil }

const framePadding = 48

// document serializes everything collected so far.
func (b *builder) document(r *renderer) []byte {
	minX, minY, w, h := b.frame()
	width, height := w, h
	if r.width > 0 && r.height > 0 {
		width, height = r.width, r.height
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%.1f %.1f %.1f %.1f\" width=\"%.0f\" height=\"%.0f\" font-family=\"ui-sans-serif, system-ui, sans-serif\">\n",
		minX, minY, w, h, width, height)
	fmt.Fprintf(&buf, "<style>%s</style>\n", documentCSS)

	b.renderDefs(&buf, r.namespace)
	b.renderEdges(&buf)
	b.renderAxis(&buf, r.namespace)
	b.renderNodes(&buf, r.namespace)
	b.renderOverlay(&buf)

	if r.script {
		popupID := "popup-" + r.namespace
		fmt.Fprintf(&buf, "<g id=%q class=\"popup\" visibility=\"hidden\"><rect width=\"120\" height=\"%d\" rx=\"5\"/><text x=\"8\" y=\"17\"></text></g>\n",
			popupID, overlayHeight)
		buf.WriteString("<script type=\"text/javascript\"><![CDATA[\n")
		fmt.Fprintf(&buf, hoverJS, popupID)
		buf.WriteString("\n]]></script>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frame computes the viewBox enclosing every drawn element.
func (b *builder) frame() (minX, minY, w, h float64) {
	if len(b.nodes) == 0 && len(b.edges) == 0 && b.axis == nil {
		return 0, 0, 320, 120
	}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	for _, n := range b.nodes {
		grow(n.X-n.Width/2, n.Y-n.Height/2)
		grow(n.X+n.Width/2, n.Y+n.Height/2)
	}
	for _, e := range b.edges {
		grow(e.Source.X, e.Source.Y)
		grow(e.Target.X, e.Target.Y)
	}
	if b.axis != nil {
		top := math.Min(b.axis.Y0, b.axis.Y1)
		bottom := math.Max(b.axis.Y0, b.axis.Y1)
		grow(b.axis.X-axisWidth, top-24)
		grow(b.axis.X+axisWidth, bottom+24)
	}
	if b.overlay != nil && b.overlay.Text != "" {
		grow(b.overlay.X, b.overlay.Y)
		grow(b.overlay.X+overlayWidth(b.overlay.Text), b.overlay.Y+overlayHeight)
	}

	minX -= framePadding
	minY -= framePadding
	maxX += framePadding
	maxY += framePadding
	return minX, minY, maxX - minX, maxY - minY
}
