// Package scene assembles drawable visuals from a laid-out tree and routes
// hover interaction to a rendering surface.
//
// The package sits between the geometry layers (layout, edgegraph) and the
// sinks that actually draw (SVG, DOT, the terminal viewer). A sink
// implements [Surface]; [RenderContext.Render] pushes the static picture
// onto it once, and a [Presenter] replays pointer movement as Mark, Unmark
// and overlay calls.
package scene

import "github.com/lbrandt/suitree/pkg/edgegraph"

// NodeVisual is everything a surface needs to draw one node box, centered
// at (X, Y).
type NodeVisual struct {
	ID     string
	X, Y   float64
	Width  float64
	Height float64
	Leaf   bool

	// Title names the box; Detail carries the formatted threshold or
	// score. Detail is empty when the underlying value is not finite.
	Title  string
	Detail string

	// Split boxes paint Palette as a gradient strip with an indicator
	// line at IndicatorRel of its width. Leaf boxes use the flat Fill.
	Palette      []string
	IndicatorRel float64
	Fill         string
	Suitability  float64

	// Overlay is the text shown when the pointer rests on this node;
	// Highlights the edges lit at the same time. Both are precomputed so
	// non-interactive sinks can embed them.
	Overlay    string
	Highlights []string
}

// EdgeVisual is one drawable connection, a cubic bezier from Source to
// Target through C1 and C2.
type EdgeVisual struct {
	ID             string
	Scale          bool
	From, To       string
	Source, Target edgegraph.Point
	C1, C2         edgegraph.Point

	Label      string
	Highlights []string
}

// AxisVisual is the vertical suitability scale, painted with Stops from
// score 0 at Y0 to score 1 at Y1.
type AxisVisual struct {
	X, Y0, Y1 float64
	Stops     []string
}

// OverlayVisual is the floating decision text box. X and Y place its
// anchor point, already offset from the element it annotates.
type OverlayVisual struct {
	AnchorID string
	X, Y     float64
	Text     string
}

// Surface receives drawing and interaction calls from a scene. Draw calls
// arrive once per element during rendering; Mark, Unmark and the overlay
// pair arrive as the pointer moves.
//
// ShowOverlay replaces any overlay already on screen; a surface never
// shows two at once.
type Surface interface {
	DrawNode(NodeVisual)
	DrawEdge(EdgeVisual)
	DrawAxis(AxisVisual)

	Mark(edgeID string)
	Unmark(edgeID string)

	ShowOverlay(OverlayVisual)
	HideOverlay()
}
