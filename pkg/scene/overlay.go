package scene

import (
	"context"

	"github.com/lbrandt/suitree/pkg/observability"
)

// Offset of the overlay box from the center of the element it annotates.
const (
	overlayOffsetX = 24
	overlayOffsetY = -18
)

// Overlay manages the single floating decision-text box of a scene. It is
// either hidden or anchored to one element; showing it on a new anchor
// replaces the previous box.
type Overlay struct {
	ctx     *RenderContext
	surface Surface
	shown   bool
	anchor  string
}

// NewOverlay returns a hidden overlay bound to a context and surface.
func NewOverlay(ctx *RenderContext, s Surface) *Overlay {
	return &Overlay{ctx: ctx, surface: s}
}

// Shown reports whether the overlay is currently on screen.
func (o *Overlay) Shown() bool { return o.shown }

// Anchor returns the id of the element the overlay is attached to, or ""
// when hidden.
func (o *Overlay) Anchor() string {
	if !o.shown {
		return ""
	}
	return o.anchor
}

// Show anchors the overlay to an element, replacing any box already on
// screen. Ids resolve in order: node, edge, axis pseudo-node (which reads
// as its leaf). An id that resolves to nothing, or to empty text, leaves
// the overlay in its current state and emits a diagnostic.
func (o *Overlay) Show(id string) {
	text, x, y, ok := o.resolve(id)
	if !ok {
		diag("OVERLAY_UNRESOLVED", "overlay anchor not found", "id", id)
		return
	}
	if text == "" {
		diag("OVERLAY_EMPTY_TEXT", "overlay anchor has no text", "id", id)
		return
	}

	o.surface.ShowOverlay(OverlayVisual{
		AnchorID: id,
		X:        x + overlayOffsetX,
		Y:        y + overlayOffsetY,
		Text:     text,
	})
	o.shown = true
	o.anchor = id
}

// Hide removes the overlay. Hiding an already hidden overlay does nothing.
func (o *Overlay) Hide() {
	if !o.shown {
		return
	}
	o.surface.HideOverlay()
	o.shown = false
	o.anchor = ""
}

// resolve finds the text and anchor point for an element id.
func (o *Overlay) resolve(id string) (text string, x, y float64, ok bool) {
	if n, found := o.ctx.Layout().Node(id); found {
		return o.ctx.NodeText(id), n.X, n.Y, true
	}
	if e, found := o.ctx.Graph().Edge(id); found {
		return o.ctx.EdgeText(id), (e.Source.X + e.Target.X) / 2, (e.Source.Y + e.Target.Y) / 2, true
	}
	// Axis pseudo-nodes have no layout entry; they anchor at the axis end
	// of their arriving scale edge and read as the leaf behind it.
	if arriving := o.ctx.Graph().EdgesTo(id); len(arriving) == 1 && arriving[0].IsScale() {
		e := arriving[0]
		return o.ctx.NodeText(e.From), e.Target.X, e.Target.Y, true
	}
	return "", 0, 0, false
}

func diag(code, msg string, kv ...any) {
	observability.Diagnostics().OnDiagnostic(context.Background(), "scene", code, msg, kv...)
}
