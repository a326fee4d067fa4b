package scene

// Presenter replays pointer movement over a rendered scene. Entering an
// element lights its decision path and opens the overlay; leaving reverses
// both. A Presenter tracks what it marked so surfaces never see unbalanced
// calls.
//
// Presenters are not safe for concurrent use; drive one from a single
// event loop.
type Presenter struct {
	ctx     *RenderContext
	surface Surface
	overlay *Overlay
	marked  []string
}

// NewPresenter returns an idle presenter over a context and surface.
func NewPresenter(ctx *RenderContext, s Surface) *Presenter {
	return &Presenter{ctx: ctx, surface: s, overlay: NewOverlay(ctx, s)}
}

// Enter moves the pointer onto an element. Any previous highlight clears
// first, then the element's path marks, then the overlay opens on it.
// Entering while another element is active implies leaving it.
func (p *Presenter) Enter(id string) {
	p.clearMarks()
	for _, edgeID := range p.ctx.Graph().Highlights(id) {
		p.surface.Mark(edgeID)
		p.marked = append(p.marked, edgeID)
	}
	p.overlay.Show(id)
}

// Leave moves the pointer off the scene. Highlights clear before the
// overlay hides; leaving an idle scene does nothing.
func (p *Presenter) Leave() {
	p.clearMarks()
	p.overlay.Hide()
}

// Active returns the id the overlay is anchored to, or "" when idle.
func (p *Presenter) Active() string { return p.overlay.Anchor() }

func (p *Presenter) clearMarks() {
	for _, edgeID := range p.marked {
		p.surface.Unmark(edgeID)
	}
	p.marked = p.marked[:0]
}
