package scene

import (
	"fmt"
	"math"

	"github.com/lbrandt/suitree/pkg/edgegraph"
	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/semantics"
)

// RenderContext pairs a layout with its edge graph and derives the visuals
// surfaces draw. It is immutable; one context can render onto any number of
// surfaces.
type RenderContext struct {
	lay   *layout.Result
	graph *edgegraph.Graph
}

// NewContext builds a render context over a laid-out tree and its edges.
func NewContext(lay *layout.Result, g *edgegraph.Graph) *RenderContext {
	return &RenderContext{lay: lay, graph: g}
}

// Layout returns the underlying positioned hierarchy.
func (c *RenderContext) Layout() *layout.Result { return c.lay }

// Graph returns the underlying edge set.
func (c *RenderContext) Graph() *edgegraph.Graph { return c.graph }

// Render pushes the whole scene onto a surface: the axis first, then the
// edges, then the nodes, so boxes paint over the curves that meet them.
// An empty scene draws nothing.
func (c *RenderContext) Render(s Surface) {
	if c.lay == nil || c.graph == nil || c.lay.Len() == 0 {
		return
	}

	axis := c.graph.Axis()
	s.DrawAxis(AxisVisual{X: axis.X, Y0: axis.Y0, Y1: axis.Y1, Stops: semantics.Viridis})

	for _, e := range c.graph.Edges() {
		s.DrawEdge(c.EdgeVisual(e))
	}
	for _, n := range c.lay.Nodes() {
		s.DrawNode(c.NodeVisual(n))
	}
}

// NodeVisual derives the drawable form of one positioned node.
func (c *RenderContext) NodeVisual(n layout.PositionedNode) NodeVisual {
	p := c.graph.Params()
	v := NodeVisual{
		ID:         n.ID,
		X:          n.X,
		Y:          n.Y,
		Width:      p.NodeWidth,
		Height:     p.NodeHeight,
		Leaf:       n.IsLeaf(),
		Title:      n.Label,
		Overlay:    c.NodeText(n.ID),
		Highlights: c.graph.Highlights(n.ID),
	}

	if n.IsLeaf() {
		if v.Title == "" {
			v.Title = "Suitability"
		}
		v.Detail = fmt.Sprintf("%.2f", n.Suitability)
		v.Fill = semantics.SuitabilityColor(n.Suitability)
		v.Suitability = n.Suitability
		return v
	}

	if v.Title == "" {
		v.Title = semantics.FeatureLabel(n.Feature)
	}
	if v.Title == "" {
		v.Title = semantics.FallbackText
	}
	if !math.IsNaN(n.Threshold) && !math.IsInf(n.Threshold, 0) {
		v.Detail = fmt.Sprintf("%.2f", n.Threshold)
	}
	meta := semantics.MetaFor(semantics.Parse(n.Feature))
	v.Palette = meta.Palette
	v.IndicatorRel = semantics.ThresholdRel(meta, n.Threshold)
	return v
}

// EdgeVisual derives the drawable form of one edge.
func (c *RenderContext) EdgeVisual(e edgegraph.Edge) EdgeVisual {
	c1, c2 := e.ControlPoints()
	return EdgeVisual{
		ID:         e.ID,
		Scale:      e.IsScale(),
		From:       e.From,
		To:         e.To,
		Source:     e.Source,
		Target:     e.Target,
		C1:         c1,
		C2:         c2,
		Label:      c.EdgeText(e.ID),
		Highlights: c.graph.Highlights(e.ID),
	}
}

// NodeText returns the decision label shown when the pointer rests on a
// node: the comparison taken on its incoming branch. The root has no
// incoming branch and reads as the fallback label. Unknown ids read as
// empty.
func (c *RenderContext) NodeText(id string) string {
	n, ok := c.lay.Node(id)
	if !ok {
		return ""
	}
	parentID, ok := c.lay.Parent(n.ID)
	if !ok {
		return semantics.FallbackText
	}
	parent, _ := c.lay.Node(parentID)
	return semantics.DecisionText(parent.Feature, parent.Threshold, parent.HasThreshold, n.Branch == layout.BranchYes)
}

// EdgeText returns the decision label of an edge. A structural edge reads
// the split it departs from; a scale edge inherits its leaf's incoming
// decision.
func (c *RenderContext) EdgeText(id string) string {
	e, ok := c.graph.Edge(id)
	if !ok {
		return ""
	}
	if e.IsScale() {
		return c.NodeText(e.From)
	}
	parent, ok := c.lay.Node(e.From)
	if !ok {
		return ""
	}
	return semantics.DecisionText(parent.Feature, parent.Threshold, parent.HasThreshold, e.Branch == layout.BranchYes)
}
