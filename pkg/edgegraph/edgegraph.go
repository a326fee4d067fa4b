// Package edgegraph derives the queryable edge set of a laid-out tree.
//
// Two kinds of edges exist. Structural edges connect a split to each child
// that is itself a split; leaves never receive a structural edge. Scale
// edges connect every leaf to a pseudo-node on the suitability axis, placed
// by linear interpolation of the leaf's score along the axis span.
//
// Edges carry their endpoint coordinates so sinks can draw them without
// re-deriving geometry. A structural edge departs the parent box next to
// its threshold indicator, fanned toward the yes or no side, and arrives at
// the left edge of the child box.
package edgegraph

import (
	"context"
	"math"

	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/observability"
	"github.com/lbrandt/suitree/pkg/semantics"
)

// Node box dimensions and axis placement used when Params leaves them unset.
const (
	DefaultNodeWidth  = 240
	DefaultNodeHeight = 70
	DefaultAxisGap    = 120
)

// branchFan offsets a structural edge's departure from the threshold
// indicator, as a fraction of the node width. edgeInset keeps departures
// off the box corners.
const (
	branchFan = 0.12
	edgeInset = 8
)

// Point is a position in layout coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EdgeKind distinguishes tree structure from axis references.
type EdgeKind int

const (
	// EdgeStructural connects a split node to a non-leaf child.
	EdgeStructural EdgeKind = iota
	// EdgeScale connects a leaf to its position on the suitability axis.
	EdgeScale
)

// String returns the lower-case kind name.
func (k EdgeKind) String() string {
	if k == EdgeScale {
		return "scale"
	}
	return "structural"
}

// Edge is one connection of the graph. From and To are element ids; the To
// of a scale edge names an axis pseudo-node derived via [ScaleNodeID].
type Edge struct {
	ID     string        `json:"id"`
	Kind   EdgeKind      `json:"-"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Source Point         `json:"source"`
	Target Point         `json:"target"`
	Branch layout.Branch `json:"-"`
}

// IsScale reports whether the edge points at the suitability axis.
func (e Edge) IsScale() bool { return e.Kind == EdgeScale }

// ControlPoints returns the two cubic bezier controls for drawing the edge,
// placed at 30% and 70% of the horizontal span so the curve leaves the
// source flat and arrives flat at the target.
func (e Edge) ControlPoints() (Point, Point) {
	span := e.Target.X - e.Source.X
	c1 := Point{X: e.Source.X + 0.3*span, Y: e.Source.Y}
	c2 := Point{X: e.Source.X + 0.7*span, Y: e.Target.Y}
	return c1, c2
}

// Axis is the vertical suitability scale. Y0 is the position of score 0,
// Y1 the position of score 1; with the best leaves laid out at the top,
// Y1 sits above Y0.
type Axis struct {
	X  float64 `json:"x" toml:"x"`
	Y0 float64 `json:"y0" toml:"y0"`
	Y1 float64 `json:"y1" toml:"y1"`
}

// Params controls edge geometry. Zero values take the package defaults;
// a zero Axis is derived from the layout extent, placed one gap right of
// the deepest column.
type Params struct {
	NodeWidth  float64 `json:"node_width" toml:"node_width"`
	NodeHeight float64 `json:"node_height" toml:"node_height"`
	Axis       Axis    `json:"axis" toml:"axis"`
}

func (p Params) withDefaults(lay *layout.Result) Params {
	if p.NodeWidth <= 0 {
		p.NodeWidth = DefaultNodeWidth
	}
	if p.NodeHeight <= 0 {
		p.NodeHeight = DefaultNodeHeight
	}
	if p.Axis == (Axis{}) {
		var maxX, maxY float64
		if lay != nil {
			maxX, maxY = lay.Extent()
		}
		p.Axis = Axis{X: maxX + p.NodeWidth/2 + DefaultAxisGap, Y0: maxY, Y1: 0}
	}
	return p
}

// ScaleNodeID returns the id of the axis pseudo-node a leaf's scale edge
// points at.
func ScaleNodeID(leafID string) string {
	return leafID + ":scale"
}

// EdgeID returns the deterministic id of the edge between two elements.
func EdgeID(from, to string) string {
	return from + "-" + to
}

// Graph is the immutable edge set of one laid-out tree, indexed for lookup
// by id and by endpoint. A zero Graph behaves like the graph of an empty
// layout.
type Graph struct {
	edges []Edge
	byID  map[string]int
	from  map[string][]int
	to    map[string][]int
	nodes map[string]bool
	axis  Axis
	param Params
}

// Build derives the edge set of a layout. The layout is not modified.
func Build(lay *layout.Result, p Params) *Graph {
	p = p.withDefaults(lay)
	g := &Graph{
		byID:  map[string]int{},
		from:  map[string][]int{},
		to:    map[string][]int{},
		nodes: map[string]bool{},
		axis:  p.Axis,
		param: p,
	}
	if lay == nil || lay.Len() == 0 {
		return g
	}

	nodes := lay.Nodes()
	for _, n := range nodes {
		g.nodes[n.ID] = true
	}

	// Structural edges, in child traversal order. Only splits receive one;
	// a leaf's sole connection is its scale edge.
	for _, child := range nodes {
		if child.IsLeaf() {
			continue
		}
		parentID, ok := lay.Parent(child.ID)
		if !ok {
			continue
		}
		parent, _ := lay.Node(parentID)
		g.add(Edge{
			Kind:   EdgeStructural,
			From:   parentID,
			To:     child.ID,
			Source: departure(parent, child.Branch, p),
			Target: Point{X: child.X - p.NodeWidth/2, Y: child.Y},
			Branch: child.Branch,
		})
	}

	// Scale edges, one per leaf in ordinal order.
	for _, leaf := range lay.Leaves() {
		scaleID := ScaleNodeID(leaf.ID)
		g.nodes[scaleID] = true
		suit := leaf.Suitability
		if suit < 0 || suit > 1 {
			diag("SUITABILITY_OUT_OF_RANGE", "clamping leaf score onto the axis",
				"id", leaf.ID, "suitability", suit)
			suit = math.Max(0, math.Min(1, suit))
		}
		g.add(Edge{
			Kind:   EdgeScale,
			From:   leaf.ID,
			To:     scaleID,
			Source: Point{X: leaf.X + p.NodeWidth/2, Y: leaf.Y},
			Target: Point{X: p.Axis.X, Y: p.Axis.Y0 + (p.Axis.Y1-p.Axis.Y0)*suit},
			Branch: leaf.Branch,
		})
	}

	return g
}

// departure places a structural edge's source on the parent's lower edge,
// next to the threshold indicator and fanned toward the taken branch.
func departure(parent layout.PositionedNode, branch layout.Branch, p Params) Point {
	meta := semantics.MetaFor(semantics.Parse(parent.Feature))
	rel := semantics.ThresholdRel(meta, parent.Threshold)
	local := (rel - 0.5) * p.NodeWidth
	if branch == layout.BranchNo {
		local -= branchFan * p.NodeWidth
	} else {
		local += branchFan * p.NodeWidth
	}
	limit := p.NodeWidth/2 - edgeInset
	local = math.Max(-limit, math.Min(limit, local))
	return Point{X: parent.X + local, Y: parent.Y + p.NodeHeight/2}
}

func (g *Graph) add(e Edge) {
	e.ID = EdgeID(e.From, e.To)
	g.byID[e.ID] = len(g.edges)
	g.from[e.From] = append(g.from[e.From], len(g.edges))
	g.to[e.To] = append(g.to[e.To], len(g.edges))
	g.edges = append(g.edges, e)
}

// Edges returns all edges, structural first, in build order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id string) (Edge, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return Edge{}, false
	}
	return g.edges[idx], true
}

// EdgesFrom returns the edges departing an element.
func (g *Graph) EdgesFrom(id string) []Edge {
	return g.pick(g.from[id])
}

// EdgesTo returns the edges arriving at an element.
func (g *Graph) EdgesTo(id string) []Edge {
	return g.pick(g.to[id])
}

func (g *Graph) pick(idx []int) []Edge {
	if len(idx) == 0 {
		return nil
	}
	out := make([]Edge, 0, len(idx))
	for _, i := range idx {
		out = append(out, g.edges[i])
	}
	return out
}

// HasNode reports whether the graph knows an element id, including the
// axis pseudo-nodes.
func (g *Graph) HasNode(id string) bool { return g.nodes[id] }

// Len returns the number of edges.
func (g *Graph) Len() int { return len(g.edges) }

// Axis returns the suitability axis the scale edges target.
func (g *Graph) Axis() Axis { return g.axis }

// Params returns the geometry the graph was built with, defaults applied.
func (g *Graph) Params() Params { return g.param }

func diag(code, msg string, kv ...any) {
	observability.Diagnostics().OnDiagnostic(context.Background(), "edgegraph", code, msg, kv...)
}
