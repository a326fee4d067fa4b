package render

import (
	"encoding/json"
	"math"

	"github.com/lbrandt/suitree/pkg/edgegraph"
	"github.com/lbrandt/suitree/pkg/scene"
)

// ExportOption configures JSON export via [ExportJSON].
type ExportOption func(*jsonExporter)

type jsonExporter struct {
	texts bool
}

// WithTexts includes the decision text and highlight set of every node and
// edge in the export, so external viewers can reproduce the hover behavior
// without reimplementing the tree semantics.
func WithTexts() ExportOption { return func(e *jsonExporter) { e.texts = true } }

type jsonDocument struct {
	Params jsonParams `json:"params"`
	Axis   jsonAxis   `json:"axis"`
	Nodes  []jsonNode `json:"nodes"`
	Edges  []jsonEdge `json:"edges,omitempty"`
}

type jsonParams struct {
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing"`
	NodeWidth         float64 `json:"node_width"`
	NodeHeight        float64 `json:"node_height"`
}

type jsonAxis struct {
	X  float64 `json:"x"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

type jsonNode struct {
	ID          string   `json:"id"`
	Depth       int      `json:"depth"`
	Ordinal     float64  `json:"ordinal"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Branch      string   `json:"branch"`
	Leaf        bool     `json:"leaf,omitempty"`
	Feature     string   `json:"feature,omitempty"`
	Threshold   *float64 `json:"threshold,omitempty"`
	Suitability *float64 `json:"suitability,omitempty"`
	Margin      *float64 `json:"margin,omitempty"`
	Label       string   `json:"label,omitempty"`
	Text        string   `json:"text,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

type jsonEdge struct {
	ID     string          `json:"id"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Scale  bool            `json:"scale,omitempty"`
	Branch string          `json:"branch,omitempty"`
	Source edgegraph.Point `json:"source"`
	Target edgegraph.Point `json:"target"`
	Label  string          `json:"label,omitempty"`
}

// ExportJSON serializes a scene as a pretty-printed JSON document: layout
// parameters, the suitability axis, positioned nodes and both edge kinds.
// It is the data interchange format for external viewers and for caching
// computed layouts.
//
// Non-finite values never reach the output; optional fields are omitted
// instead, since JSON has no encoding for NaN.
func ExportJSON(ctx *scene.RenderContext, opts ...ExportOption) ([]byte, error) {
	e := jsonExporter{}
	for _, opt := range opts {
		opt(&e)
	}

	lay := ctx.Layout()
	graph := ctx.Graph()
	lp := lay.Params()
	gp := graph.Params()
	axis := graph.Axis()

	doc := jsonDocument{
		Params: jsonParams{
			HorizontalSpacing: lp.HorizontalSpacing,
			VerticalSpacing:   lp.VerticalSpacing,
			NodeWidth:         gp.NodeWidth,
			NodeHeight:        gp.NodeHeight,
		},
		Axis:  jsonAxis{X: axis.X, Y0: axis.Y0, Y1: axis.Y1},
		Nodes: make([]jsonNode, 0, lay.Len()),
	}

	for _, n := range lay.Nodes() {
		jn := jsonNode{
			ID:      n.ID,
			Depth:   n.Depth,
			Ordinal: n.OrdinalIndex,
			X:       n.X,
			Y:       n.Y,
			Branch:  n.Branch.String(),
			Leaf:    n.IsLeaf(),
			Feature: n.Feature,
			Label:   n.Label,
		}
		if n.IsLeaf() {
			jn.Suitability = finitePtr(n.Suitability)
			jn.Margin = finitePtr(n.Margin)
		} else {
			jn.Threshold = finitePtr(n.Threshold)
		}
		if e.texts {
			jn.Text = ctx.NodeText(n.ID)
			jn.Highlights = graph.Highlights(n.ID)
		}
		doc.Nodes = append(doc.Nodes, jn)
	}

	for _, edge := range graph.Edges() {
		je := jsonEdge{
			ID:     edge.ID,
			From:   edge.From,
			To:     edge.To,
			Scale:  edge.IsScale(),
			Source: edge.Source,
			Target: edge.Target,
		}
		if !edge.IsScale() {
			je.Branch = edge.Branch.String()
		}
		if e.texts {
			je.Label = ctx.EdgeText(edge.ID)
		}
		doc.Edges = append(doc.Edges, je)
	}

	return json.MarshalIndent(doc, "", "  ")
}

func finitePtr(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
