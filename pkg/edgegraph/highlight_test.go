package edgegraph

import (
	"testing"
)

// highlightGraph builds a three-level tree with splits on both sides:
//
//	n0 ── no ──> n1 ── no ──> n2 (leaves n3, n4)
//	  \            \── yes ─> n5 (leaf)
//	   \─ yes ─> n6 (leaves n7, n8)
func highlightGraph() *Graph {
	return Build(compute(split("m07_geary_ndvi", 0.41,
		split("m04_moran_ndwi", 1.0, leaf(0.95), leaf(0.3)),
		split("m10_mean_ndvi", 0.5,
			leaf(0.6),
			split("m12_std_ndwi", 0.2, leaf(0.4), leaf(0.1))),
	)), Params{})
}

func TestHighlightsNode(t *testing.T) {
	g := highlightGraph()

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{
			// A mid-level split lights its path to the root; nothing
			// hangs below it except leaves, which have no incoming edges.
			name: "inner split",
			id:   "n2",
			want: []string{"n1-n2", "n0-n1"},
		},
		{
			// The root has no ancestors; the downward walk covers every
			// structural edge but stops short of the leaves.
			name: "root",
			id:   "n0",
			want: []string{"n0-n1", "n1-n2", "n0-n6"},
		},
		{
			// A leaf's only connection is its scale edge.
			name: "leaf",
			id:   "n3",
			want: []string{"n3-n3:scale"},
		},
		{
			// Axis pseudo-nodes resolve through their arriving edge.
			name: "axis pseudo-node",
			id:   "n8:scale",
			want: []string{"n8-n8:scale"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Highlights(tt.id); !equalIDs(got, tt.want) {
				t.Errorf("Highlights(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestHighlightsEdge(t *testing.T) {
	g := highlightGraph()

	got := g.Highlights("n1-n2")
	want := []string{"n1-n2", "n0-n1"}
	if !equalIDs(got, want) {
		t.Errorf("Highlights(n1-n2) = %v, want %v", got, want)
	}
}

// Scale edges are terminal: hovering one lights the edge itself and nothing
// else, because its leaf has no arriving edges and its axis pseudo-node has
// no departing ones.
func TestHighlightsScaleEdgesTerminal(t *testing.T) {
	g := highlightGraph()

	got := g.Highlights("n8-n8:scale")
	if !equalIDs(got, []string{"n8-n8:scale"}) {
		t.Errorf("Highlights(n8-n8:scale) = %v, want just the edge itself", got)
	}
}

// With a single split over two leaves there are no structural edges, so the
// root resolves to an empty set. That is not an error and must not emit a
// diagnostic.
func TestHighlightsRootOfTwoLeafTree(t *testing.T) {
	rec := record(t)
	g := Build(compute(split("m07_geary_ndvi", 0.41, leaf(0.9), leaf(0.2))), Params{})

	if got := g.Highlights("n0"); len(got) != 0 {
		t.Errorf("Highlights(n0) = %v, want empty", got)
	}
	if len(rec.codes) != 0 {
		t.Errorf("diagnostics = %v, want none", rec.codes)
	}
}

func TestHighlightsUnknownID(t *testing.T) {
	rec := record(t)
	g := highlightGraph()

	if got := g.Highlights("n99"); got != nil {
		t.Errorf("Highlights(n99) = %v, want nil", got)
	}
	if !rec.has("UNKNOWN_FRONTIER") {
		t.Errorf("diagnostics = %v, want UNKNOWN_FRONTIER", rec.codes)
	}
}

func TestHighlightsDeterministic(t *testing.T) {
	g := highlightGraph()

	first := g.Highlights("n0")
	second := g.Highlights("n0")
	if !equalIDs(first, second) {
		t.Errorf("repeated Highlights differ: %v then %v", first, second)
	}
}
