package dot

import (
	"math"
	"strings"
	"testing"

	"github.com/lbrandt/suitree/pkg/edgegraph"
	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/scene"
	"github.com/lbrandt/suitree/pkg/tree"
)

func split(feature string, threshold float64, yes, no *tree.Node) *tree.Node {
	return &tree.Node{Kind: tree.KindInternal, Feature: feature, Threshold: threshold, HasThreshold: true, Yes: yes, No: no}
}

func leaf(suit float64) *tree.Node {
	return &tree.Node{Kind: tree.KindLeaf, Suit: suit, Margin: math.NaN()}
}

func testContext() *scene.RenderContext {
	t := &tree.Tree{Root: split("m07_geary_ndvi", 0.41,
		leaf(0.9),
		split("m10_moran_ndwi", 1.2, leaf(0.8), leaf(0.2)),
	)}
	lay := layout.Compute(t, layout.Params{HorizontalSpacing: 100, VerticalSpacing: 10})
	return scene.NewContext(lay, edgegraph.Build(lay, edgegraph.Params{}))
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testContext(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"n0" [label="Geary C NDVI (m07)\n0.41"];`,
		`"n1" [label="Moran's I NDWI (m10)\n1.20"];`,
		`"n4" [label="Suitability\n0.90", fillcolor="`,
		`"n0" -> "n1" [label="no"];`,
		`"n4:scale" [shape=plaintext, fontsize=13, label="0.90"];`,
		`"n4" -> "n4:scale" [style=dashed, arrowhead=none, color="#9aa5b1"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Errorf("DOT not closed:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testContext(), Options{Detailed: true})

	for _, want := range []string{
		`\nid: n0\nfeature: m07_geary_ndvi`,
		`\nid: n4"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTLeafContrast(t *testing.T) {
	dot := ToDOT(testContext(), Options{})

	if !strings.Contains(dot, "fontcolor=") {
		t.Errorf("leaf nodes carry no fontcolor:\n%s", dot)
	}
}

func TestToDOTEscapesLabels(t *testing.T) {
	tr := &tree.Tree{Root: split("m07_geary_ndvi", 0.41,
		&tree.Node{Kind: tree.KindLeaf, Suit: 0.9, Margin: math.NaN(), Label: `Salix "Willow"`},
		leaf(0.2),
	)}
	lay := layout.Compute(tr, layout.Params{HorizontalSpacing: 100, VerticalSpacing: 10})
	ctx := scene.NewContext(lay, edgegraph.Build(lay, edgegraph.Params{}))

	dot := ToDOT(ctx, Options{})
	if !strings.Contains(dot, `label="Salix \"Willow\"\n0.90"`) {
		t.Errorf("quotes not escaped:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	lay := layout.Compute(&tree.Tree{}, layout.Params{})
	ctx := scene.NewContext(lay, edgegraph.Build(lay, edgegraph.Params{}))

	dot := ToDOT(ctx, Options{})
	if !strings.Contains(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty DOT malformed:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("empty DOT contains edges:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="134pt" height="87pt" viewBox="0.00 0.00 134.00 87.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 134.00 87.00" width="134" height="87">`
	if !strings.Contains(out, want) {
		t.Errorf("normalized svg = %s, want element %s", out, want)
	}
	if strings.Contains(out, "134pt") {
		t.Errorf("pt dimensions survived normalization: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg></svg>")
	if got := string(normalizeViewBox(in)); got != "<svg></svg>" {
		t.Errorf("normalizeViewBox altered svg without viewBox: %s", got)
	}
}
