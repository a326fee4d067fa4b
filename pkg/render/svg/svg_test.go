package svg

import (
	"bytes"
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

// testContext lays out the usual two-level tree: n0 (geary split) with a
// yes leaf n4 and a no subtree n1 (moran split) holding leaves n2 and n3.
func testContext() *scene.RenderContext {
	t := &tree.Tree{Root: split("m07_geary_ndvi", 0.41,
		leaf(0.9),
		split("m10_moran_ndwi", 1.2, leaf(0.8), leaf(0.2)),
	)}
	lay := layout.Compute(t, layout.Params{HorizontalSpacing: 100, VerticalSpacing: 10})
	return scene.NewContext(lay, edgegraph.Build(lay, edgegraph.Params{}))
}

// lineWith returns the output line containing marker, failing the test
// when it is absent or ambiguous assertions are impossible.
func lineWith(t *testing.T, doc, marker string) string {
	t.Helper()
	for _, line := range strings.Split(doc, "\n") {
		if strings.Contains(line, marker) {
			return line
		}
	}
	t.Fatalf("no line containing %q in:\n%s", marker, doc)
	return ""
}

func TestRenderDocumentShape(t *testing.T) {
	doc := string(Render(testContext(), WithNamespace("t")))

	if !strings.HasPrefix(doc, "<svg xmlns=\"http://www.w3.org/2000/svg\"") {
		t.Errorf("document does not start with an svg element:\n%s", doc[:80])
	}
	if !strings.HasSuffix(doc, "</svg>\n") {
		t.Errorf("document does not end with </svg>")
	}
	for _, want := range []string{"viewBox=\"", "<style>", "<script type=\"text/javascript\"><![CDATA[", "]]></script>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRenderContainsElements(t *testing.T) {
	doc := string(Render(testContext(), WithNamespace("t")))

	for _, want := range []string{
		"id=\"node-n0\"", "id=\"node-n1\"", "id=\"node-n2\"", "id=\"node-n3\"", "id=\"node-n4\"",
		"id=\"edge-n0-n1\"",
		"id=\"edge-n2-n2:scale\"", "id=\"edge-n3-n3:scale\"", "id=\"edge-n4-n4:scale\"",
		"id=\"axis\"", "id=\"axis-t\"", "fill=\"url(#axis-t)\"",
		"id=\"strip-t-n0\"", "fill=\"url(#strip-t-n0)\"",
		"id=\"strip-t-n1\"", "fill=\"url(#strip-t-n1)\"",
		"id=\"popup-t\"",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRenderDataAttributes(t *testing.T) {
	doc := string(Render(testContext(), WithNamespace("t")))

	n4 := lineWith(t, doc, "id=\"node-n4\"")
	if !strings.Contains(n4, "data-overlay=\"Geary C NDVI (m07) ≥ 0.41\"") {
		t.Errorf("n4 overlay attribute wrong: %s", n4)
	}
	if !strings.Contains(n4, "data-highlights=\"n4-n4:scale\"") {
		t.Errorf("n4 highlights attribute wrong: %s", n4)
	}

	n1 := lineWith(t, doc, "id=\"node-n1\"")
	if !strings.Contains(n1, "data-overlay=\"Geary C NDVI (m07) &lt; 0.41\"") {
		t.Errorf("n1 overlay attribute wrong: %s", n1)
	}

	scale := lineWith(t, doc, "id=\"edge-n4-n4:scale\"")
	if !strings.Contains(scale, "data-overlay=\"Geary C NDVI (m07) ≥ 0.41\"") {
		t.Errorf("scale edge overlay wrong: %s", scale)
	}
	if !strings.Contains(scale, " scale") {
		t.Errorf("scale edge missing scale class: %s", scale)
	}
}

func TestRenderTexts(t *testing.T) {
	doc := string(Render(testContext(), WithNamespace("t")))

	for _, want := range []string{
		">Geary C NDVI (m07)</text>",
		">Moran&#39;s I NDWI (m10)</text>",
		">0.41</text>",
		">Suitability</text>",
		">0.90</text>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing text %q", want)
		}
	}
}

func TestRenderEscapesLabels(t *testing.T) {
	tr := &tree.Tree{Root: split("m07_geary_ndvi", 0.41,
		&tree.Node{Kind: tree.KindLeaf, Suit: 0.9, Margin: math.NaN(), Label: `Salix & "Willow" <mire>`},
		leaf(0.2),
	)}
	lay := layout.Compute(tr, layout.Params{HorizontalSpacing: 100, VerticalSpacing: 10})
	ctx := scene.NewContext(lay, edgegraph.Build(lay, edgegraph.Params{}))

	doc := string(Render(ctx, WithNamespace("t")))
	if !strings.Contains(doc, "Salix &amp; &#34;Willow&#34; &lt;mire&gt;") {
		t.Errorf("label not escaped:\n%s", doc)
	}
	if strings.Contains(doc, `"Willow" <mire>`) {
		t.Errorf("raw label leaked into document")
	}
}

func TestRenderWithoutScript(t *testing.T) {
	doc := string(Render(testContext(), WithNamespace("t"), WithoutScript()))

	if strings.Contains(doc, "<script") {
		t.Errorf("static document contains a script element")
	}
	if strings.Contains(doc, "popup-t") {
		t.Errorf("static document contains the popup singleton")
	}
}

func TestRenderWithHighlight(t *testing.T) {
	doc := string(Render(testContext(), WithNamespace("t"), WithHighlight("n1")))

	lit := lineWith(t, doc, "id=\"edge-n0-n1\"")
	if !strings.Contains(lit, "class=\"edge hotspot lit\"") {
		t.Errorf("highlighted edge not lit: %s", lit)
	}
	other := lineWith(t, doc, "id=\"edge-n2-n2:scale\"")
	if strings.Contains(other, " lit") {
		t.Errorf("unrelated edge lit: %s", other)
	}
	if !strings.Contains(other, " dim") {
		t.Errorf("unrelated edge not faded: %s", other)
	}

	overlay := lineWith(t, doc, "visibility=\"visible\"")
	if !strings.Contains(overlay, "Geary C NDVI (m07) &lt; 0.41") {
		t.Errorf("pinned overlay text wrong: %s", overlay)
	}
}

func TestRenderWithHighlightUnknownID(t *testing.T) {
	doc := string(Render(testContext(), WithNamespace("t"), WithHighlight("n99")))

	if strings.Contains(doc, " lit") {
		t.Errorf("unknown highlight id lit an edge")
	}
	if strings.Contains(doc, " dim") {
		t.Errorf("unknown highlight id faded an edge")
	}
	if strings.Contains(doc, "visibility=\"visible\"") {
		t.Errorf("unknown highlight id produced an overlay")
	}
}

func TestRenderWithSize(t *testing.T) {
	doc := string(Render(testContext(), WithNamespace("t"), WithSize(800, 600)))

	if !strings.Contains(doc, "width=\"800\" height=\"600\"") {
		t.Errorf("size attributes not applied:\n%s", lineWith(t, doc, "<svg"))
	}
}

func TestRenderEmptyScene(t *testing.T) {
	lay := layout.Compute(&tree.Tree{}, layout.Params{})
	ctx := scene.NewContext(lay, edgegraph.Build(lay, edgegraph.Params{}))

	doc := string(Render(ctx, WithNamespace("t")))
	if !strings.Contains(doc, "viewBox=\"0.0 0.0 320.0 120.0\"") {
		t.Errorf("empty scene viewBox wrong:\n%s", doc)
	}
	if strings.Contains(doc, "<g id=\"node-") {
		t.Errorf("empty scene contains nodes")
	}
	if !strings.HasSuffix(doc, "</svg>\n") {
		t.Errorf("empty scene document not closed")
	}
}

func TestRenderFreshNamespaces(t *testing.T) {
	ctx := testContext()
	a := Render(ctx)
	b := Render(ctx)

	if bytes.Equal(a, b) {
		t.Errorf("two renders share a namespace")
	}
}

func TestTextColorFor(t *testing.T) {
	tests := []struct {
		fill string
		want string
	}{
		{"#FDE725", "#1c2733"},
		{"#440154", "#f5f7fa"},
		{"#ffffff", "#1c2733"},
		{"#000000", "#f5f7fa"},
		{"bogus", "#1c2733"},
		{"", "#1c2733"},
	}
	for _, tt := range tests {
		if got := textColorFor(tt.fill); got != tt.want {
			t.Errorf("textColorFor(%q) = %q, want %q", tt.fill, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 30); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 40)
	got := truncate(long, 30)
	if len([]rune(got)) != 30 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate(long) = %q", got)
	}
}
