package svg

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/lbrandt/suitree/pkg/scene"
)

const (
	axisWidth         = 14
	boxRadius         = 6
	stripInset        = 6
	stripHeight       = 12
	indicatorOverhang = 2
	titleMaxRunes     = 30
)

func (b *builder) renderDefs(buf *bytes.Buffer, ns string) {
	strips := false
	for _, n := range b.nodes {
		if !n.Leaf && len(n.Palette) >= 2 {
			strips = true
			break
		}
	}
	axis := b.axis != nil && len(b.axis.Stops) >= 2
	if !strips && !axis {
		return
	}

	buf.WriteString("<defs>\n")
	if axis {
		fmt.Fprintf(buf, "<linearGradient id=\"axis-%s\" x1=\"0\" y1=\"1\" x2=\"0\" y2=\"0\">", ns)
		writeStops(buf, b.axis.Stops)
		buf.WriteString("</linearGradient>\n")
	}
	for _, n := range b.nodes {
		if n.Leaf || len(n.Palette) < 2 {
			continue
		}
		fmt.Fprintf(buf, "<linearGradient id=\"strip-%s-%s\">", ns, n.ID)
		writeStops(buf, n.Palette)
		buf.WriteString("</linearGradient>\n")
	}
	buf.WriteString("</defs>\n")
}

func writeStops(buf *bytes.Buffer, stops []string) {
	for i, c := range stops {
		off := float64(i) / float64(len(stops)-1) * 100
		fmt.Fprintf(buf, "<stop offset=\"%.1f%%\" stop-color=%q/>", off, c)
	}
}

func (b *builder) renderEdges(buf *bytes.Buffer) {
	for _, e := range b.edges {
		class := "edge hotspot"
		if e.Scale {
			class += " scale"
		}
		if b.marked[e.ID] {
			class += " lit"
		} else if len(b.marked) > 0 {
			class += " dim"
		}
		fmt.Fprintf(buf, "<path id=\"edge-%s\" class=%q d=\"M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f\"",
			e.ID, class,
			e.Source.X, e.Source.Y, e.C1.X, e.C1.Y, e.C2.X, e.C2.Y, e.Target.X, e.Target.Y)
		if e.Label != "" {
			fmt.Fprintf(buf, " data-overlay=\"%s\"", escapeXML(e.Label))
		}
		if len(e.Highlights) > 0 {
			fmt.Fprintf(buf, " data-highlights=\"%s\"", escapeXML(strings.Join(e.Highlights, " ")))
		}
		buf.WriteString("/>\n")
	}
}

func (b *builder) renderAxis(buf *bytes.Buffer, ns string) {
	if b.axis == nil {
		return
	}
	a := b.axis
	top := math.Min(a.Y0, a.Y1)
	height := math.Abs(a.Y0 - a.Y1)

	fill := "#8a939c"
	if len(a.Stops) >= 2 {
		fill = fmt.Sprintf("url(#axis-%s)", ns)
	}
	fmt.Fprintf(buf, "<rect id=\"axis\" x=\"%.1f\" y=\"%.1f\" width=\"%d\" height=\"%.1f\" rx=\"4\" fill=%q/>\n",
		a.X-axisWidth/2, top, axisWidth, height, fill)

	oneOff, zeroOff := -10.0, 20.0
	if a.Y1 > a.Y0 {
		oneOff, zeroOff = 20.0, -10.0
	}
	fmt.Fprintf(buf, "<text class=\"axis-label\" x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">1</text>\n", a.X, a.Y1+oneOff)
	fmt.Fprintf(buf, "<text class=\"axis-label\" x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">0</text>\n", a.X, a.Y0+zeroOff)
}

func (b *builder) renderNodes(buf *bytes.Buffer, ns string) {
	for _, n := range b.nodes {
		if n.Leaf {
			b.renderLeaf(buf, n)
		} else {
			b.renderSplit(buf, n, ns)
		}
	}
}

func (b *builder) renderSplit(buf *bytes.Buffer, v scene.NodeVisual, ns string) {
	x, y := v.X-v.Width/2, v.Y-v.Height/2
	openNodeGroup(buf, v, "node hotspot")
	fmt.Fprintf(buf, "<rect class=\"box\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"%d\" fill=\"#fdfdfc\"/>\n",
		x, y, v.Width, v.Height, boxRadius)

	if len(v.Palette) >= 2 {
		sx := x + stripInset
		sw := v.Width - 2*stripInset
		sy := y + v.Height - stripInset - stripHeight
		fmt.Fprintf(buf, "<rect class=\"strip\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%d\" rx=\"3\" fill=\"url(#strip-%s-%s)\"/>\n",
			sx, sy, sw, stripHeight, ns, v.ID)
		ix := sx + v.IndicatorRel*sw
		fmt.Fprintf(buf, "<line class=\"indicator\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
			ix, sy-indicatorOverhang, ix, sy+stripHeight+indicatorOverhang)
	}

	fmt.Fprintf(buf, "<text class=\"title\" x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">%s</text>\n",
		v.X, y+22, escapeXML(truncate(v.Title, titleMaxRunes)))
	if v.Detail != "" {
		fmt.Fprintf(buf, "<text class=\"detail\" x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">%s</text>\n",
			v.X, y+40, escapeXML(v.Detail))
	}
	buf.WriteString("</g>\n")
}

func (b *builder) renderLeaf(buf *bytes.Buffer, v scene.NodeVisual) {
	x, y := v.X-v.Width/2, v.Y-v.Height/2
	openNodeGroup(buf, v, "node leaf hotspot")

	fill := v.Fill
	if fill == "" {
		fill = "#cccccc"
	}
	// Class fills in the stylesheet would win over fill attributes, so leaf
	// text carries its contrast color as an inline style.
	text := fmt.Sprintf("fill: %s", textColorFor(fill))

	fmt.Fprintf(buf, "<rect class=\"box\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"%d\" fill=%q/>\n",
		x, y, v.Width, v.Height, boxRadius, fill)
	fmt.Fprintf(buf, "<text class=\"leaf-title\" style=%q x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">%s</text>\n",
		text, v.X, v.Y-4, escapeXML(truncate(v.Title, titleMaxRunes)))
	if v.Detail != "" {
		fmt.Fprintf(buf, "<text class=\"score\" style=%q x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">%s</text>\n",
			text, v.X, v.Y+18, escapeXML(v.Detail))
	}
	buf.WriteString("</g>\n")
}

func openNodeGroup(buf *bytes.Buffer, v scene.NodeVisual, class string) {
	fmt.Fprintf(buf, "<g id=\"node-%s\" class=%q", v.ID, class)
	if v.Overlay != "" {
		fmt.Fprintf(buf, " data-overlay=\"%s\"", escapeXML(v.Overlay))
	}
	if len(v.Highlights) > 0 {
		fmt.Fprintf(buf, " data-highlights=\"%s\"", escapeXML(strings.Join(v.Highlights, " ")))
	}
	buf.WriteString(">\n")
}

func (b *builder) renderOverlay(buf *bytes.Buffer) {
	if b.overlay == nil || b.overlay.Text == "" {
		return
	}
	fmt.Fprintf(buf, "<g class=\"popup\" visibility=\"visible\" transform=\"translate(%.1f,%.1f)\">",
		b.overlay.X, b.overlay.Y)
	fmt.Fprintf(buf, "<rect width=\"%.1f\" height=\"%d\" rx=\"5\"/>", overlayWidth(b.overlay.Text), overlayHeight)
	fmt.Fprintf(buf, "<text x=\"8\" y=\"17\">%s</text>", escapeXML(b.overlay.Text))
	buf.WriteString("</g>\n")
}
