package svg

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"unicode/utf8"
)

const documentCSS = `
.edge { fill: none; stroke: #9aa5b1; stroke-width: 1.6; transition: stroke 0.15s ease, stroke-width 0.15s ease, opacity 0.15s ease; }
.edge.scale { stroke-dasharray: 5 4; stroke-width: 1.2; }
.edge.lit { stroke: #d33682; stroke-width: 3; }
.edge.dim { opacity: 0.35; }
.node .box { stroke: #3d4852; stroke-width: 1.2; }
.node .indicator { stroke: #1c2733; stroke-width: 2; }
.hotspot { cursor: pointer; }
.hotspot:hover .box { stroke-width: 2.2; }
.title { font-size: 13px; font-weight: 600; fill: #1c2733; }
.detail { font-size: 12px; fill: #5f6b76; }
.leaf-title { font-size: 13px; font-weight: 600; }
.score { font-size: 15px; font-weight: 700; }
.axis-label { font-size: 11px; fill: #5f6b76; }
.popup { pointer-events: none; }
.popup rect { fill: #1c2733; opacity: 0.92; }
.popup text { font-size: 12px; fill: #f5f7fa; }
`

// hoverJS is an fmt template; its sole verb receives the popup group id.
// Entering a hotspot marks its highlight set before showing the popup;
// leaving clears the marks before hiding it. Edges outside an active
// highlight set fade, so the lit path stands out.
const hoverJS = `(function () {
  var popup = document.getElementById(%q);
  var label = popup ? popup.querySelector('text') : null;
  var frame = popup ? popup.querySelector('rect') : null;
  function mark(ids) {
    document.querySelectorAll('.edge').forEach(function (p) {
      var on = ids.indexOf(p.id.replace('edge-', '')) >= 0;
      p.classList.toggle('lit', on);
      p.classList.toggle('dim', ids.length > 0 && !on);
    });
  }
  function show(el) {
    if (!popup) { return; }
    var text = el.getAttribute('data-overlay') || '';
    if (!text) { return; }
    label.textContent = text;
    var t = label.getBBox();
    frame.setAttribute('width', (t.width + 16).toFixed(1));
    var box = el.getBBox();
    var x = box.x + box.width + 10;
    var y = box.y - 16;
    popup.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
    popup.setAttribute('visibility', 'visible');
  }
  function hide() {
    if (popup) { popup.setAttribute('visibility', 'hidden'); }
  }
  document.querySelectorAll('.hotspot').forEach(function (el) {
    el.addEventListener('mouseenter', function () {
      mark((el.getAttribute('data-highlights') || '').split(' ').filter(Boolean));
      show(el);
    });
    el.addEventListener('mouseleave', function () {
      mark([]);
      hide();
    });
  });
})();`

const overlayHeight = 26

// overlayWidth estimates the popup box width for statically rendered
// overlays, where no layout engine is available to measure text.
func overlayWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text))*7.2 + 16
}

// escapeXML escapes s for use in XML text and attribute values.
func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// truncate shortens s to max runes, ending with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// textColorFor picks a readable text color against the given hex fill.
func textColorFor(hex string) string {
	const dark, light = "#1c2733", "#f5f7fa"
	if len(hex) != 7 || hex[0] != '#' {
		return dark
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return dark
	}
	r := float64(v >> 16 & 0xff)
	g := float64(v >> 8 & 0xff)
	b := float64(v & 0xff)
	if 0.2126*r+0.7152*g+0.0722*b > 150 {
		return dark
	}
	return light
}
