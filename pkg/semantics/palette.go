package semantics

import (
	"math"
	"strings"
)

// Gradient stops for the known feature families, ordered low to high.
var (
	PaletteNDVI  = []string{"#f2f2f2", "#a3c586", "#2f6b3a"}
	PaletteNDWI  = []string{"#f7fbff", "#6baed6", "#08519c"}
	PaletteMoran = []string{"#fee8c8", "#fdbb84", "#e34a33"}
	PaletteGeary = []string{"#f7f4f9", "#998ec3", "#542788"}

	// PaletteNeutral shades features with no known semantics.
	PaletteNeutral = []string{"#dddddd", "#aaaaaa", "#666666"}
)

// Viridis is the suitability color scale, 0 to 1.
var Viridis = []string{
	"#440154", "#482475", "#414487", "#355F8D", "#2A788E",
	"#21918C", "#22A884", "#44BF70", "#7AD151", "#BDDF26", "#FDE725",
}

// Meta describes how a feature's values are shaded and scaled: the gradient
// painted across its node box and the value range used to place the
// threshold indicator within it.
type Meta struct {
	Palette  []string
	Min, Max float64
}

// MetaFor resolves display semantics for a parsed feature code.
//
// Spatial statistics carry their own scales (Moran's I is unbounded below
// and above the [0,1] band range, Geary's C tops out near 1.5), so the stat
// takes precedence over the band when both are known. Runtime registrations
// are consulted before the built-in table, stat first. Unknown codes get
// the neutral palette and a [0,1] range.
func MetaFor(fc FeatureCode) Meta {
	if m, ok := metaOverride(fc); ok {
		return m
	}
	switch {
	case strings.EqualFold(fc.Stat, "moran"):
		return Meta{Palette: PaletteMoran, Min: -0.2, Max: 4.0}
	case strings.EqualFold(fc.Stat, "geary"):
		return Meta{Palette: PaletteGeary, Min: 0.0, Max: 1.5}
	case strings.EqualFold(fc.Band, "ndvi"):
		return Meta{Palette: PaletteNDVI, Min: 0.0, Max: 1.0}
	case strings.EqualFold(fc.Band, "ndwi"):
		return Meta{Palette: PaletteNDWI, Min: -1.0, Max: 1.0}
	}
	return Meta{Palette: PaletteNeutral, Min: 0.0, Max: 1.0}
}

// ThresholdRel maps a threshold into its relative position within the
// feature's value range, for placing the indicator line inside a node box.
// The result is kept off the box edges by clamping to [0.05, 0.95]; a
// non-finite position resolves to the midpoint.
func ThresholdRel(m Meta, threshold float64) float64 {
	rel := (threshold - m.Min) / (m.Max - m.Min)
	if math.IsNaN(rel) || math.IsInf(rel, 0) {
		rel = 0.5
	}
	return math.Max(0.05, math.Min(0.95, rel))
}

// SuitabilityColor picks the viridis stop nearest to a suitability value,
// clamped into [0,1]. Used for leaf tinting in non-gradient sinks.
func SuitabilityColor(suit float64) string {
	if math.IsNaN(suit) {
		suit = 0.5
	}
	suit = math.Max(0, math.Min(1, suit))
	idx := int(suit * float64(len(Viridis)-1))
	return Viridis[idx]
}
