// Package semantics decodes coded feature names into display semantics.
//
// Split features in a surrogate tree are identified by coded names of the
// form <season>_<stat>_<band> (for example "m07_geary_ndvi": July, Geary's C,
// NDVI). This package parses those codes, resolves the tokens against static
// label dictionaries, and composes the human-readable decision text shown
// when a user hovers a split ("Geary C NDVI (m07) ≥ 0.41").
//
// Nothing in this package fails. Malformed codes degrade to literal or
// fallback labels and are reported through the observability diagnostics
// hooks, because a wrong label in an interactive display beats a crash.
package semantics

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/lbrandt/suitree/pkg/observability"
)

// FallbackText is the decision label used when a node has no usable
// feature or threshold.
const FallbackText = "Decision Path"

// FeatureCode is a parsed feature identifier. Fields left empty were not
// present in the code; an empty field is distinct from an unrecognized one.
type FeatureCode struct {
	Season string // e.g. "m07"
	Stat   string // e.g. "geary"
	Band   string // e.g. "ndvi"
}

// Parse splits a coded feature name into at most three tokens and assigns
// them positionally to season, stat and band, regardless of content. Missing
// tokens leave the corresponding field empty; Parse never fails.
func Parse(code string) FeatureCode {
	if code == "" {
		return FeatureCode{}
	}

	parts := strings.SplitN(code, "_", 3)
	fc := FeatureCode{Season: parts[0]}
	if len(parts) > 1 {
		fc.Stat = parts[1]
	}
	if len(parts) > 2 {
		fc.Band = parts[2]
	}
	return fc
}

// statLabels maps stat codes to display labels. Lookup is case-insensitive.
var statLabels = map[string]string{
	"mean":  "Mean",
	"std":   "StdDev",
	"stdev": "StdDev",
	"moran": "Moran's I",
	"geary": "Geary C",
}

// bandLabels maps spectral band codes to display labels. Lookup is
// case-insensitive.
var bandLabels = map[string]string{
	"ndvi": "NDVI",
	"ndwi": "NDWI",
	"evi":  "EVI",
	"savi": "SAVI",
}

// StatLabel resolves a stat code to its display label, consulting runtime
// registrations first. Unknown codes fall back to their upper-cased
// literal form.
func StatLabel(code string) string {
	if label, ok := statOverride(code); ok {
		return label
	}
	if label, ok := statLabels[strings.ToLower(code)]; ok {
		return label
	}
	return strings.ToUpper(code)
}

// BandLabel resolves a band code to its display label, consulting runtime
// registrations first. Unknown codes fall back to their upper-cased
// literal form.
func BandLabel(code string) string {
	if label, ok := bandOverride(code); ok {
		return label
	}
	if label, ok := bandLabels[strings.ToLower(code)]; ok {
		return label
	}
	return strings.ToUpper(code)
}

// FeatureLabel composes the display title of a feature code without any
// comparison: "Geary C NDVI (m07)". An empty code yields an empty string.
func FeatureLabel(feature string) string {
	fc := Parse(feature)

	parts := make([]string, 0, 3)
	if fc.Stat != "" {
		parts = append(parts, StatLabel(fc.Stat))
	}
	if fc.Band != "" {
		parts = append(parts, BandLabel(fc.Band))
	}
	if fc.Season != "" {
		parts = append(parts, "("+fc.Season+")")
	}
	return strings.Join(parts, " ")
}

// DecisionText composes the human-readable label for a split decision.
// The yes flag selects the comparison operator: "≥" for the affirmative
// branch, "<" otherwise. hasThreshold tells a threshold absent from the
// input apart from one that is present but not finite; both carry NaN.
//
// Degradation rules:
//   - empty feature or absent threshold: returns FallbackText and reports
//     a diagnostic
//   - unknown stat/band token: upper-cased literal form
//   - present non-finite threshold: the numeric part renders as an empty
//     string
func DecisionText(feature string, threshold float64, hasThreshold, yes bool) string {
	if feature == "" {
		diag("EMPTY_FEATURE", "no feature on decision node, using fallback label")
		return FallbackText
	}
	if !hasThreshold {
		diag("MISSING_THRESHOLD", "no threshold on decision node, using fallback label", "feature", feature)
		return FallbackText
	}

	op := "<"
	if yes {
		op = "≥"
	}

	value := ""
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		diag("NON_FINITE_THRESHOLD", "threshold is not finite, rendering empty value", "feature", feature)
	} else {
		value = fmt.Sprintf("%.2f", threshold)
	}

	parts := make([]string, 0, 3)
	if label := FeatureLabel(feature); label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, op)
	if value != "" {
		parts = append(parts, value)
	}

	return strings.Join(parts, " ")
}

func diag(code, msg string, kv ...any) {
	observability.Diagnostics().OnDiagnostic(context.Background(), "semantics", code, msg, kv...)
}
