package semantics

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		code string
		want FeatureCode
	}{
		{
			name: "full code",
			code: "m07_geary_ndvi",
			want: FeatureCode{Season: "m07", Stat: "geary", Band: "ndvi"},
		},
		{
			name: "autumn moran",
			code: "m10_moran_ndwi",
			want: FeatureCode{Season: "m10", Stat: "moran", Band: "ndwi"},
		},
		{
			name: "empty input",
			code: "",
			want: FeatureCode{},
		},
		{
			name: "single token",
			code: "m07",
			want: FeatureCode{Season: "m07"},
		},
		{
			name: "two tokens",
			code: "m07_geary",
			want: FeatureCode{Season: "m07", Stat: "geary"},
		},
		{
			name: "extra separators stay in band",
			code: "m07_geary_ndvi_raw",
			want: FeatureCode{Season: "m07", Stat: "geary", Band: "ndvi_raw"},
		},
		{
			name: "no separators",
			code: "elevation",
			want: FeatureCode{Season: "elevation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.code); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.code, got, tt.want)
			}
		})
	}
}

func TestDecisionText(t *testing.T) {
	tests := []struct {
		name      string
		feature   string
		threshold float64
		absent    bool // threshold missing from the input, not merely non-finite
		yes       bool
		want      string
	}{
		{
			name:      "affirmative branch",
			feature:   "m07_geary_ndvi",
			threshold: 0.4123,
			yes:       true,
			want:      "Geary C NDVI (m07) ≥ 0.41",
		},
		{
			name:      "negative branch",
			feature:   "m07_geary_ndvi",
			threshold: 0.4123,
			yes:       false,
			want:      "Geary C NDVI (m07) < 0.41",
		},
		{
			name:      "moran stat label",
			feature:   "m10_moran_ndwi",
			threshold: 1.5,
			yes:       true,
			want:      "Moran's I NDWI (m10) ≥ 1.50",
		},
		{
			name:      "unknown tokens upper-cased",
			feature:   "m08_tasseled_cap",
			threshold: 0.25,
			yes:       false,
			want:      "TASSELED CAP (m08) < 0.25",
		},
		{
			name:      "missing feature falls back",
			feature:   "",
			threshold: 0.5,
			yes:       true,
			want:      FallbackText,
		},
		{
			name:      "absent threshold falls back",
			feature:   "m07_geary_ndvi",
			threshold: math.NaN(),
			absent:    true,
			yes:       true,
			want:      FallbackText,
		},
		{
			name:      "present NaN threshold renders empty value",
			feature:   "m07_geary_ndvi",
			threshold: math.NaN(),
			yes:       true,
			want:      "Geary C NDVI (m07) ≥",
		},
		{
			name:      "positive infinity renders empty value",
			feature:   "m07_geary_ndvi",
			threshold: math.Inf(1),
			yes:       false,
			want:      "Geary C NDVI (m07) <",
		},
		{
			name:      "partial code omits missing tokens",
			feature:   "m07_geary",
			threshold: 0.9,
			yes:       true,
			want:      "Geary C (m07) ≥ 0.90",
		},
		{
			name:      "threshold rounds to two decimals",
			feature:   "m12_mean_ndvi",
			threshold: 0.005,
			yes:       true,
			want:      "Mean NDVI (m12) ≥ 0.01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecisionText(tt.feature, tt.threshold, !tt.absent, tt.yes)
			if got != tt.want {
				t.Errorf("DecisionText(%q, %v, %v, %v) = %q, want %q",
					tt.feature, tt.threshold, !tt.absent, tt.yes, got, tt.want)
			}
		})
	}
}

func TestFeatureLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"m07_geary_ndvi", "Geary C NDVI (m07)"},
		{"m10_moran_ndwi", "Moran's I NDWI (m10)"},
		{"m07_geary", "Geary C (m07)"},
		{"elevation", "(elevation)"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FeatureLabel(tt.code); got != tt.want {
			t.Errorf("FeatureLabel(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStatLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"geary", "Geary C"},
		{"GEARY", "Geary C"},
		{"Moran", "Moran's I"},
		{"mean", "Mean"},
		{"std", "StdDev"},
		{"stdev", "StdDev"},
		{"entropy", "ENTROPY"},
	}

	for _, tt := range tests {
		if got := StatLabel(tt.code); got != tt.want {
			t.Errorf("StatLabel(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestBandLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ndvi", "NDVI"},
		{"NDWI", "NDWI"},
		{"evi", "EVI"},
		{"savi", "SAVI"},
		{"swir", "SWIR"},
	}

	for _, tt := range tests {
		if got := BandLabel(tt.code); got != tt.want {
			t.Errorf("BandLabel(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestMetaFor(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		palette []string
		min     float64
		max     float64
	}{
		{"geary takes stat palette", "m07_geary_ndvi", PaletteGeary, 0.0, 1.5},
		{"moran takes stat palette", "m10_moran_ndwi", PaletteMoran, -0.2, 4.0},
		{"mean ndvi takes band palette", "m12_mean_ndvi", PaletteNDVI, 0.0, 1.0},
		{"mean ndwi takes band palette", "m12_mean_ndwi", PaletteNDWI, -1.0, 1.0},
		{"unknown is neutral", "m01_foo_bar", PaletteNeutral, 0.0, 1.0},
		{"empty is neutral", "", PaletteNeutral, 0.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MetaFor(Parse(tt.code))
			if len(m.Palette) != len(tt.palette) || m.Palette[0] != tt.palette[0] {
				t.Errorf("palette = %v, want %v", m.Palette, tt.palette)
			}
			if m.Min != tt.min || m.Max != tt.max {
				t.Errorf("range = [%v, %v], want [%v, %v]", m.Min, m.Max, tt.min, tt.max)
			}
		})
	}
}

func TestThresholdRel(t *testing.T) {
	geary := MetaFor(Parse("m07_geary_ndvi"))

	tests := []struct {
		name      string
		meta      Meta
		threshold float64
		want      float64
	}{
		{"midpoint", geary, 0.75, 0.5},
		{"clamped low", geary, -2.0, 0.05},
		{"clamped high", geary, 10.0, 0.95},
		{"NaN resolves to midpoint", geary, math.NaN(), 0.5},
		{"degenerate range resolves to midpoint", Meta{Min: 1, Max: 1}, 1.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThresholdRel(tt.meta, tt.threshold); got != tt.want {
				t.Errorf("ThresholdRel(%v) = %v, want %v", tt.threshold, got, tt.want)
			}
		})
	}
}

func TestSuitabilityColor(t *testing.T) {
	tests := []struct {
		name string
		suit float64
		want string
	}{
		{"zero is first stop", 0.0, Viridis[0]},
		{"one is last stop", 1.0, Viridis[len(Viridis)-1]},
		{"clamped above", 3.0, Viridis[len(Viridis)-1]},
		{"clamped below", -1.0, Viridis[0]},
		{"NaN lands mid-scale", math.NaN(), Viridis[len(Viridis)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuitabilityColor(tt.suit); got != tt.want {
				t.Errorf("SuitabilityColor(%v) = %q, want %q", tt.suit, got, tt.want)
			}
		})
	}
}
