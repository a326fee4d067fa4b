package semantics

import "testing"

func TestRegistryOverrides(t *testing.T) {
	t.Cleanup(ResetRegistry)

	RegisterStatLabel("entropy", "Shannon Entropy")
	RegisterBandLabel("swir", "SWIR-1")
	RegisterMeta("entropy", Meta{Palette: []string{"#000000", "#ffffff"}, Min: 0, Max: 8})

	if got := StatLabel("ENTROPY"); got != "Shannon Entropy" {
		t.Errorf("StatLabel(ENTROPY) = %q, want registered label", got)
	}
	if got := BandLabel("swir"); got != "SWIR-1" {
		t.Errorf("BandLabel(swir) = %q, want registered label", got)
	}
	if m := MetaFor(Parse("m07_entropy_swir")); m.Max != 8 {
		t.Errorf("MetaFor max = %v, want 8", m.Max)
	}

	// Built-ins stay intact for codes without an override.
	if got := StatLabel("geary"); got != "Geary C" {
		t.Errorf("StatLabel(geary) = %q, want built-in label", got)
	}
}

func TestRegistryReplacesBuiltin(t *testing.T) {
	t.Cleanup(ResetRegistry)

	RegisterStatLabel("geary", "Geary's C")
	if got := StatLabel("geary"); got != "Geary's C" {
		t.Errorf("StatLabel(geary) = %q, want override", got)
	}

	ResetRegistry()
	if got := StatLabel("geary"); got != "Geary C" {
		t.Errorf("after reset StatLabel(geary) = %q, want built-in", got)
	}
}

func TestRegistryMetaPrecedence(t *testing.T) {
	t.Cleanup(ResetRegistry)

	// A band registration is consulted before the built-in stat table.
	RegisterMeta("ndvi", Meta{Palette: []string{"#111111", "#222222"}, Min: 0, Max: 2})
	if m := MetaFor(Parse("m07_geary_ndvi")); m.Max != 2 {
		t.Errorf("band override max = %v, want 2", m.Max)
	}

	// A stat registration beats a band registration.
	RegisterMeta("geary", Meta{Palette: []string{"#333333", "#444444"}, Min: 0, Max: 3})
	if m := MetaFor(Parse("m07_geary_ndvi")); m.Max != 3 {
		t.Errorf("stat override max = %v, want 3", m.Max)
	}
}

func TestRegistryIgnoresEmptyRegistrations(t *testing.T) {
	t.Cleanup(ResetRegistry)

	RegisterStatLabel("", "nameless")
	RegisterStatLabel("zzz", "")
	RegisterMeta("", Meta{Palette: []string{"#000000"}})
	RegisterMeta("zzz", Meta{})

	if got := StatLabel("zzz"); got != "ZZZ" {
		t.Errorf("StatLabel(zzz) = %q, want literal fallback", got)
	}
	if m := MetaFor(Parse("m07_zzz_qqq")); m.Palette[0] != PaletteNeutral[0] {
		t.Errorf("MetaFor palette = %v, want neutral", m.Palette)
	}
}
