package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lbrandt/suitree/pkg/errors"
	"github.com/lbrandt/suitree/pkg/observability"
	"github.com/lbrandt/suitree/pkg/semantics"
)

type recordingDiagnostics struct {
	observability.NoopDiagnosticHooks
	codes []string
}

func (r *recordingDiagnostics) OnDiagnostic(_ context.Context, _, code, _ string, _ ...any) {
	r.codes = append(r.codes, code)
}

func (r *recordingDiagnostics) has(code string) bool {
	for _, c := range r.codes {
		if c == code {
			return true
		}
	}
	return false
}

func record(t *testing.T) *recordingDiagnostics {
	t.Helper()
	rec := &recordingDiagnostics{}
	observability.SetDiagnosticHooks(rec)
	t.Cleanup(observability.Reset)
	return rec
}

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suitree.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleConfig = `
[layout]
horizontal_spacing = 300
vertical_spacing = 150

[geometry]
node_width = 200
node_height = 60

[geometry.axis]
x = 900
y0 = 600
y1 = 0

[palette.evi]
stops = ["#f7fcf5", "#74c476", "#00441b"]
min = -0.5
max = 1.0

[labels.stats]
entropy = "Shannon Entropy"

[labels.bands]
swir = "SWIR-1"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(write(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Layout.HorizontalSpacing != 300 || cfg.Layout.VerticalSpacing != 150 {
		t.Errorf("layout = %+v, want 300/150", cfg.Layout)
	}
	if cfg.Geometry.NodeWidth != 200 || cfg.Geometry.NodeHeight != 60 {
		t.Errorf("geometry = %+v, want 200x60", cfg.Geometry)
	}
	if cfg.Geometry.Axis.X != 900 || cfg.Geometry.Axis.Y0 != 600 {
		t.Errorf("axis = %+v, want x=900 y0=600", cfg.Geometry.Axis)
	}
	if p, ok := cfg.Palettes["evi"]; !ok || len(p.Stops) != 3 || p.Min != -0.5 {
		t.Errorf("palette evi = %+v", cfg.Palettes["evi"])
	}
	if cfg.Labels.Stats["entropy"] != "Shannon Entropy" {
		t.Errorf("labels = %+v", cfg.Labels)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	_, err := Load(write(t, "[layout\nbroken"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadReportsUnknownKeys(t *testing.T) {
	rec := record(t)

	_, err := Load(write(t, "[layout]\nhorizontal_spacing = 300\nwrong_knob = 5\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !rec.has("UNDECODED_KEYS") {
		t.Errorf("diagnostics = %v, want UNDECODED_KEYS", rec.codes)
	}
}

func TestLoadValidatesPalettes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"single stop", "[palette.evi]\nstops = [\"#ffffff\"]\nmin = 0.0\nmax = 1.0\n"},
		{"empty range", "[palette.evi]\nstops = [\"#000000\", \"#ffffff\"]\nmin = 1.0\nmax = 1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Cleanup(semantics.ResetRegistry)

	cfg, err := Load(write(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	lp, gp := cfg.Apply()
	if lp.HorizontalSpacing != 300 || gp.NodeWidth != 200 {
		t.Errorf("Apply() params = %+v / %+v", lp, gp)
	}
	if got := semantics.StatLabel("entropy"); got != "Shannon Entropy" {
		t.Errorf("StatLabel(entropy) = %q, want the configured label", got)
	}
	if got := semantics.BandLabel("swir"); got != "SWIR-1" {
		t.Errorf("BandLabel(swir) = %q, want the configured label", got)
	}
	if m := semantics.MetaFor(semantics.Parse("m07_mean_evi")); m.Min != -0.5 || m.Max != 1.0 {
		t.Errorf("MetaFor(evi) = %+v, want configured range", m)
	}
}

func TestLoadDefaultMissingIsZero(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Layout.HorizontalSpacing != 0 {
		t.Errorf("cfg = %+v, want zero config", cfg)
	}
}
