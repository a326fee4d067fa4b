package semantics

import (
	"strings"
	"sync"
)

// Runtime extensions to the label dictionaries and the palette table, fed
// from user configuration before rendering starts. Registered entries win
// over the built-in ones.

var (
	registryMu    sync.RWMutex
	statOverrides = map[string]string{}
	bandOverrides = map[string]string{}
	metaOverrides = map[string]Meta{}
)

// RegisterStatLabel adds or replaces the display label of a stat code.
// Empty arguments are ignored.
func RegisterStatLabel(code, label string) {
	if code == "" || label == "" {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	statOverrides[strings.ToLower(code)] = label
}

// RegisterBandLabel adds or replaces the display label of a band code.
// Empty arguments are ignored.
func RegisterBandLabel(code, label string) {
	if code == "" || label == "" {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	bandOverrides[strings.ToLower(code)] = label
}

// RegisterMeta adds or replaces the display semantics of a stat or band
// token. A registration with no palette stops is ignored.
func RegisterMeta(token string, m Meta) {
	if token == "" || len(m.Palette) == 0 {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	metaOverrides[strings.ToLower(token)] = m
}

// ResetRegistry drops all runtime registrations, restoring the built-in
// dictionaries. Tests use it as cleanup.
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	statOverrides = map[string]string{}
	bandOverrides = map[string]string{}
	metaOverrides = map[string]Meta{}
}

func statOverride(code string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	label, ok := statOverrides[strings.ToLower(code)]
	return label, ok
}

func bandOverride(code string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	label, ok := bandOverrides[strings.ToLower(code)]
	return label, ok
}

// metaOverride resolves a registered Meta for a feature code, stat token
// first to match the precedence of the built-in table.
func metaOverride(fc FeatureCode) (Meta, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if fc.Stat != "" {
		if m, ok := metaOverrides[strings.ToLower(fc.Stat)]; ok {
			return m, true
		}
	}
	if fc.Band != "" {
		if m, ok := metaOverrides[strings.ToLower(fc.Band)]; ok {
			return m, true
		}
	}
	return Meta{}, false
}
