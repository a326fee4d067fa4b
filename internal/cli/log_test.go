package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lbrandt/suitree/pkg/observability"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("test message")
	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}

	buf.Reset()
	logger.Debug("hidden at info level")
	if buf.Len() != 0 {
		t.Error("debug message should be filtered at info level")
	}
}

func TestLoggerContextRoundtrip(t *testing.T) {
	logger := newLogger(io.Discard, log.InfoLevel)
	ctx := withLogger(context.Background(), logger)

	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to a usable logger")
	}
}

func TestLoggerDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	h := loggerDiagnostics{logger: newLogger(&buf, log.InfoLevel)}

	h.OnDiagnostic(context.Background(), "tree", "LEAF_SUIT_MISSING", "leaf has no suitability", "id", "n4")

	out := buf.String()
	for _, want := range []string{"leaf has no suitability", "tree", "LEAF_SUIT_MISSING", "n4"} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostic output missing %q: %s", want, out)
		}
	}
}

func TestInstallDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.InstallDiagnostics()
	t.Cleanup(observability.Reset)

	observability.Diagnostics().OnDiagnostic(context.Background(), "semantics", "FEATURE_UNPARSED", "cannot parse feature code")

	if !strings.Contains(buf.String(), "cannot parse feature code") {
		t.Error("installed diagnostics should reach the CLI logger")
	}
}
