package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), "working")
	s.Stop()
	s.Stop() // must not block or panic
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, "working")
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
}
