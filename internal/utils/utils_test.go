package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForElapses(t *testing.T) {
	if err := WaitFor(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error for zero duration: %v", err)
	}
}

func TestWaitForHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := WaitFor(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("WaitFor did not return promptly")
	}

	if err := WaitFor(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for zero duration, got %v", err)
	}
}
