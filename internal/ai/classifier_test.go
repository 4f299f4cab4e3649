package ai

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassificationErrorMatchesKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
		other  error
	}{
		{name: "transport", err: NewTransportError(502, true, errors.New("bad gateway")), target: ErrTransport, other: ErrParse},
		{name: "parse", err: NewParseError(errors.New("no candidates")), target: ErrParse, other: ErrEmptyResult},
		{name: "empty", err: NewEmptyResultError(nil), target: ErrEmptyResult, other: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := fmt.Errorf("classify bio: %w", tt.err)
			if !errors.Is(wrapped, tt.target) {
				t.Fatalf("expected %v to match %v", wrapped, tt.target)
			}
			if errors.Is(wrapped, tt.other) {
				t.Fatalf("expected %v not to match %v", wrapped, tt.other)
			}
			if errors.Is(wrapped, ErrValidation) {
				t.Fatal("classification errors are not validation errors")
			}
		})
	}
}

func TestClassificationErrorMessage(t *testing.T) {
	err := NewTransportError(503, true, errors.New("unavailable"))
	if got := err.Error(); got != "classifier transport failed: unavailable" {
		t.Fatalf("unexpected message: %q", got)
	}

	if got := NewEmptyResultError(nil).Error(); got != ErrEmptyResult.Error() {
		t.Fatalf("unexpected message: %q", got)
	}

	if got := (&ClassificationError{}).Error(); got != "classification failed" {
		t.Fatalf("unexpected message for zero error: %q", got)
	}
}

func TestIsTemporary(t *testing.T) {
	if !IsTemporary(fmt.Errorf("wrap: %w", NewTransportError(500, true, nil))) {
		t.Fatal("expected temporary transport error")
	}
	if IsTemporary(NewTransportError(400, false, nil)) {
		t.Fatal("expected permanent transport error")
	}
	if IsTemporary(NewParseError(nil)) {
		t.Fatal("parse errors are never temporary")
	}
	if IsTemporary(errors.New("plain")) {
		t.Fatal("plain errors are never temporary")
	}
}

func TestTemporaryStatus(t *testing.T) {
	for code, want := range map[int]bool{200: false, 400: false, 403: false, 429: true, 500: true, 503: true} {
		if got := TemporaryStatus(code); got != want {
			t.Fatalf("status %d: expected %v, got %v", code, want, got)
		}
	}
}
