// Package ai defines the contract between the waste classifier and the
// generative model that backs it.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecolink/ecolink/internal/waste"
)

// Generator sends a single prompt to a generative model and returns its text reply.
// Implementations report failures wrapped in a *ClassificationError of kind
// Transport or Parse.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Classifier turns a free-text bio into vocabulary tags.
type Classifier interface {
	Classify(ctx context.Context, bio string) ([]waste.Tag, error)
}

var (
	// ErrValidation is returned when required input is missing. No request is made.
	ErrValidation = errors.New("validation error")

	ErrTransport   = errors.New("classifier transport failed")
	ErrParse       = errors.New("classifier response could not be parsed")
	ErrEmptyResult = errors.New("classifier returned no known waste items")
)

// Kind tells classification failures apart.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindParse
	KindEmptyResult
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindEmptyResult:
		return "empty_result"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindParse:
		return ErrParse
	case KindEmptyResult:
		return ErrEmptyResult
	default:
		return nil
	}
}

// ClassificationError describes a failed classification attempt.
type ClassificationError struct {
	Kind Kind
	// StatusCode is the HTTP status of a transport failure, zero when no response arrived.
	StatusCode int
	// Temporary marks transport failures worth retrying.
	Temporary bool
	Err       error
}

func (e *ClassificationError) Error() string {
	msg := "classification failed"
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		msg = sentinel.Error()
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Is matches the kind sentinels, so errors.Is(err, ErrTransport) works on wrapped errors.
func (e *ClassificationError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func NewTransportError(statusCode int, temporary bool, err error) *ClassificationError {
	return &ClassificationError{Kind: KindTransport, StatusCode: statusCode, Temporary: temporary, Err: err}
}

func NewParseError(err error) *ClassificationError {
	return &ClassificationError{Kind: KindParse, Err: err}
}

func NewEmptyResultError(err error) *ClassificationError {
	return &ClassificationError{Kind: KindEmptyResult, Err: err}
}

// IsTemporary reports whether err is a transport failure worth retrying.
func IsTemporary(err error) bool {
	var ce *ClassificationError
	if errors.As(err, &ce) {
		return ce.Kind == KindTransport && ce.Temporary
	}
	return false
}

// TemporaryStatus reports whether an HTTP status code is worth retrying.
func TemporaryStatus(code int) bool {
	return code == 429 || code >= 500
}
