package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the classifier provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the classifier model identifier.
	FieldModel = "ai_model"
	// FieldSession identifies one user session across its log lines.
	FieldSession = "session_id"
	// FieldRequest carries the HTTP request id.
	FieldRequest = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the pairs into zap fields, trimming whitespace and
// omitting entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the provider and model fields, skipping empty values.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the provider and model fields to the logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// WithSession tags every line of the logger with a session id.
func WithSession(logger *zap.Logger, sessionID string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldSession, Value: sessionID})...)
}
