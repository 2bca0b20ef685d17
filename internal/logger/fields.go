package logger

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// FieldRequestID is the structured log field key for a recommendation request.
	FieldRequestID = "request_id"
	// FieldTitle is the structured log field key for the queried job title.
	FieldTitle = "query_title"
	// FieldLocation is the structured log field key for the queried location.
	FieldLocation = "query_location"
	// FieldTopN is the structured log field key for the requested result count.
	FieldTopN = "top_n"

	// maxQueryLength bounds free-text query values in log entries.
	maxQueryLength = 80
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
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

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// QueryFields returns the standard fields describing a recommendation query.
// Empty title or location values are skipped, long ones are truncated, and a
// non-positive topN is omitted.
func QueryFields(title, location string, topN int) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldTitle, Value: TruncateForLog(title, maxQueryLength)},
		StringField{Key: FieldLocation, Value: TruncateForLog(location, maxQueryLength)},
	)
	if topN > 0 {
		fields = append(fields, zap.Int(FieldTopN, topN))
	}

	return fields
}

// WithRequest attaches a fresh request id and the query fields to the logger.
func WithRequest(logger *zap.Logger, title, location string, topN int) *zap.Logger {
	fields := append([]zap.Field{zap.String(FieldRequestID, uuid.NewString())}, QueryFields(title, location, topN)...)
	return WithFields(logger, fields...)
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
