package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
type LogFields struct {
	UserID         *int64  // Acting or affected user
	OrganizationID *int64  // Organization being provisioned or read
	SessionID      *int64  // Session row id, never the token
	MessageID      *string // Redis stream message ID
	EventType      *string // Domain event type (e.g. "user.registered")
	Component      string  // Component name, e.g. "orgspace.service.registration"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.OrganizationID != nil {
		result.OrganizationID = next.OrganizationID
	}
	if next.SessionID != nil {
		result.SessionID = next.SessionID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.EventType != nil {
		result.EventType = next.EventType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// MaskEmail keeps the first character of the local part and the domain.
// Used wherever an email would otherwise land in a log line verbatim.
func MaskEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			if i == 0 {
				return "***" + email[i:]
			}
			return email[:1] + "***" + email[i:]
		}
	}
	return "***"
}
