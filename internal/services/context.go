package services

import "context"

type contextKey string

const (
	entityIDKey  contextKey = "entity_id"
	categoryKey  contextKey = "category"
	requestIDKey contextKey = "request_id"
)

// WithEntityID annotates context with the owning entity identifier.
func WithEntityID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, entityIDKey, id)
}

// EntityIDFromContext extracts the entity identifier if present.
func EntityIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(entityIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCategory annotates context with the import category being processed.
func WithCategory(ctx context.Context, category string) context.Context {
	if category == "" {
		return ctx
	}
	return context.WithValue(ctx, categoryKey, category)
}

// CategoryFromContext returns the import category if present.
func CategoryFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(categoryKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
