package logging

import (
	"context"
	"log/slog"

	"galley/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEntityID is the standardized structured logging key for owning entity identifiers.
	FieldEntityID = "entity_id"
	// FieldCategory is the standardized structured logging key for import category names.
	FieldCategory = "category"
	// FieldPackageKey is the standardized structured logging key for catalog package keys.
	FieldPackageKey = "package_key"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.EntityIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldEntityID, id))
	}
	if category, ok := services.CategoryFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCategory, category))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
