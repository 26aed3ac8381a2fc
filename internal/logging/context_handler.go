package logging

import (
	"context"
	"log/slog"

	"autopost/internal/services"
)

// contextHandler copies row and stage annotations from the context onto
// each record so callers do not have to thread them through every log call.
type contextHandler struct {
	inner slog.Handler
}

func newContextHandler(inner slog.Handler) slog.Handler {
	return contextHandler{inner: inner}
}

func (h contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if row, ok := services.RowFromContext(ctx); ok {
		record.AddAttrs(slog.Int(FieldRow, row))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		record.AddAttrs(slog.String(FieldStage, stage))
	}
	return h.inner.Handle(ctx, record)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{inner: h.inner.WithGroup(name)}
}
