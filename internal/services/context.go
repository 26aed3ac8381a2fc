package services

import "context"

type contextKey string

const (
	rowKey   contextKey = "row"
	stageKey contextKey = "stage"
)

// WithRow annotates context with the 1-based spreadsheet row number.
func WithRow(ctx context.Context, row int) context.Context {
	return context.WithValue(ctx, rowKey, row)
}

// RowFromContext extracts the spreadsheet row number if present.
func RowFromContext(ctx context.Context) (int, bool) {
	if v, ok := ctx.Value(rowKey).(int); ok {
		return v, true
	}
	return 0, false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(stageKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
