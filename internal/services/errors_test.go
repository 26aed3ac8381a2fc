package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autopost/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternal, "taxonomy", "search users", "backend rejected request", base)
	if !errors.Is(err, services.ErrExternal) {
		t.Fatalf("expected wrapped error to match marker: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to preserve cause: %v", err)
	}
	if !strings.Contains(err.Error(), "taxonomy: search users") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker: %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail: %v", err)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRow(ctx, 12)
	ctx = services.WithStage(ctx, "sectionize")

	if row, ok := services.RowFromContext(ctx); !ok || row != 12 {
		t.Fatalf("unexpected row: %v %v", row, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "sectionize" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := services.WithStage(context.Background(), "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}
