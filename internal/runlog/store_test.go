package runlog

import (
	"context"
	"errors"
	"testing"

	"autopost/internal/post"
	"autopost/internal/services"
	"autopost/internal/testsupport"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	runID, err := store.BeginRun(ctx, "sheet1")
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}

	results := []post.RowStatus{
		{Row: 8, Section: "Sports", Title: "Team wins", Outcome: post.OutcomePublished, PostID: 99, PostLink: "https://example.com/?p=99"},
		{Row: 9, Section: "Sports", Title: "Coach retires", Outcome: post.OutcomeDraft, PostID: 100},
		{Row: 12, Section: "News", Title: "", Outcome: post.OutcomeFailed, ErrorDetail: "story document has no content"},
	}
	for _, status := range results {
		if err := store.RecordRow(ctx, runID, status); err != nil {
			t.Fatalf("record row: %v", err)
		}
	}
	if err := store.FinishRun(ctx, runID, results); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	runs, err := store.ListRuns(ctx, 5)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	run := runs[0]
	if run.ID != runID || run.Published != 1 || run.Drafted != 1 || run.Failed != 1 || run.Skipped != 0 {
		t.Fatalf("run = %+v", run)
	}
	if run.FinishedAt.IsZero() {
		t.Fatal("finished time not recorded")
	}

	records, err := store.RunRows(ctx, runID)
	if err != nil {
		t.Fatalf("run rows: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Row != 8 || records[0].Outcome != "published" {
		t.Fatalf("first record = %+v", records[0])
	}
	if records[2].Detail == "" {
		t.Fatal("failure detail not stored")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.BeginRun(ctx, "sheet1")
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	second, err := store.BeginRun(ctx, "sheet1")
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}

	runs, err := store.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].ID != second && runs[0].ID != first {
		t.Fatalf("unexpected run id %q", runs[0].ID)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	runID, err := store.BeginRun(context.Background(), "sheet1")
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	store.Close()

	reopened, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.ListRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Fatalf("runs = %+v", runs)
	}
}

func TestRunRowsUnknownRun(t *testing.T) {
	store := openStore(t)

	_, err := store.RunRows(context.Background(), "no-such-run")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
