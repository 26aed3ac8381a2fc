package sheet_test

import (
	"testing"

	"autopost/internal/sheet"
)

func TestLinkFromCellPrefersRunLink(t *testing.T) {
	cell := sheet.Cell{
		Value:     "Story",
		Hyperlink: "https://example.com/cell",
		Runs: []sheet.TextRun{
			{Text: "Sto"},
			{Text: "ry", Link: "https://example.com/run"},
		},
	}
	url, ok := sheet.LinkFromCell(cell)
	if !ok || url != "https://example.com/run" {
		t.Fatalf("expected run link, got %q %v", url, ok)
	}
}

func TestLinkFromCellFallsBackToHyperlink(t *testing.T) {
	cell := sheet.Cell{
		Value:     "Story",
		Hyperlink: "https://example.com/cell",
		Runs:      []sheet.TextRun{{Text: "Story"}},
	}
	url, ok := sheet.LinkFromCell(cell)
	if !ok || url != "https://example.com/cell" {
		t.Fatalf("expected cell hyperlink, got %q %v", url, ok)
	}
}

func TestLinkFromCellScansDisplayText(t *testing.T) {
	cell := sheet.Cell{Value: "see https://example.com/doc?id=1 for the draft"}
	url, ok := sheet.LinkFromCell(cell)
	if !ok || url != "https://example.com/doc?id=1" {
		t.Fatalf("expected text pattern match, got %q %v", url, ok)
	}
}

func TestLinkFromCellNoURL(t *testing.T) {
	if url, ok := sheet.LinkFromCell(sheet.Cell{Value: "plain text"}); ok {
		t.Fatalf("expected no link, got %q", url)
	}
}

func TestSplitNames(t *testing.T) {
	got := sheet.SplitNames(" Jane Doe , John Smith ,, ")
	if len(got) != 2 || got[0] != "Jane Doe" || got[1] != "John Smith" {
		t.Fatalf("unexpected names: %v", got)
	}
	if sheet.SplitNames("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
