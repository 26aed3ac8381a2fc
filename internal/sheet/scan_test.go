package sheet_test

import (
	"testing"

	"autopost/internal/config"
	"autopost/internal/logging"
	"autopost/internal/sheet"
)

func newScanner(t *testing.T) *sheet.Scanner {
	t.Helper()
	cfg := config.Default()
	return sheet.NewScanner(&cfg, logging.NewNop())
}

// rowAt builds a Row with values placed at the given 1-based columns.
func rowAt(values map[int]sheet.Cell) sheet.Row {
	max := 0
	for col := range values {
		if col > max {
			max = col
		}
	}
	cells := make([]sheet.Cell, max)
	for col, cell := range values {
		cells[col-1] = cell
	}
	return sheet.Row{Cells: cells}
}

func contentRow(ready, online string, extra map[int]sheet.Cell) sheet.Row {
	values := map[int]sheet.Cell{
		2: {Value: ready},
		4: {Value: online},
		5: {Hyperlink: "https://docs.example.com/document/d/story123"},
	}
	for col, cell := range extra {
		values[col] = cell
	}
	return rowAt(values)
}

func headerPadding(n int) []sheet.Row {
	rows := make([]sheet.Row, n)
	for i := range rows {
		rows[i] = sheet.Row{Cells: []sheet.Cell{{Value: "header"}}}
	}
	return rows
}

func TestScanEmitsEligibleRow(t *testing.T) {
	grid := &sheet.Grid{Rows: append(headerPadding(7),
		contentRow("TRUE", "FALSE", map[int]sheet.Cell{
			8:  {Value: "Jane Doe, John Smith"},
			14: {Hyperlink: "https://drive.example.com/file/d/img9"},
			15: {Value: "News, Opinion"},
			16: {Value: "Ann Lee"},
		}),
	)}

	got := newScanner(t).Scan(grid)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.Row != 8 {
		t.Fatalf("unexpected row number: %d", c.Row)
	}
	if c.StoryURL != "https://docs.example.com/document/d/story123" {
		t.Fatalf("unexpected story url: %q", c.StoryURL)
	}
	if c.ImageURL != "https://drive.example.com/file/d/img9" {
		t.Fatalf("unexpected image url: %q", c.ImageURL)
	}
	if len(c.Authors) != 2 || c.Authors[0] != "Jane Doe" {
		t.Fatalf("unexpected authors: %v", c.Authors)
	}
	if len(c.Categories) != 2 || c.Categories[1] != "Opinion" {
		t.Fatalf("unexpected categories: %v", c.Categories)
	}
	if c.Section != sheet.DefaultSection {
		t.Fatalf("unexpected section: %q", c.Section)
	}
}

func TestScanNotReadyExcludedRegardlessOfOtherFields(t *testing.T) {
	grid := &sheet.Grid{Rows: append(headerPadding(7),
		contentRow("FALSE", "FALSE", nil),
	)}
	if got := newScanner(t).Scan(grid); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestScanAlreadyOnlineExcluded(t *testing.T) {
	grid := &sheet.Grid{Rows: append(headerPadding(7),
		contentRow("TRUE", "✓", nil),
	)}
	if got := newScanner(t).Scan(grid); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestScanMissingStoryURLSkipsRowButContinues(t *testing.T) {
	noStory := rowAt(map[int]sheet.Cell{
		2: {Value: "TRUE"},
		4: {Value: "FALSE"},
		5: {Value: "no link here"},
	})
	grid := &sheet.Grid{Rows: append(headerPadding(7),
		noStory,
		contentRow("YES", "", nil),
	)}
	got := newScanner(t).Scan(grid)
	if len(got) != 1 || got[0].Row != 9 {
		t.Fatalf("expected only row 9, got %v", got)
	}
}

func TestScanSectionHeaderCarriesForward(t *testing.T) {
	header := rowAt(map[int]sheet.Cell{1: {Value: "Sports"}})
	grid := &sheet.Grid{Rows: append(headerPadding(7),
		header,
		contentRow("TRUE", "", nil),
		contentRow("TRUE", "", nil),
	)}

	got := newScanner(t).Scan(grid)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	for _, c := range got {
		if c.Section != "Sports" {
			t.Fatalf("expected section Sports, got %q", c.Section)
		}
		if len(c.Categories) != 1 || c.Categories[0] != "Sports" {
			t.Fatalf("expected categories to inherit section, got %v", c.Categories)
		}
	}
}

func TestScanSectionResetOnNewHeader(t *testing.T) {
	grid := &sheet.Grid{Rows: append(headerPadding(7),
		rowAt(map[int]sheet.Cell{1: {Value: "Sports"}}),
		contentRow("TRUE", "", nil),
		rowAt(map[int]sheet.Cell{1: {Value: "Arts"}}),
		contentRow("TRUE", "", nil),
	)}

	got := newScanner(t).Scan(grid)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Section != "Sports" || got[1].Section != "Arts" {
		t.Fatalf("unexpected sections: %q %q", got[0].Section, got[1].Section)
	}
}

func TestScanRowWithSectionTextAndDataIsContent(t *testing.T) {
	// Text in column A does not make a header when the data columns are set.
	row := contentRow("TRUE", "", map[int]sheet.Cell{1: {Value: "Feature story"}})
	grid := &sheet.Grid{Rows: append(headerPadding(7), row)}

	got := newScanner(t).Scan(grid)
	if len(got) != 1 || got[0].Section != sheet.DefaultSection {
		t.Fatalf("expected content row in default section, got %v", got)
	}
}

func TestScanEmptyRowsSkipped(t *testing.T) {
	grid := &sheet.Grid{Rows: append(headerPadding(7),
		sheet.Row{},
		contentRow("1", "", nil),
	)}
	got := newScanner(t).Scan(grid)
	if len(got) != 1 || got[0].Row != 9 {
		t.Fatalf("expected row 9 only, got %v", got)
	}
}
