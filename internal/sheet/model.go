package sheet

import "strings"

// TextRun is a formatted span inside a cell. Link is empty unless the run's
// format carries a hyperlink.
type TextRun struct {
	Text string
	Link string
}

// Cell is one spreadsheet cell with its displayed value and any link data the
// source surface exposes.
type Cell struct {
	Value     string
	Hyperlink string
	Runs      []TextRun
}

// Empty reports whether the cell has no displayed value.
func (c Cell) Empty() bool {
	return strings.TrimSpace(c.Value) == ""
}

// Row is one spreadsheet row.
type Row struct {
	Cells []Cell
}

// Cell returns the cell in the given 1-based column, or a zero cell when the
// row is shorter than that.
func (r Row) Cell(col int) Cell {
	if col < 1 || col > len(r.Cells) {
		return Cell{}
	}
	return r.Cells[col-1]
}

// Grid is the full sheet contents in row order.
type Grid struct {
	Rows []Row
}

// Candidate is one eligible content row, immutable once emitted by the scan.
type Candidate struct {
	// Row is the 1-based spreadsheet row number.
	Row          int
	Section      string
	StoryURL     string
	ImageURL     string
	Authors      []string
	Categories   []string
	Photographer string
	HeadlinesURL string
	CutlinesURL  string
}

// SplitNames splits a comma-separated name list, trimming whitespace and
// dropping empty tokens. Order is preserved and duplicates are kept.
func SplitNames(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	return names
}
