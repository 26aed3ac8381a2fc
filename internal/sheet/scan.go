package sheet

import (
	"log/slog"
	"strings"

	"autopost/internal/config"
	"autopost/internal/logging"
)

// DefaultSection is the label inherited by rows above the first header row.
const DefaultSection = "Uncategorized"

// Scanner walks the grid and emits one Candidate per eligible row.
type Scanner struct {
	headerRows int
	cols       config.Columns
	truthy     map[string]struct{}
	logger     *slog.Logger
}

// NewScanner builds a scanner from the sheet configuration.
func NewScanner(cfg *config.Config, logger *slog.Logger) *Scanner {
	truthy := make(map[string]struct{}, len(cfg.Sheet.ReadyValues))
	for _, v := range cfg.Sheet.ReadyValues {
		truthy[strings.ToUpper(strings.TrimSpace(v))] = struct{}{}
	}
	return &Scanner{
		headerRows: cfg.Sheet.HeaderRows,
		cols:       cfg.Sheet.Columns,
		truthy:     truthy,
		logger:     logging.NewComponentLogger(logger, "sheet"),
	}
}

// Scan yields candidates in sheet order. A row is eligible iff the ready
// column is checked, the online column is not, and a story URL resolves.
// Section header rows update the running section label and are never emitted.
// Problems with a single row skip that row; the scan always completes.
func (s *Scanner) Scan(grid *Grid) []Candidate {
	if grid == nil {
		return nil
	}

	var candidates []Candidate
	section := DefaultSection

	for idx, row := range grid.Rows {
		if idx < s.headerRows {
			continue
		}
		rowNum := idx + 1

		if len(row.Cells) == 0 {
			continue
		}

		if label, ok := s.sectionHeader(row); ok {
			section = label
			s.logger.Debug("section header", logging.Int(logging.FieldRow, rowNum), logging.String(logging.FieldSection, section))
			continue
		}

		if !s.checked(row.Cell(s.cols.Ready)) {
			s.logger.Debug("not ready", logging.Int(logging.FieldRow, rowNum))
			continue
		}
		if s.checked(row.Cell(s.cols.Online)) {
			s.logger.Debug("already online", logging.Int(logging.FieldRow, rowNum))
			continue
		}

		storyURL, ok := LinkFromCell(row.Cell(s.cols.Story))
		if !ok {
			s.logger.Warn("no story URL found", logging.Int(logging.FieldRow, rowNum))
			continue
		}

		candidate := Candidate{
			Row:          rowNum,
			Section:      section,
			StoryURL:     storyURL,
			Authors:      SplitNames(row.Cell(s.cols.Author).Value),
			Categories:   SplitNames(row.Cell(s.cols.Categories).Value),
			Photographer: strings.TrimSpace(row.Cell(s.cols.Photographer).Value),
		}
		if url, ok := LinkFromCell(row.Cell(s.cols.Image)); ok {
			candidate.ImageURL = url
		}
		if url, ok := LinkFromCell(row.Cell(s.cols.Headlines)); ok {
			candidate.HeadlinesURL = url
		}
		if url, ok := LinkFromCell(row.Cell(s.cols.Cutlines)); ok {
			candidate.CutlinesURL = url
		}
		if len(candidate.Categories) == 0 {
			candidate.Categories = []string{section}
		}

		s.logger.Info("candidate accepted",
			logging.Int(logging.FieldRow, rowNum),
			logging.String(logging.FieldSection, section))
		candidates = append(candidates, candidate)
	}

	return candidates
}

// sectionHeader reports whether the row is a section header: text in the
// section column and nothing in the ready, online, and story columns.
func (s *Scanner) sectionHeader(row Row) (string, bool) {
	label := strings.TrimSpace(row.Cell(s.cols.Section).Value)
	if label == "" {
		return "", false
	}
	for _, col := range []int{s.cols.Ready, s.cols.Online, s.cols.Story} {
		if !row.Cell(col).Empty() {
			return "", false
		}
	}
	return label, true
}

func (s *Scanner) checked(c Cell) bool {
	_, ok := s.truthy[strings.ToUpper(strings.TrimSpace(c.Value))]
	return ok
}
