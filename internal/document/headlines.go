package document

import (
	"log/slog"
	"strings"

	"autopost/internal/logging"
)

// DefaultCategory labels entries that appear before any category marker.
const DefaultCategory = "Uncategorized"

// HeadlineOption is one "identifier: text" entry from a headlines document.
type HeadlineOption struct {
	Slug     string
	Headline string
	Category string
	Original string
}

// ParseHeadlines extracts headline options from a headlines document.
//
// The active section is the one named "Headlines" (case-insensitive exact
// line). An earlier "Insides" section holds worked examples and is skipped
// entirely. Within the section, a line ending in a lone colon starts a new
// category; a line containing one "identifier: text" pair becomes an option
// tagged with the current category. When a document carries neither marker
// anywhere, a literal "NEWS:" line is accepted as an implicit section start.
// The first tab yielding entries wins; later tabs are not searched.
func ParseHeadlines(doc *Document, logger *slog.Logger) []HeadlineOption {
	logger = logging.NewComponentLogger(logger, "document")
	if doc.Empty() {
		logger.Warn("headlines document is empty")
		return nil
	}

	markerSeen := false
	for _, tab := range doc.Tabs {
		lines := tab.ContentLines()
		if !containsMarker(lines, "headlines") && !containsMarker(lines, "insides") {
			continue
		}
		markerSeen = true
		if options := headlinesFromTab(lines); len(options) > 0 {
			return options
		}
	}

	if !markerSeen {
		for _, tab := range doc.Tabs {
			if options := headlinesAfterNews(tab.ContentLines()); len(options) > 0 {
				logger.Info("no Headlines marker; using NEWS: fallback", logging.String("tab", tab.Title))
				return options
			}
		}
	}

	logger.Warn("no headlines found in document")
	return nil
}

func headlinesFromTab(lines []string) []HeadlineOption {
	var options []HeadlineOption
	category := DefaultCategory
	inInsides := false
	inHeadlines := false

	for _, line := range lines {
		switch {
		case strings.EqualFold(line, "insides"):
			inInsides = true
			continue
		case strings.EqualFold(line, "headlines"):
			inHeadlines = true
			inInsides = false
			continue
		case strings.EqualFold(line, "cutlines"), strings.EqualFold(line, "newscast"):
			if inHeadlines {
				return options
			}
			continue
		}
		if inInsides || !inHeadlines {
			continue
		}
		if name, ok := categoryMarker(line); ok {
			category = name
			continue
		}
		if option, ok := headlineEntry(line, category); ok {
			options = append(options, option)
		}
	}
	return options
}

func headlinesAfterNews(lines []string) []HeadlineOption {
	var options []HeadlineOption
	category := ""

	for _, line := range lines {
		if category == "" {
			if line == "NEWS:" {
				category = "NEWS"
			}
			continue
		}
		if name, ok := categoryMarker(line); ok {
			category = name
			continue
		}
		if option, ok := headlineEntry(line, category); ok {
			options = append(options, option)
		}
	}
	return options
}

func headlineEntry(line, category string) (HeadlineOption, bool) {
	slug, text, ok := splitEntry(line)
	if !ok {
		return HeadlineOption{}, false
	}
	return HeadlineOption{
		Slug:     slug,
		Headline: normalizeSubhead(text),
		Category: category,
		Original: line,
	}, true
}

// normalizeSubhead folds an embedded "SH:" subhead marker into a plain
// colon-space separator.
func normalizeSubhead(text string) string {
	if !strings.Contains(text, "SH:") {
		return text
	}
	parts := strings.SplitN(text, "SH:", 2)
	head := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(parts[0]), ":"))
	return head + ": " + strings.TrimSpace(parts[1])
}

// categoryMarker recognizes a line that is only a category name with a
// trailing colon.
func categoryMarker(line string) (string, bool) {
	if !strings.HasSuffix(line, ":") {
		return "", false
	}
	name := strings.TrimRight(line, ":")
	if name == "" || strings.Contains(name, ":") {
		return "", false
	}
	return name, true
}

// splitEntry parses "identifier: text". Both halves must be non-empty.
func splitEntry(line string) (string, string, bool) {
	if !strings.Contains(line, ":") || strings.HasSuffix(line, ":") {
		return "", "", false
	}
	parts := strings.SplitN(line, ":", 2)
	slug := strings.TrimSpace(parts[0])
	text := strings.TrimSpace(parts[1])
	if slug == "" || text == "" {
		return "", "", false
	}
	return slug, text, true
}

func containsMarker(lines []string, marker string) bool {
	for _, line := range lines {
		if strings.EqualFold(line, marker) {
			return true
		}
	}
	return false
}
