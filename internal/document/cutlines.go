package document

import (
	"log/slog"
	"strings"

	"autopost/internal/logging"
)

// CutlineOption is one "identifier: text" entry from a cutlines document,
// with any trailing photo credit split off.
type CutlineOption struct {
	Slug        string
	Cutline     string
	PhotoCredit string
	Category    string
	Original    string
}

// ParseCutlines extracts cutline options from a cutlines document. The
// structure mirrors headlines documents: a "Cutlines" marker opens the
// section, category lines end in a lone colon, and each entry is an
// "identifier: text" pair. A leading '*' on an entry is decoration and is
// stripped before parsing. A trailing "PHOTO CREDIT" or "PHOTO CREDITS"
// clause is split into the PhotoCredit field. Documents with no marker fall
// back to a literal "NEWS:" line. The first tab yielding entries wins.
func ParseCutlines(doc *Document, logger *slog.Logger) []CutlineOption {
	logger = logging.NewComponentLogger(logger, "document")
	if doc.Empty() {
		logger.Warn("cutlines document is empty")
		return nil
	}

	markerSeen := false
	for _, tab := range doc.Tabs {
		lines := tab.ContentLines()
		if !containsMarker(lines, "cutlines") {
			continue
		}
		markerSeen = true
		if options := cutlinesFromTab(lines); len(options) > 0 {
			return options
		}
	}

	if !markerSeen {
		for _, tab := range doc.Tabs {
			if options := cutlinesAfterNews(tab.ContentLines()); len(options) > 0 {
				logger.Info("no Cutlines marker; using NEWS: fallback", logging.String("tab", tab.Title))
				return options
			}
		}
	}

	logger.Warn("no cutlines found in document")
	return nil
}

func cutlinesFromTab(lines []string) []CutlineOption {
	var options []CutlineOption
	category := DefaultCategory
	inCutlines := false

	for _, line := range lines {
		switch {
		case strings.EqualFold(line, "cutlines"):
			inCutlines = true
			continue
		case strings.EqualFold(line, "headlines"), strings.EqualFold(line, "newscast"):
			if inCutlines {
				return options
			}
			continue
		}
		if !inCutlines {
			continue
		}
		if name, ok := categoryMarker(line); ok {
			category = name
			continue
		}
		if option, ok := cutlineEntry(line, category); ok {
			options = append(options, option)
		}
	}
	return options
}

func cutlinesAfterNews(lines []string) []CutlineOption {
	var options []CutlineOption
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
		if option, ok := cutlineEntry(line, category); ok {
			options = append(options, option)
		}
	}
	return options
}

func cutlineEntry(line, category string) (CutlineOption, bool) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
	slug, text, ok := splitEntry(trimmed)
	if !ok {
		return CutlineOption{}, false
	}
	cutline, credit := splitPhotoCredit(text)
	if cutline == "" {
		return CutlineOption{}, false
	}
	return CutlineOption{
		Slug:        slug,
		Cutline:     cutline,
		PhotoCredit: credit,
		Category:    category,
		Original:    line,
	}, true
}

// splitPhotoCredit separates a trailing photo credit clause from a cutline.
// The plural marker is checked first so "PHOTO CREDITS" never leaves a
// stray "S" behind.
func splitPhotoCredit(text string) (string, string) {
	for _, marker := range []string{"PHOTO CREDITS", "PHOTO CREDIT"} {
		idx := strings.Index(text, marker)
		if idx < 0 {
			continue
		}
		cutline := strings.TrimSpace(text[:idx])
		credit := strings.TrimSpace(text[idx+len(marker):])
		credit = strings.TrimSpace(strings.TrimPrefix(credit, ":"))
		return cutline, credit
	}
	return strings.TrimSpace(text), ""
}
