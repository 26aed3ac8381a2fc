package pipeline

import "strings"

const (
	previewLineWidth    = 100
	contextPreviewWords = 30
)

// redactionPreview returns the opening lines of the body, each truncated to
// a terminal-friendly width.
func redactionPreview(lines []string, max int) []string {
	if max < 1 {
		max = 1
	}
	if len(lines) < max {
		max = len(lines)
	}
	preview := make([]string, 0, max)
	for _, line := range lines[:max] {
		preview = append(preview, truncateLine(line, previewLineWidth))
	}
	return preview
}

func truncateLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width]) + "..."
}

// contextPreview returns the first words of the story so the operator can
// tell which story a headline list belongs to.
func contextPreview(lines []string) string {
	var words []string
	for _, line := range lines {
		words = append(words, strings.Fields(line)...)
		if len(words) >= contextPreviewWords {
			words = words[:contextPreviewWords]
			break
		}
	}
	return strings.Join(words, " ")
}
