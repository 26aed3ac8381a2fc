package post

import (
	"html"
	"strings"
)

// RenderBody wraps each non-blank line of the story body in a paragraph
// block, escaping HTML in the text. Blank lines separate paragraphs and do
// not render.
func RenderBody(lines []string) string {
	var builder strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		builder.WriteString("<p>")
		builder.WriteString(html.EscapeString(line))
		builder.WriteString("</p>\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}
