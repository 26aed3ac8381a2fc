package document

import "strings"

// Paragraph is one block of text, already split into its formatted runs.
type Paragraph struct {
	Runs []string
}

// Text joins the paragraph's runs into a single trimmed line.
func (p Paragraph) Text() string {
	return strings.TrimSpace(strings.Join(p.Runs, ""))
}

// Tab is a named division of a document. Documents without tabs are modeled
// as a single unnamed tab.
type Tab struct {
	Title      string
	Paragraphs []Paragraph
}

// Lines flattens the tab's paragraphs into trimmed lines, keeping blanks.
func (t Tab) Lines() []string {
	lines := make([]string, 0, len(t.Paragraphs))
	for _, p := range t.Paragraphs {
		lines = append(lines, p.Text())
	}
	return lines
}

// ContentLines flattens the tab's paragraphs into trimmed non-empty lines.
func (t Tab) ContentLines() []string {
	lines := make([]string, 0, len(t.Paragraphs))
	for _, p := range t.Paragraphs {
		if text := p.Text(); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

// Document is a parsed rich-text document.
type Document struct {
	Title string
	Tabs  []Tab
}

// Empty reports whether the document contains no text at all.
func (d *Document) Empty() bool {
	if d == nil {
		return true
	}
	for _, tab := range d.Tabs {
		if len(tab.ContentLines()) > 0 {
			return false
		}
	}
	return true
}

// BodyLines returns the first tab's lines with leading blanks removed.
// Interior blank lines are preserved so callers can show line numbers that
// match what the author sees.
func (d *Document) BodyLines() []string {
	if d == nil || len(d.Tabs) == 0 {
		return nil
	}
	lines := d.Tabs[0].Lines()
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return lines
}
