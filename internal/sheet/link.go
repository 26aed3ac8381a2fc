package sheet

import "regexp"

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// LinkFromCell resolves the canonical URL a cell references. Resolution order
// is fixed: the first formatted run carrying a link, then the whole-cell
// hyperlink, then the first http(s) token in the displayed text. At most one
// URL is returned; extraction is purely syntactic.
func LinkFromCell(c Cell) (string, bool) {
	for _, run := range c.Runs {
		if run.Link != "" {
			return run.Link, true
		}
	}
	if c.Hyperlink != "" {
		return c.Hyperlink, true
	}
	if match := urlPattern.FindString(c.Value); match != "" {
		return match, true
	}
	return "", false
}
