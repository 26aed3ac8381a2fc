package taxonomy

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"autopost/internal/logging"
	"autopost/internal/wordpress"
)

// stopWords are filler tokens excluded from significant-word comparison.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {},
	"from": {}, "into": {}, "this": {}, "that": {},
}

// Matcher matches requested category labels against a site's categories.
type Matcher struct {
	categories []wordpress.Category
	fold       cases.Caser
	logger     *slog.Logger
}

// NewMatcher creates a matcher over the site's full category list.
func NewMatcher(categories []wordpress.Category, logger *slog.Logger) *Matcher {
	return &Matcher{
		categories: categories,
		fold:       cases.Fold(),
		logger:     logging.NewComponentLogger(logger, "taxonomy"),
	}
}

// Match finds the site category for one requested label. Comparisons loosen
// in fixed order: exact, ampersand and "and" treated as equivalent, request
// contained in a candidate, then a significant request word contained in a
// candidate. The first hit wins.
func (m *Matcher) Match(name string) (wordpress.Category, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return wordpress.Category{}, false
	}
	folded := m.fold.String(name)

	for _, match := range []func(string, string) bool{
		func(want, have string) bool { return want == have },
		m.matchAmpersand,
		m.matchSubstring,
		m.matchSignificantWords,
	} {
		for _, category := range m.categories {
			if match(folded, m.fold.String(category.Name)) {
				return category, true
			}
		}
	}
	return wordpress.Category{}, false
}

// Resolve maps requested labels to category IDs, preserving request order
// and dropping duplicates and labels with no match.
func (m *Matcher) Resolve(names []string) []int {
	var ids []int
	seen := make(map[int]struct{})
	for _, name := range names {
		category, ok := m.Match(name)
		if !ok {
			m.logger.Warn("no category match", logging.String("requested", name))
			continue
		}
		if _, dup := seen[category.ID]; dup {
			continue
		}
		seen[category.ID] = struct{}{}
		ids = append(ids, category.ID)
	}
	return ids
}

func (m *Matcher) matchAmpersand(want, have string) bool {
	return normalizeAmpersand(want) == normalizeAmpersand(have)
}

// matchSubstring accepts a candidate that contains the requested name. The
// reverse direction is not allowed; a short candidate must not swallow a
// longer unrelated request.
func (m *Matcher) matchSubstring(want, have string) bool {
	return strings.Contains(have, want)
}

// matchSignificantWords accepts a candidate whose name contains any
// significant word of the request as a substring.
func (m *Matcher) matchSignificantWords(want, have string) bool {
	for word := range significantWords(want) {
		if strings.Contains(have, word) {
			return true
		}
	}
	return false
}

func normalizeAmpersand(s string) string {
	fields := strings.Fields(strings.ReplaceAll(s, "&", " and "))
	return strings.Join(fields, " ")
}

// significantWords keeps tokens long enough to carry meaning, with stop
// words removed.
func significantWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, word := range strings.Fields(normalizeAmpersand(s)) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		words[word] = struct{}{}
	}
	return words
}
