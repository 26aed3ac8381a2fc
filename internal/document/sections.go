package document

import "strings"

// Known section names for the flat marker format. Text before the first
// recognized marker is discarded.
var knownSections = []string{"Headline", "Redaction", "Cutlines", "Featured image"}

// Sectionize walks lines in order and splits them into named sections. A line
// of the form "<Known Section>: rest" begins that section with "rest" as its
// first content; later lines are appended newline-joined until the next
// recognized marker. Section names match case-insensitively.
func Sectionize(lines []string) map[string]string {
	sections := make(map[string]string)
	active := ""

	for _, line := range lines {
		if name, rest, ok := sectionMarker(line); ok {
			active = name
			sections[active] = rest
			continue
		}
		if active == "" {
			continue
		}
		if sections[active] == "" {
			sections[active] = line
			continue
		}
		sections[active] += "\n" + line
	}

	return sections
}

func sectionMarker(line string) (string, string, bool) {
	for _, name := range knownSections {
		if len(line) <= len(name) || line[len(name)] != ':' {
			continue
		}
		if !strings.EqualFold(line[:len(name)], name) {
			continue
		}
		return name, strings.TrimSpace(line[len(name)+1:]), true
	}
	return "", "", false
}
