package rewrite

import "strings"

// ExtractSections pulls every tagged section out of a raw completion.
// A missing or unknown marker yields an empty section, never an error.
func ExtractSections(raw string) map[Section]string {
	sections := make(map[Section]string, len(sectionMarkers))

	for section, marker := range sectionMarkers {
		sections[section] = extractSection(raw, marker)
	}

	return sections
}

// extractSection returns the text after ">>>marker<<<" up to the next
// known marker.
func extractSection(raw, marker string) string {
	open := ">>>" + marker + "<<<"

	_, after, found := strings.Cut(raw, open)
	if !found {
		return ""
	}

	for _, other := range sectionMarkers {
		if other == marker {
			continue
		}

		if before, _, cut := strings.Cut(after, ">>>"+other+"<<<"); cut {
			after = before
		}
	}

	return strings.TrimSpace(after)
}
