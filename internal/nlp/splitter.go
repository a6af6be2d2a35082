package nlp

import (
	"regexp"
	"strings"
)

var (
	// conjunctions that may open a new sub-question; a trailing "?" is kept
	// with the left-hand segment
	splitBoundary = regexp.MustCompile(`(?i)\?\s+|,?\s+(?:and|also|plus)\s+|;\s*`)

	questionStarter = regexp.MustCompile(`(?i)^(?:what|what's|whats|how|where|which|who|when|why|can|could|is|are|do|does|show|find|list|give|tell|compare|should|will|would|get|search)\b`)
)

// Split breaks a compound query into ordered sub-queries. A segment that does
// not open with a question-starter word stays attached to the segment before
// it. The result always has at least one element.
func Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}

	var parts []string
	current := 0
	for _, loc := range splitBoundary.FindAllStringIndex(text, -1) {
		next := strings.TrimSpace(text[loc[1]:])
		if !questionStarter.MatchString(next) {
			continue
		}

		cut := loc[0]
		if text[loc[0]] == '?' {
			cut++
		}
		if segment := strings.TrimSpace(text[current:cut]); segment != "" {
			parts = append(parts, segment)
		}
		current = loc[1]
	}

	if tail := strings.TrimSpace(text[current:]); tail != "" {
		parts = append(parts, tail)
	}
	if len(parts) == 0 {
		return []string{text}
	}
	return parts
}
