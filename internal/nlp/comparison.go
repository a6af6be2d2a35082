package nlp

import (
	"regexp"
	"strings"
)

var (
	comparisonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bdifference between\s+(.+?)\s+and\s+(.+)`),
		regexp.MustCompile(`\bcompare\s+(?:(?:the\s+)?(?:average\s+)?(?:prices?|rents?|properties|listings|costs?)\s+)?(?:(?:in|of|for|between)\s+)?(.+?)\s+(?:vs\.?|versus|and|with|to|against)\s+(.+)`),
		regexp.MustCompile(`(.+?)\s+(?:vs\.?|versus|compared to|compared with)\s+(.+)`),
	}

	comparisonTail = regexp.MustCompile(`\s+(?:for|under|below|over|above|with|between|in terms of|regarding|prices?|rents?)\b.*$|[?.!]+$`)
)

// ExtractComparisonLocations returns the two places named in a comparison
// query. Fewer than two results means the comparison is under-specified.
func ExtractComparisonLocations(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, pattern := range comparisonPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		first := comparisonSide(m[1], true)
		second := comparisonSide(m[2], false)

		var out []string
		if first != "" {
			out = append(out, first)
		}
		if second != "" && !strings.EqualFold(second, first) {
			out = append(out, second)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// comparisonSide cleans one side of a comparison. The left side keeps only
// what follows its last preposition, as in "prices in downtown dubai".
func comparisonSide(phrase string, left bool) string {
	phrase = strings.TrimSpace(phrase)
	if left {
		for _, prep := range []string{" in ", " of ", " between ", " for "} {
			if i := strings.LastIndex(" "+phrase, prep); i >= 0 {
				phrase = (" " + phrase)[i+len(prep):]
			}
		}
		phrase = strings.TrimPrefix(phrase, "are ")
		phrase = strings.TrimPrefix(phrase, "is ")
	} else {
		phrase = comparisonTail.ReplaceAllString(phrase, "")
	}
	return cleanLocation(phrase)
}
