package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type landmark struct {
	name     string
	district string
}

// landmarks map well-known places to the district that contains them. Longer
// names come first so "dubai mall" is not shadowed by a shorter entry.
var landmarks = []landmark{
	{"mall of the emirates", "Al Barsha"},
	{"burj khalifa", "Downtown Dubai"},
	{"dubai mall", "Downtown Dubai"},
	{"burj al arab", "Umm Suqeim"},
	{"global village", "Dubailand"},
	{"marina walk", "Dubai Marina"},
	{"ain dubai", "Bluewaters Island"},
	{"jbr walk", "Jumeirah Beach Residence"},
	{"expo 2020", "Dubai South"},
	{"atlantis", "Palm Jumeirah"},
}

var (
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bin\s+(.+)`),
		regexp.MustCompile(`\bnear\s+(.+)`),
		regexp.MustCompile(`\baround\s+(.+)`),
		regexp.MustCompile(`\bclose to\s+(.+)`),
		regexp.MustCompile(`\bby\s+(.+)`),
	}

	// locationTerminator cuts the captured phrase at the first clause that
	// cannot belong to a place name.
	locationTerminator = regexp.MustCompile(`\s+(?:under|below|over|above|with|for|between|less|more|within|priced|costing|that|which|and|vs\.?|versus|compared|exactly|from|per|budget|max|min|having|sorted)\b|\s+\d|[?.!;:]`)

	leadingFiller  = regexp.MustCompile(`^(?:(?:the|in|at|near|around|close to|by|area of|areas of)\s+)+`)
	trailingFiller = regexp.MustCompile(`(?:\s+(?:properties|property|units|unit|apartments|apartment|villas|villa|homes|home|houses|listings|flats|townhouses|penthouses|offices|area|areas|for sale|for rent|to rent|to buy|please|now|today|currently|available))+$`)
	locationSplit  = regexp.MustCompile(`\s+in\s+|\s*,\s*`)

	// words that never name a place on their own
	nonPlaces = map[string]bool{
		"price": true, "prices": true, "size": true, "date": true, "total": true,
		"budget": true, "general": true, "the market": true, "market": true,
		"it": true, "them": true, "me": true, "cash": true, "installments": true,
		"mortgage": true, "buying": true, "renting": true, "investing": true,
		"buy": true, "rent": true, "sale": true, "a year": true, "total price": true,
	}

	qualifierPattern = regexp.MustCompile(`\b([a-z][a-z']+)\s+(?:villas?|apartments?|townhouses?|penthouses?|duplex(?:es)?|compounds?|offices?|warehouses?|flats?)\b`)

	qualifierStopWords = map[string]bool{
		"a": true, "an": true, "the": true, "any": true, "all": true, "some": true, "my": true,
		"me": true, "show": true, "find": true, "list": true, "get": true, "give": true,
		"many": true, "much": true, "cheap": true, "cheapest": true, "luxury": true, "new": true,
		"big": true, "small": true, "large": true, "furnished": true, "unfurnished": true,
		"bed": true, "bedroom": true, "bedrooms": true, "beds": true, "room": true, "rooms": true,
		"bath": true, "baths": true, "bathroom": true, "studio": true, "family": true,
		"current": true, "available": true, "for": true, "sale": true, "rent": true, "rental": true,
		"of": true, "in": true, "and": true, "or": true, "are": true, "is": true, "there": true,
		"one": true, "two": true, "three": true, "four": true, "five": true, "six": true,
		"seven": true, "eight": true, "nine": true, "ten": true, "single": true, "double": true,
		"hotel": true, "modern": true, "spacious": true, "affordable": true, "ready": true,
		"offplan": true, "off-plan": true, "what": true, "which": true, "buy": true, "sell": true,
		"own": true, "purchase": true, "to": true, "with": true, "more": true, "less": true,
		"detached": true, "independent": true, "private": true, "beachfront": true, "story": true,
		"storey": true, "floor": true, "full": true, "half": true, "whole": true, "these": true,
		"those": true, "that": true, "this": true, "best": true,
		"top": true, "good": true, "nice": true, "average": true, "expensive": true, "priced": true,
		"sqft": true, "sq": true, "ft": true, "feet": true, "sqm": true, "meters": true,
	}
)

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// lookupLandmark returns the district and landmark name for the first known
// landmark mentioned in text.
func lookupLandmark(text string) (district, name string, ok bool) {
	for _, lm := range landmarks {
		if strings.Contains(text, lm.name) {
			return lm.district, titleCase(lm.name), true
		}
	}
	return "", "", false
}

// extractLocation applies the prepositional patterns in order and returns the
// cleaned location plus any sub-location keywords.
func extractLocation(text string) (location, keywords string) {
	for _, pattern := range locationPatterns {
		for _, idx := range pattern.FindAllStringSubmatchIndex(text, -1) {
			phrase := text[idx[2]:idx[3]]
			if loc := locationTerminator.FindStringIndex(phrase); loc != nil {
				phrase = phrase[:loc[0]]
			}
			location, keywords = splitLocation(phrase)
			if location != "" {
				return location, keywords
			}
		}
	}
	return "", ""
}

// splitLocation cleans a phrase and splits "marina gate in dubai marina" into
// the primary location and the qualifying keywords.
func splitLocation(phrase string) (location, keywords string) {
	parts := locationSplit.Split(phrase, -1)
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if c := cleanLocation(part); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		return "", ""
	}
	location = cleaned[len(cleaned)-1]
	if len(cleaned) > 1 {
		keywords = strings.Join(cleaned[:len(cleaned)-1], " ")
	}
	return location, keywords
}

// cleanLocation strips leading articles and prepositions, trailing generic
// nouns, and title-cases the rest. It returns "" for non-place phrases.
func cleanLocation(phrase string) string {
	s := strings.ToLower(strings.TrimSpace(phrase))
	s = strings.Trim(s, " \t\"'?.!,")
	s = leadingFiller.ReplaceAllString(s, "")
	s = trailingFiller.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" || nonPlaces[s] {
		return ""
	}
	if _, isNumber := NormalizePrice(s); isNumber {
		return ""
	}
	return titleCase(s)
}

// extractQualifier finds a single word directly in front of a property noun,
// as in "carmen villa".
func extractQualifier(text string) string {
	for _, m := range qualifierPattern.FindAllStringSubmatch(text, -1) {
		word := m[1]
		if qualifierStopWords[word] || isNumberWord(word) {
			continue
		}
		return titleCase(word)
	}
	return ""
}

func appendKeyword(existing, word string) string {
	if word == "" {
		return existing
	}
	if existing == "" {
		return word
	}
	if strings.Contains(strings.ToLower(existing), strings.ToLower(word)) {
		return existing
	}
	return existing + " " + word
}
