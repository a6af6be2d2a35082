package nlp

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AmountExpr matches a number with an optional magnitude suffix. It is shared
// by the price patterns in the extractor.
const AmountExpr = `\d[\d,]*(?:\.\d+)?\s*(?:million|thousand|mn|m|k)?\b`

var amountPattern = regexp.MustCompile(`^\s*(?:aed\s*)?(\d+(?:\.\d+)?)\s*(million|thousand|mn|m|k)?\b`)

// NormalizePrice parses "2.5m", "500k", "1.2 million" or "1,500,000" into an
// integer amount. ok is false when the token has no leading number.
func NormalizePrice(token string) (amount int, ok bool) {
	value, scale, ok := splitAmount(token)
	if !ok {
		return 0, false
	}
	return int(math.Round(value * scale)), true
}

// splitAmount returns the leading number and the multiplier of its suffix.
func splitAmount(token string) (value, scale float64, ok bool) {
	token = strings.ReplaceAll(strings.ToLower(token), ",", "")
	m := amountPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, 0, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}

	scale = 1
	switch m[2] {
	case "m", "mn", "million":
		scale = 1_000_000
	case "k", "thousand":
		scale = 1_000
	}
	return value, scale, true
}
