package nlp

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

func isNumberWord(w string) bool {
	_, ok := wordNumbers[w]
	return ok
}

const numberWords = `one|two|three|four|five|six|seven|eight|nine|ten`

var (
	rentPattern = regexp.MustCompile(`\brent(?:al|als|ing|s|ed)?\b|\blease\b`)
	salePattern = regexp.MustCompile(`\b(?:buy|buying|sale|own|purchase|purchasing)\b`)

	roomsPattern     = regexp.MustCompile(`\b(\d+)\s*-?\s*(?:bedrooms?|beds?|br|bhk|rooms?)\b`)
	roomsWordPattern = regexp.MustCompile(`\b(` + numberWords + `)\s*-?\s*(?:bedrooms?|beds?|rooms?)\b`)
	bathsPattern     = regexp.MustCompile(`\b(\d+)\s*-?\s*(?:bathrooms?|baths?)\b`)
	bathsWordPattern = regexp.MustCompile(`\b(` + numberWords + `)\s*-?\s*(?:bathrooms?|baths?)\b`)

	betweenPattern = regexp.MustCompile(`\bbetween\s+(?:aed\s*)?(` + AmountExpr + `)\s*(?:and|to|-)\s*(?:aed\s*)?(` + AmountExpr + `)`)
	underPattern   = regexp.MustCompile(`\b(?:under|below|less than|up to|upto|cheaper than|no more than|max)\s+(?:aed\s*)?(` + AmountExpr + `)`)
	overPattern    = regexp.MustCompile(`\b(?:over|above|more than|greater than|starting at)\s+(?:aed\s*)?(` + AmountExpr + `)`)
	exactlyPattern = regexp.MustCompile(`\bexactly\s+(?:aed\s*)?(` + AmountExpr + `)`)

	// an amount followed by one of these is a size or a count, not a price
	nonPriceUnit  = regexp.MustCompile(`^\s*(?:sq|square|bed|bath|room|br\b|bhk|year|month|floor|storey|stor)`)
	annualPattern = regexp.MustCompile(`\b(?:per year|a year|yearly|annual|annually|per annum)\b|/\s*(?:year|yr)\b`)

	areaPattern = regexp.MustCompile(`\barea\s*(?:of\s+|at least\s+|minimum\s+)?(\d[\d,]*)`)
	sizePattern = regexp.MustCompile(`\b(\d[\d,]*)\s*(?:sq\.?\s*ft|sqft|square\s+feet|sq\s+feet)\b`)
)

type typeTerm struct {
	pattern *regexp.Regexp
	ptype   models.PropertyType
}

// propertyTypeTerms is checked in order; the first match wins.
var propertyTypeTerms = []typeTerm{
	{regexp.MustCompile(`\bhotel\s+apartments?\b`), models.HotelApartment},
	{regexp.MustCompile(`\bfull\s+floors?\b`), models.FullFloor},
	{regexp.MustCompile(`\bhalf\s+floors?\b`), models.HalfFloor},
	{regexp.MustCompile(`\btown\s?houses?\b`), models.Townhouse},
	{regexp.MustCompile(`\bpenthouses?\b`), models.Penthouse},
	{regexp.MustCompile(`\bvillas?\b`), models.Villa},
	{regexp.MustCompile(`\bhouses?\b`), models.Villa},
	{regexp.MustCompile(`\bapartments?\b`), models.Apartment},
	{regexp.MustCompile(`\bflats?\b`), models.Apartment},
	{regexp.MustCompile(`\bstudios?\b`), models.Apartment},
	{regexp.MustCompile(`\b(?:whole\s+)?buildings?\b`), models.WholeBuilding},
	{regexp.MustCompile(`\bwarehouses?\b`), models.Warehouse},
	{regexp.MustCompile(`\boffices?\b`), models.Office},
	{regexp.MustCompile(`\blands?\b`), models.Land},
	{regexp.MustCompile(`\bplots?\b`), models.Land},
	{regexp.MustCompile(`\bcompounds?\b`), models.Compound},
	{regexp.MustCompile(`\bduplex(?:es)?\b`), models.Duplex},
}

var studioPattern = regexp.MustCompile(`\bstudios?\b`)

// Extract runs the pattern rules over lower-cased query text in fixed order.
// Later rules may overwrite earlier ones. The returned confidence is the
// number of populated fields.
func Extract(text string) (models.FilterRecord, int) {
	text = strings.ToLower(strings.TrimSpace(text))
	var f models.FilterRecord

	extractPurpose(text, &f)
	extractRoomsAndBaths(text, &f)
	extractPrice(text, &f)
	extractArea(text, &f)
	extractPropertyType(text, &f)
	extractLocationFields(text, &f)

	return f, f.Count()
}

func extractPurpose(text string, f *models.FilterRecord) {
	if rentPattern.MatchString(text) {
		f.Purpose = models.PurposeForRent
	} else if salePattern.MatchString(text) {
		f.Purpose = models.PurposeForSale
	}
}

func extractRoomsAndBaths(text string, f *models.FilterRecord) {
	if n, ok := countFrom(text, roomsPattern, roomsWordPattern); ok {
		f.Rooms = &n
	}
	if n, ok := countFrom(text, bathsPattern, bathsWordPattern); ok {
		f.Baths = &n
	}
}

func countFrom(text string, digits, words *regexp.Regexp) (int, bool) {
	if m := digits.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := words.FindStringSubmatch(text); m != nil {
		return wordNumbers[m[1]], true
	}
	return 0, false
}

type priceBound int

const (
	boundMax priceBound = iota
	boundMin
	boundBetween
	boundExactly
)

type priceEvent struct {
	pos    int
	bound  priceBound
	values []int
}

func extractPrice(text string, f *models.FilterRecord) {
	var events []priceEvent

	for _, m := range betweenPattern.FindAllStringSubmatchIndex(text, -1) {
		if isNonPrice(text, m[5]) {
			continue
		}
		low, high, ok := betweenBounds(text[m[2]:m[3]], text[m[4]:m[5]])
		if !ok {
			continue
		}
		events = append(events, priceEvent{pos: m[0], bound: boundBetween, values: []int{low, high}})
	}

	single := []struct {
		pattern *regexp.Regexp
		bound   priceBound
	}{
		{underPattern, boundMax},
		{overPattern, boundMin},
		{exactlyPattern, boundExactly},
	}
	for _, s := range single {
		for _, m := range s.pattern.FindAllStringSubmatchIndex(text, -1) {
			if isNonPrice(text, m[3]) {
				continue
			}
			v, ok := NormalizePrice(text[m[2]:m[3]])
			if !ok {
				continue
			}
			events = append(events, priceEvent{pos: m[0], bound: s.bound, values: []int{v}})
		}
	}

	if len(events) == 0 {
		return
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].pos < events[j].pos })

	annual := f.Purpose == models.PurposeForRent && annualPattern.MatchString(text)

	for _, ev := range events {
		values := ev.values
		if annual {
			values = make([]int, len(ev.values))
			for i, v := range ev.values {
				values[i] = int(math.Round(float64(v) / 12))
			}
		}

		switch ev.bound {
		case boundMax:
			f.MaxPrice = models.IntPtr(values[0])
			if f.MinPrice != nil && *f.MinPrice > values[0] {
				f.MinPrice = nil
			}
		case boundMin:
			f.MinPrice = models.IntPtr(values[0])
			if f.MaxPrice != nil && *f.MaxPrice < values[0] {
				f.MaxPrice = nil
			}
		case boundBetween:
			low, high := values[0], values[1]
			if low > high {
				low, high = high, low
			}
			f.MinPrice = models.IntPtr(low)
			f.MaxPrice = models.IntPtr(high)
		case boundExactly:
			f.MinPrice = models.IntPtr(int(math.Round(float64(values[0]) * 0.95)))
			f.MaxPrice = models.IntPtr(int(math.Round(float64(values[0]) * 1.05)))
		}
	}
}

func isNonPrice(text string, end int) bool {
	return nonPriceUnit.MatchString(text[end:])
}

// betweenBounds applies the high bound's magnitude to a bare low bound that
// is smaller than the high's number, so "between 1 and 2 million" means
// 1,000,000 to 2,000,000 while "between 500000 and 2 million" keeps 500,000.
func betweenBounds(lowToken, highToken string) (low, high int, ok bool) {
	lowValue, lowScale, okLow := splitAmount(lowToken)
	highValue, highScale, okHigh := splitAmount(highToken)
	if !okLow || !okHigh {
		return 0, 0, false
	}
	if lowScale == 1 && highScale > 1 && lowValue < highValue {
		lowScale = highScale
	}
	return int(math.Round(lowValue * lowScale)), int(math.Round(highValue * highScale)), true
}

func extractArea(text string, f *models.FilterRecord) {
	if m := areaPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			f.MinArea = &n
			return
		}
	}
	if m := sizePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			f.MaxArea = &n
		}
	}
}

func extractPropertyType(text string, f *models.FilterRecord) {
	for _, term := range propertyTypeTerms {
		if term.pattern.MatchString(text) {
			f.PropertyType = term.ptype
			break
		}
	}
	if studioPattern.MatchString(text) && f.Rooms == nil {
		f.Rooms = models.IntPtr(0)
	}
}

func extractLocationFields(text string, f *models.FilterRecord) {
	if district, name, ok := lookupLandmark(text); ok {
		f.LocationQuery = district
		f.Keywords = name
	} else {
		f.LocationQuery, f.Keywords = extractLocation(text)
	}

	q := extractQualifier(text)
	if q != "" && !strings.Contains(strings.ToLower(f.LocationQuery), strings.ToLower(q)) {
		f.Keywords = appendKeyword(f.Keywords, q)
	}
}
