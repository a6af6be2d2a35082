package nlp

import (
	"fmt"
	"math"
	"strings"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

// key aliases accepted from loosely typed filter maps, in priority order
var (
	locationKeys = []string{"query", "location_query", "location"}
	roomKeys     = []string{"beds", "rooms", "bedrooms"}
	bathKeys     = []string{"baths", "bathrooms"}
	minPriceKeys = []string{"min_price", "price_min"}
	maxPriceKeys = []string{"max_price", "price_max", "budget"}
	minAreaKeys  = []string{"min_area", "area_min"}
	maxAreaKeys  = []string{"max_area", "size", "area"}
)

var typeAliases = map[string]models.PropertyType{
	"house":           models.Villa,
	"flat":            models.Apartment,
	"studio":          models.Apartment,
	"building":        models.WholeBuilding,
	"plot":            models.Land,
	"town house":      models.Townhouse,
	"hotel apartment": models.HotelApartment,
	"full floor":      models.FullFloor,
	"half floor":      models.HalfFloor,
	"whole building":  models.WholeBuilding,
}

// NormalizeRaw converts a loosely typed filter map into a FilterRecord,
// applying the field renames: location_query becomes the location, rooms
// become beds, the first of property_types is singularized, size becomes
// max_area. Unusable values are dropped.
func NormalizeRaw(raw map[string]any) models.FilterRecord {
	var f models.FilterRecord
	if len(raw) == 0 {
		return f
	}

	if s, ok := firstString(raw, "purpose"); ok {
		f.Purpose = normalizePurpose(s)
	}

	if pt, ok := firstString(raw, "property_type"); ok {
		f.PropertyType = normalizePropertyType(pt)
	}
	if f.PropertyType == "" {
		if list, ok := raw["property_types"].([]any); ok && len(list) > 0 {
			if s, ok := list[0].(string); ok {
				f.PropertyType = normalizePropertyType(s)
			}
		} else if s, ok := raw["property_types"].(string); ok {
			f.PropertyType = normalizePropertyType(s)
		}
	}

	f.Rooms = firstInt(raw, roomKeys...)
	f.Baths = firstInt(raw, bathKeys...)
	f.MinPrice = firstInt(raw, minPriceKeys...)
	f.MaxPrice = firstInt(raw, maxPriceKeys...)
	f.MinArea = firstInt(raw, minAreaKeys...)
	f.MaxArea = firstInt(raw, maxAreaKeys...)

	if s, ok := firstString(raw, locationKeys...); ok {
		f.LocationQuery = cleanLocation(s)
	}

	switch kw := raw["keywords"].(type) {
	case string:
		f.Keywords = strings.TrimSpace(kw)
	case []any:
		var words []string
		for _, w := range kw {
			if s, ok := w.(string); ok && strings.TrimSpace(s) != "" {
				words = append(words, strings.TrimSpace(s))
			}
		}
		f.Keywords = strings.Join(words, " ")
	}

	return Sanitize(f)
}

// Merge reconciles the pattern and fallback records. A fallback value is used
// only where the pattern path left the field absent and it does not invert a
// price or area range.
func Merge(pattern, fallback models.FilterRecord) models.FilterRecord {
	out := pattern.Clone()
	if out.Purpose == "" {
		out.Purpose = fallback.Purpose
	}
	if out.PropertyType == "" {
		out.PropertyType = fallback.PropertyType
	}
	fill := func(dst **int, src *int) {
		if *dst == nil && src != nil {
			v := *src
			*dst = &v
		}
	}
	fill(&out.Rooms, fallback.Rooms)
	fill(&out.Baths, fallback.Baths)
	fill(&out.MinPrice, fallback.MinPrice)
	fill(&out.MaxPrice, fallback.MaxPrice)
	fill(&out.MinArea, fallback.MinArea)
	fill(&out.MaxArea, fallback.MaxArea)
	keepRange(&out.MinPrice, &out.MaxPrice, pattern.MinPrice, pattern.MaxPrice)
	keepRange(&out.MinArea, &out.MaxArea, pattern.MinArea, pattern.MaxArea)
	if out.LocationQuery == "" {
		out.LocationQuery = fallback.LocationQuery
	}
	if out.Keywords == "" {
		out.Keywords = fallback.Keywords
	}
	return out
}

// keepRange drops fallback bounds that would invert a range. A pattern bound
// always survives; when both bounds came from the fallback and conflict,
// neither is kept.
func keepRange(low, high **int, patternLow, patternHigh *int) {
	if *low == nil || *high == nil || **low <= **high {
		return
	}
	if patternLow == nil {
		*low = nil
	}
	if patternHigh == nil {
		*high = nil
	}
}

// Sanitize drops fields that fail validation so the record always passes
// FilterRecord.Validate.
func Sanitize(f models.FilterRecord) models.FilterRecord {
	if f.Purpose != "" && !f.Purpose.Valid() {
		f.Purpose = ""
	}
	if f.PropertyType != "" && !f.PropertyType.Valid() {
		f.PropertyType = ""
	}
	for _, p := range []**int{&f.Rooms, &f.Baths, &f.MinPrice, &f.MaxPrice, &f.MinArea, &f.MaxArea} {
		if *p != nil && **p < 0 {
			*p = nil
		}
	}
	return f
}

func normalizePurpose(s string) models.Purpose {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "rent"):
		return models.PurposeForRent
	case strings.Contains(s, "sale"), strings.Contains(s, "buy"), strings.Contains(s, "purchase"):
		return models.PurposeForSale
	}
	return ""
}

func normalizePropertyType(s string) models.PropertyType {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)

	for _, candidate := range []string{s, strings.TrimSuffix(s, "s"), strings.TrimSuffix(s, "es")} {
		if alias, ok := typeAliases[candidate]; ok {
			return alias
		}
		if pt := models.PropertyType(strings.ReplaceAll(candidate, " ", "-")); pt.Valid() {
			return pt
		}
	}
	return ""
}

func firstString(raw map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

func firstInt(raw map[string]any, keys ...string) *int {
	for _, k := range keys {
		if n, ok := toInt(raw[k]); ok {
			return &n
		}
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t)), true
	case int:
		return t, true
	case string:
		return NormalizePrice(t)
	case []any:
		if len(t) > 0 {
			return toInt(t[0])
		}
	case nil:
	default:
		return NormalizePrice(fmt.Sprint(t))
	}
	return 0, false
}
