package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

var noResultSuggestions = []string{
	"Try a broader location search",
	"Consider different property types",
	"Adjust your price range",
	"Check spelling of location names",
}

// formatAED renders a whole-dirham amount with thousands separators.
func formatAED(v float64) string {
	return message.NewPrinter(language.English).Sprintf("AED %.0f", math.Round(v))
}

func formatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func locationLabel(f models.FilterRecord, fallback string) string {
	if f.LocationQuery != "" {
		return f.LocationQuery
	}
	return fallback
}

func priceRangeAnswer(listings []models.Listing) *models.Answer {
	stats := PriceStats(listings)
	if stats == nil {
		return models.NoData("No valid price data found.", noResultSuggestions)
	}
	return &models.Answer{
		Kind:  models.AnswerPriceRange,
		Text:  fmt.Sprintf("The price range is %s – %s", formatAED(stats.Min), formatAED(stats.Max)),
		Stats: stats,
	}
}

func avgPriceAnswer(listings []models.Listing) *models.Answer {
	stats := PriceStats(listings)
	if stats == nil {
		return models.NoData("No valid price data found.", noResultSuggestions)
	}
	return &models.Answer{
		Kind:  models.AnswerAvgPrice,
		Text:  fmt.Sprintf("The average price is %s", formatAED(stats.Average)),
		Stats: stats,
	}
}

// countAnswer reports zero as a count, not as missing data.
func countAnswer(n int) *models.Answer {
	return &models.Answer{
		Kind:  models.AnswerCount,
		Text:  fmt.Sprintf("There are %d listings available.", n),
		Count: &n,
	}
}

func availabilityAnswer(n int) *models.Answer {
	available := n > 0
	text := "No, nothing available."
	if available {
		text = "Yes, there are properties available."
	}
	return &models.Answer{
		Kind:      models.AnswerAvailability,
		Text:      text,
		Available: &available,
	}
}

func estimateAnswer(listings []models.Listing, filters models.FilterRecord) *models.Answer {
	est := Estimate(listings, filters)
	if est == nil {
		return models.NoData("No valid price/size data to estimate.", noResultSuggestions)
	}

	text := fmt.Sprintf("Based on %d similar properties in %s, the average price is %s (%s per sqft).",
		est.SampleSize, locationLabel(filters, "the area"), formatAED(est.AveragePrice),
		strings.TrimPrefix(formatAED(est.PricePerSqft), "AED "))
	if est.EstimatedPrice != nil {
		text += fmt.Sprintf(" Estimated price for your property (%d sqft) is around %s.",
			*est.TargetArea, formatAED(*est.EstimatedPrice))
	}

	return &models.Answer{
		Kind:     models.AnswerEstimate,
		Text:     text,
		Estimate: est,
	}
}

func unresolvedComparison(found []string) *models.Answer {
	text := "Could not identify two locations to compare."
	if len(found) == 1 {
		text = fmt.Sprintf("Could not identify two locations to compare (only found %s).", found[0])
	}
	return &models.Answer{
		Kind: models.AnswerUnresolved,
		Text: text,
		Suggestions: []string{
			"Try 'Compare prices in Downtown Dubai vs Dubai Marina'",
			"Try 'What is the difference between JVC and JLT?'",
		},
	}
}

func comparisonAnswer(cmp *models.Comparison) *models.Answer {
	a, b := cmp.First, cmp.Second
	ans := &models.Answer{
		Kind:       models.AnswerComparison,
		Comparison: cmp,
	}

	if a.Stats == nil || b.Stats == nil {
		ans.Text = "Comparison results:"
		for _, side := range []models.LocationStats{a, b} {
			note := fmt.Sprintf("%s: %d properties found", side.Location, side.Count)
			if side.Stats != nil {
				note += fmt.Sprintf(" (avg: %s)", formatAED(side.Stats.Average))
			} else {
				note += " (no price data)"
			}
			ans.Notes = append(ans.Notes, note)
		}
		return ans
	}

	direction := "lower"
	if cmp.Higher == a.Location {
		direction = "higher"
	}
	ans.Text = fmt.Sprintf("Comparison between %s and %s:", a.Location, b.Location)
	ans.Notes = []string{
		fmt.Sprintf("%s has an average price of %s (%d properties)", a.Location, formatAED(a.Stats.Average), a.Count),
		fmt.Sprintf("%s has an average price of %s (%d properties)", b.Location, formatAED(b.Stats.Average), b.Count),
		fmt.Sprintf("Difference: %s (%.1f%% %s in %s)", formatAED(cmp.Difference), cmp.DifferencePercent, direction, a.Location),
	}
	return ans
}

func affordabilityAnswer(aff *models.Affordability, filters models.FilterRecord) *models.Answer {
	if aff == nil {
		return models.NoData("No properties found to estimate affordability.", []string{
			"Try specifying the location more clearly (e.g., 'Victory Heights')",
			"Include the property type (e.g., 'Carmen villa')",
			"Ask again with your annual salary, e.g., 'with 300k AED salary'",
		})
	}

	ans := &models.Answer{
		Kind:          models.AnswerAffordability,
		Text:          fmt.Sprintf("Estimated years of work needed to buy in %s:", locationLabel(filters, "the area")),
		Affordability: aff,
	}

	rate := int(math.Round(aff.SavingsRate * 100))
	if aff.Infinite {
		ans.Notes = append(ans.Notes, "With no annual savings the purchase cannot be funded from salary alone.")
	} else {
		ans.Notes = append(ans.Notes, fmt.Sprintf("With %s/year income and %d%% savings, you'd need ~%.1f years for the average property.",
			formatAED(float64(aff.Salary)), rate, *aff.Years))
	}
	ans.Notes = append(ans.Notes,
		"Provide your actual yearly income or savings rate for a personalized estimate.",
		"Using mortgage financing can significantly reduce savings time.",
	)
	return ans
}

func priceAnalysisAnswer(listings []models.Listing, filters models.FilterRecord) *models.Answer {
	if len(listings) == 0 {
		return models.NoData("No properties found for price analysis. Try adjusting your search criteria.", []string{
			"Try a broader location search",
			"Consider different property types",
			"Check if the location name is spelled correctly",
		})
	}
	stats := PriceStats(listings)
	if stats == nil {
		return models.NoData("I found properties but couldn't analyze prices as price information is not available.", nil)
	}
	return &models.Answer{
		Kind:  models.AnswerPriceAnalysis,
		Text:  fmt.Sprintf("Based on %d available properties in %s, here's the price analysis:", len(listings), locationLabel(filters, "the search area")),
		Stats: stats,
		Notes: []string{
			fmt.Sprintf("The average price is %s", formatAED(stats.Average)),
			fmt.Sprintf("Prices range from %s to %s", formatAED(stats.Min), formatAED(stats.Max)),
			fmt.Sprintf("Found %d properties matching your criteria", len(listings)),
		},
	}
}

func marketAnswer(listings []models.Listing, filters models.FilterRecord) *models.Answer {
	market := Market(listings)
	if market == nil {
		return models.NoData("No current market data available. The market may be quiet or the search criteria may be too specific.", []string{
			"Try broader location search",
			"Consider different property types",
			"Contact a local real estate agent for market insights",
		})
	}

	ans := &models.Answer{
		Kind:   models.AnswerMarket,
		Text:   fmt.Sprintf("Market analysis for %s:", locationLabel(filters, "the area")),
		Market: market,
		Notes:  []string{fmt.Sprintf("Found %d active listings", market.TotalListings)},
	}
	if types := topKeys(market.PropertyTypes, 3); len(types) > 0 {
		ans.Notes = append(ans.Notes, "Most listed property types: "+strings.Join(types, ", "))
	}
	if market.Stats != nil {
		ans.Notes = append(ans.Notes, fmt.Sprintf("Average asking price is %s", formatAED(market.Stats.Average)))
	}
	return ans
}

// insightAnswer covers investment-style questions with the market figures
// plus a pointer to the rental side.
func insightAnswer(listings []models.Listing, filters models.FilterRecord) *models.Answer {
	ans := marketAnswer(listings, filters)
	if ans.Kind != models.AnswerMarket {
		return ans
	}
	ans.Text = fmt.Sprintf("Investment snapshot for %s:", locationLabel(filters, "the area"))
	if filters.Purpose != models.PurposeForRent {
		ans.Suggestions = append(ans.Suggestions,
			fmt.Sprintf("Ask for rentals in %s to compare asking rents with sale prices", locationLabel(filters, "this area")))
	}
	return ans
}

var howToSteps = map[string][]string{
	"buy": {
		"Get pre-approval: contact a bank for mortgage pre-approval to know your budget",
		"Find a property: search for available properties in the area",
		"Make an offer: work with a real estate agent to make a competitive offer",
		"Legal process: complete due diligence, property inspection and legal documentation",
		"Final payment: complete the transaction and transfer ownership",
	},
	"sell": {
		"Property valuation: get a professional valuation to set the right price",
		"Prepare the property: clean, stage and make necessary repairs",
		"List the property: work with a real estate agent or list online",
		"Showings and negotiations: handle viewings and negotiate offers",
		"Legal process: complete documentation and transfer ownership",
	},
	"rent": {
		"Set a budget: rents are usually paid in one to four cheques a year",
		"Shortlist properties: search for rentals in the area and book viewings",
		"Agree terms: negotiate the rent, payment schedule and maintenance",
		"Sign the tenancy contract and register it with Ejari",
		"Pay the security deposit and connect utilities before moving in",
	},
}

func howToAnswer(query string, filters models.FilterRecord, listingCount int) *models.Answer {
	lower := strings.ToLower(query)
	action := "buy"
	switch {
	case strings.Contains(lower, "sell"):
		action = "sell"
	case strings.Contains(lower, "rent"):
		action = "rent"
	}

	propertyType := "property"
	if filters.PropertyType != "" {
		propertyType = string(filters.PropertyType)
	}

	steps := make([]string, len(howToSteps[action]))
	for i, s := range howToSteps[action] {
		steps[i] = fmt.Sprintf("%d. %s", i+1, s)
	}

	return &models.Answer{
		Kind:  models.AnswerHowTo,
		Text:  fmt.Sprintf("Here's how to %s a %s in %s:", action, propertyType, locationLabel(filters, "Dubai")),
		Steps: steps,
		Count: &listingCount,
	}
}

func generalAnswer(query string) *models.Answer {
	return &models.Answer{
		Kind: models.AnswerGeneral,
		Text: fmt.Sprintf("I understand you're asking about '%s'. I can help with:", query),
		Notes: []string{
			"Price analysis and market insights",
			"How-to guides for buying/selling",
			"Property search and listings",
			"Location-specific information",
		},
		Suggestions: []string{
			"Try asking 'What's the average price of villas in Dubai?'",
			"Ask 'How to buy a villa in Damac Hills?'",
			"Request 'Show me all villas for sale in Dubai Marina'",
		},
	}
}

// searchInsights annotates a search result with price and location notes.
func searchInsights(result models.SearchResult, filters models.FilterRecord) []models.Insight {
	if len(result.Listings) == 0 {
		return []models.Insight{{
			Type:        "no_results",
			Message:     "No properties found matching your criteria. Try adjusting your search parameters.",
			Suggestions: noResultSuggestions,
		}}
	}

	var insights []models.Insight
	if stats := PriceStats(result.Listings); stats != nil {
		insights = append(insights, models.Insight{
			Type: "price_analysis",
			Message: fmt.Sprintf("Found %d properties with prices ranging from %s to %s",
				len(result.Listings), formatAED(stats.Min), formatAED(stats.Max)),
			Data: map[string]any{
				"average_price":  stats.Average,
				"min_price":      stats.Min,
				"max_price":      stats.Max,
				"property_count": len(result.Listings),
			},
		})
	}

	counts := make(map[string]int)
	for _, l := range result.Listings {
		if l.LocationName != "" {
			counts[l.LocationName]++
		}
	}
	if len(counts) > 0 {
		insights = append(insights, models.Insight{
			Type: "location_analysis",
			Message: fmt.Sprintf("Properties found in %d different areas within %s",
				len(counts), locationLabel(filters, "the search area")),
			Data: map[string]any{
				"unique_locations": len(counts),
				"top_locations":    topKeys(counts, 5),
			},
		})
	}
	return insights
}

func searchSuggestions(result models.SearchResult) []string {
	if len(result.Listings) == 0 {
		return []string{
			"Try searching in nearby areas",
			"Consider different property types",
			"Adjust your budget range",
		}
	}

	suggestions := []string{
		"Would you like me to filter by price range?",
		"I can help you compare similar properties",
	}
	if result.TotalCount > result.Limit {
		suggestions = append(suggestions, fmt.Sprintf("There are %s matches in total. Would you like me to narrow down the search?", formatCount(result.TotalCount)))
	}
	if stats := PriceStats(result.Listings); stats != nil {
		suggestions = append(suggestions, fmt.Sprintf("The average price is %s. Would you like to see properties around this price?", formatAED(stats.Average)))
	}
	return suggestions
}

// topKeys returns up to n keys by descending count, ties broken by name.
func topKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
