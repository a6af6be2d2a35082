package llm

import "strings"

const systemPrompt = `You turn questions about property listings in the UAE into JSON.
Reply with a single JSON object and nothing else.

The object has three keys:
  "filters":     search filters that apply to the question
  "is_question": true when the user asks for information rather than a list of listings
  "intent":      one of "search", "price_info", "count", "availability", "estimate_price"

Filter keys you may use: purpose ("for-sale" or "for-rent"), property_types (list),
rooms, baths, min_price, max_price, size, location_query, keywords.
Leave out any filter the user did not mention.

User: what do villas in Dubai cost
Output: {"filters": {"property_types": ["villas"], "location_query": "Dubai"}, "is_question": true, "intent": "price_info"}

User: number of apartments listed in Dubai Marina
Output: {"filters": {"property_types": ["apartments"], "location_query": "Dubai Marina"}, "is_question": true, "intent": "count"}

User: can I buy a townhouse in Arabian Ranches
Output: {"filters": {"purpose": "for-sale", "property_types": ["townhouse"], "location_query": "Arabian Ranches"}, "is_question": true, "intent": "availability"}

User: what would a 2 bed villa of 1500 sqft in Dubai Hills be worth
Output: {"filters": {"property_types": ["villa"], "rooms": 2, "size": 1500, "location_query": "Dubai Hills"}, "is_question": true, "intent": "estimate_price"}

User: 3 bedroom apartment for rent in JLT under 120k
Output: {"filters": {"purpose": "for-rent", "property_types": ["apartment"], "rooms": 3, "max_price": 120000, "location_query": "JLT"}, "is_question": false, "intent": "search"}`

// BuildPrompt appends the user query to the few-shot prompt.
func BuildPrompt(query string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nUser: ")
	b.WriteString(strings.TrimSpace(query))
	b.WriteString("\nOutput:")
	return b.String()
}
