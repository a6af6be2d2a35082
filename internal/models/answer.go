package models

type AnswerKind string

const (
	AnswerListings      AnswerKind = "listings"
	AnswerPriceRange    AnswerKind = "price_range"
	AnswerAvgPrice      AnswerKind = "avg_price"
	AnswerCount         AnswerKind = "count_listings"
	AnswerAvailability  AnswerKind = "availability"
	AnswerEstimate      AnswerKind = "estimate_price"
	AnswerComparison    AnswerKind = "comparison"
	AnswerPriceAnalysis AnswerKind = "price_analysis"
	AnswerAffordability AnswerKind = "affordability"
	AnswerMarket        AnswerKind = "market_analysis"
	AnswerHowTo         AnswerKind = "how_to"
	AnswerGeneral       AnswerKind = "general"
	AnswerNoData        AnswerKind = "no_data"
	AnswerUnresolved    AnswerKind = "unresolved"
)

// Answer is the structured reply to one parsed query. Kind selects which of
// the optional payloads is populated.
type Answer struct {
	Kind          AnswerKind     `json:"type"`
	Text          string         `json:"text"`
	Count         *int           `json:"count,omitempty"`
	Available     *bool          `json:"available,omitempty"`
	Stats         *PriceStats    `json:"stats,omitempty"`
	Estimate      *Estimate      `json:"estimate,omitempty"`
	Comparison    *Comparison    `json:"comparison,omitempty"`
	Affordability *Affordability `json:"affordability,omitempty"`
	Market        *MarketInsight `json:"market,omitempty"`
	Steps         []string       `json:"steps,omitempty"`
	Search        *SearchResult  `json:"search,omitempty"`
	Insights      []Insight      `json:"insights,omitempty"`
	Notes         []string       `json:"notes,omitempty"`
	Suggestions   []string       `json:"suggestions,omitempty"`
}

// NoData is the answer for an empty or non-numeric listing set.
func NoData(text string, suggestions []string) *Answer {
	return &Answer{Kind: AnswerNoData, Text: text, Suggestions: suggestions}
}

type PriceStats struct {
	Average     float64 `json:"average"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Count       int     `json:"count"`
	PricedCount int     `json:"priced_count"`
}

type Estimate struct {
	AveragePrice   float64  `json:"avg_price"`
	MinPrice       float64  `json:"min_price"`
	MaxPrice       float64  `json:"max_price"`
	SampleSize     int      `json:"sample_size"`
	PricePerSqft   float64  `json:"price_per_sqft"`
	TargetArea     *int     `json:"target_area,omitempty"`
	EstimatedPrice *float64 `json:"estimated_price,omitempty"`
}

type LocationStats struct {
	Location string      `json:"location"`
	Count    int         `json:"count"`
	Stats    *PriceStats `json:"stats,omitempty"`
}

type Comparison struct {
	First             LocationStats `json:"first"`
	Second            LocationStats `json:"second"`
	Difference        float64       `json:"difference"`
	DifferencePercent float64       `json:"difference_percent"`
	Higher            string        `json:"higher"`
}

// Affordability reports years of saving needed. Years is nil when the
// annual savings are zero (infinite).
type Affordability struct {
	AveragePrice  float64  `json:"avg_price"`
	Salary        int      `json:"salary"`
	SavingsRate   float64  `json:"savings_rate"`
	AnnualSavings float64  `json:"annual_savings"`
	Years         *float64 `json:"years,omitempty"`
	Infinite      bool     `json:"infinite"`
}

type MarketInsight struct {
	TotalListings int            `json:"total_listings"`
	PropertyTypes map[string]int `json:"property_types"`
	Locations     map[string]int `json:"locations"`
	Stats         *PriceStats    `json:"stats,omitempty"`
}

type Insight struct {
	Type        string         `json:"type"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

type QueryAnswer struct {
	Query  string  `json:"query"`
	Type   string  `json:"type"`
	Answer *Answer `json:"answer"`
}

type MultiAnswer struct {
	IsMultiQuestion bool          `json:"is_multi_question"`
	Answers         []QueryAnswer `json:"answers"`
}
