package models

type QuestionType string

const (
	PriceRange         QuestionType = "price_range"
	AvgPrice           QuestionType = "avg_price"
	CountListings      QuestionType = "count_listings"
	Availability       QuestionType = "availability"
	EstimatePrice      QuestionType = "estimate_price"
	ComparisonQuestion QuestionType = "comparison_question"
	AnalyticalQuestion QuestionType = "analytical_question"
	GeneralQuestion    QuestionType = "general_question"
)

// AnalysisKind narrows an analytical question to the computation that answers it.
type AnalysisKind string

const (
	AnalysisNone          AnalysisKind = ""
	AnalysisPrice         AnalysisKind = "price_analysis"
	AnalysisComparison    AnalysisKind = "comparison"
	AnalysisMarket        AnalysisKind = "market_analysis"
	AnalysisAffordability AnalysisKind = "affordability"
	AnalysisHowTo         AnalysisKind = "how_to"
	AnalysisInsight       AnalysisKind = "insight"
)

type ParseKind string

const (
	KindSearch        ParseKind = "search_request"
	KindQuestion      ParseKind = "question"
	KindMultiQuestion ParseKind = "multi_question"
)

// ParseResult is a tagged union over Kind. Question fields are only set for
// KindQuestion and Parts only for KindMultiQuestion.
type ParseResult struct {
	Kind         ParseKind     `json:"kind"`
	Query        string        `json:"query"`
	Filters      FilterRecord  `json:"filters"`
	QuestionType QuestionType  `json:"question_type,omitempty"`
	Analysis     AnalysisKind  `json:"analysis,omitempty"`
	Locations    []string      `json:"locations,omitempty"`
	UsedFallback bool          `json:"used_fallback"`
	Parts        []ParseResult `json:"parts,omitempty"`
}

func NewSearchRequest(query string, f FilterRecord) ParseResult {
	return ParseResult{Kind: KindSearch, Query: query, Filters: f}
}

func NewQuestion(query string, qt QuestionType, f FilterRecord) ParseResult {
	return ParseResult{Kind: KindQuestion, Query: query, QuestionType: qt, Filters: f}
}

func NewMultiQuestion(query string, parts []ParseResult) ParseResult {
	return ParseResult{Kind: KindMultiQuestion, Query: query, Parts: parts}
}

func (r ParseResult) IsQuestion() bool {
	return r.Kind == KindQuestion
}

// FallbackResult is the generative parser's reply. An empty value means the
// fallback produced nothing usable.
type FallbackResult struct {
	IsQuestion bool           `json:"is_question"`
	Intent     string         `json:"intent,omitempty"`
	Filters    map[string]any `json:"filters"`
}
