package nlp

import (
	"regexp"
	"strings"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

// Classification is the classifier's verdict for a single query.
type Classification struct {
	Kind         models.ParseKind
	QuestionType models.QuestionType
	Analysis     models.AnalysisKind
}

type questionRule struct {
	pattern      *regexp.Regexp
	questionType models.QuestionType
	analysis     models.AnalysisKind
}

// questionRules are evaluated in order; the first match names the sub-type.
var questionRules = []questionRule{
	{
		regexp.MustCompile(`\b(?:vs\.?|versus|compared? to|compared with|comparison|difference between)\b|\bcompare\b`),
		models.ComparisonQuestion, models.AnalysisComparison,
	},
	{
		regexp.MustCompile(`\bafford\b|\baffordab|\byears of work\b|\bsalary\b|\bhow long to save\b|\bhow many years\b`),
		models.AnalyticalQuestion, models.AnalysisAffordability,
	},
	{
		regexp.MustCompile(`\bhow (?:to|do i|can i|should i) (?:buy|purchase|sell|rent)\b|\bsteps to (?:buy|purchase|sell|rent)\b|\bbuying process\b`),
		models.AnalyticalQuestion, models.AnalysisHowTo,
	},
	{
		regexp.MustCompile(`\bmarket (?:analysis|trends?|overview|insights?|report|conditions?)\b|\bmarket\b.*\b(?:doing|like)\b`),
		models.AnalyticalQuestion, models.AnalysisMarket,
	},
	{
		regexp.MustCompile(`\b(?:investment|invest|roi|rental yield|yield|insights?)\b|\bworth investing\b`),
		models.AnalyticalQuestion, models.AnalysisInsight,
	},
	{
		regexp.MustCompile(`\bprice range\b|\bcheapest\b|\bmost expensive\b|\bmin(?:imum)? and max(?:imum)? price\b`),
		models.PriceRange, models.AnalysisPrice,
	},
	{
		regexp.MustCompile(`\b(?:average|avg|mean|median|typical)\b.*\b(?:price|cost|rent|value)s?\b|\bprice analysis\b|\bprice trends?\b`),
		models.AvgPrice, models.AnalysisPrice,
	},
	{
		regexp.MustCompile(`\bhow many\b|\bnumber of\b|\bcount (?:of|the)\b|\btotal listings\b`),
		models.CountListings, models.AnalysisNone,
	},
	{
		regexp.MustCompile(`^(?:is|are) there\b|\bare there any\b|\bis there any\b|\bdo you have\b|\bany available\b|\bavailable\?$`),
		models.Availability, models.AnalysisNone,
	},
	{
		regexp.MustCompile(`\bestimate\b|\bhow much (?:would|does|will|is|do|are|for)\b|\bhow much\b|\bworth\b|\bvalue of\b|\bvaluation\b`),
		models.EstimatePrice, models.AnalysisPrice,
	},
}

var (
	imperativeSearch = regexp.MustCompile(`^(?:please\s+)?(?:show|find|list|get|search|give me|display|fetch|look for|looking for|i want|i need|i'm looking for)\b`)
	exhaustive       = regexp.MustCompile(`\b(?:all|current|available)\b`)
	propertyNoun     = regexp.MustCompile(`\b(?:properties|property|listings?|homes?|houses?|villas?|apartments?|flats?|townhouses?|penthouses?|studios?|offices?|units?|plots?|lands?|duplex(?:es)?|compounds?|warehouses?|buildings?)\b`)
	interrogative    = regexp.MustCompile(`^(?:what|what's|whats|how|where|which|who|when|why|is|are|can|could|do|does|should|will|would|show|tell)\b`)
)

// Classify decides between a search request and a question. A query is a
// question only when an analytical rule matches and the search heuristics do
// not.
func Classify(text string) Classification {
	text = strings.ToLower(strings.TrimSpace(text))

	if IsSearchRequest(text) {
		return Classification{Kind: models.KindSearch}
	}

	for _, rule := range questionRules {
		if rule.pattern.MatchString(text) {
			return Classification{
				Kind:         models.KindQuestion,
				QuestionType: rule.questionType,
				Analysis:     rule.analysis,
			}
		}
	}

	return Classification{Kind: models.KindSearch}
}

// IsSearchRequest reports whether text opens with an imperative search verb or
// asks for all/current/available listings of a property type.
func IsSearchRequest(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if imperativeSearch.MatchString(text) {
		return true
	}
	return exhaustive.MatchString(text) && propertyNoun.MatchString(text) && !interrogative.MatchString(text)
}

// IsQuestionShaped reports whether the query reads as a question: it ends in
// "?" or opens with an interrogative.
func IsQuestionShaped(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.HasSuffix(text, "?") || interrogative.MatchString(text)
}

// QuestionTypeFromIntent maps the fallback model's intent label onto a
// question type.
func QuestionTypeFromIntent(intent string) (models.QuestionType, models.AnalysisKind) {
	switch strings.ToLower(strings.TrimSpace(intent)) {
	case "price_info", "avg_price", "average_price":
		return models.AvgPrice, models.AnalysisPrice
	case "price_range":
		return models.PriceRange, models.AnalysisPrice
	case "count", "count_listings":
		return models.CountListings, models.AnalysisNone
	case "availability":
		return models.Availability, models.AnalysisNone
	case "estimate_price", "estimate":
		return models.EstimatePrice, models.AnalysisPrice
	case "comparison", "compare", "comparison_question":
		return models.ComparisonQuestion, models.AnalysisComparison
	case "affordability":
		return models.AnalyticalQuestion, models.AnalysisAffordability
	case "market", "market_insights", "market_analysis":
		return models.AnalyticalQuestion, models.AnalysisMarket
	default:
		return models.GeneralQuestion, models.AnalysisNone
	}
}
