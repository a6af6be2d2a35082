package nlp

import (
	"context"
	"strings"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/sirupsen/logrus"
)

// MinConfidentFields is the number of extracted fields below which the
// fallback resolver is consulted.
const MinConfidentFields = 3

// Fallback resolves a query the pattern rules could not pin down. It must not
// fail; an empty FallbackResult signals "nothing learned".
type Fallback interface {
	Resolve(ctx context.Context, query string) models.FallbackResult
}

type Pipeline struct {
	fallback Fallback
	logger   *logrus.Logger
}

// NewPipeline builds the parser. fallback may be nil to run pattern-only.
func NewPipeline(fallback Fallback, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		fallback: fallback,
		logger:   logger,
	}
}

// ParseAndResolve turns free text into a search request, a question, or an
// ordered set of independently resolved parts.
func (p *Pipeline) ParseAndResolve(ctx context.Context, text string) models.ParseResult {
	text = strings.TrimSpace(text)
	segments := Split(text)

	if len(segments) == 1 {
		return p.resolveSegment(ctx, segments[0])
	}

	parts := make([]models.ParseResult, 0, len(segments))
	for _, segment := range segments {
		parts = append(parts, p.resolveSegment(ctx, segment))
	}

	p.logger.WithFields(logrus.Fields{
		"query": text,
		"parts": len(parts),
	}).Debug("Split multi-part query")

	return models.NewMultiQuestion(text, parts)
}

func (p *Pipeline) resolveSegment(ctx context.Context, segment string) models.ParseResult {
	lower := strings.ToLower(segment)

	filters, confidence := Extract(lower)
	class := Classify(lower)

	usedFallback := false
	if p.fallback != nil && NeedsFallback(lower, confidence) {
		fb := p.fallback.Resolve(ctx, segment)
		llmFilters := NormalizeRaw(fb.Filters)
		if !llmFilters.IsEmpty() || fb.IsQuestion {
			usedFallback = true
		}
		filters = Merge(filters, llmFilters)

		// The pattern verdict stands unless it found no question and the
		// query itself reads like one.
		if class.Kind == models.KindSearch && fb.IsQuestion && IsQuestionShaped(lower) && !IsSearchRequest(lower) {
			qt, analysis := QuestionTypeFromIntent(fb.Intent)
			class = Classification{Kind: models.KindQuestion, QuestionType: qt, Analysis: analysis}
		}
	}

	filters = Sanitize(filters)

	p.logger.WithFields(logrus.Fields{
		"query":         segment,
		"kind":          class.Kind,
		"question_type": class.QuestionType,
		"confidence":    confidence,
		"fallback":      usedFallback,
	}).Debug("Resolved query")

	var result models.ParseResult
	if class.Kind == models.KindQuestion {
		result = models.NewQuestion(segment, class.QuestionType, filters)
		result.Analysis = class.Analysis
		if class.QuestionType == models.ComparisonQuestion {
			result.Locations = ExtractComparisonLocations(lower)
			if len(result.Locations) == 0 && filters.LocationQuery != "" {
				result.Locations = []string{filters.LocationQuery}
			}
		}
	} else {
		result = models.NewSearchRequest(segment, filters)
	}
	result.UsedFallback = usedFallback
	return result
}

// NeedsFallback reports whether pattern extraction is too thin to trust: too
// few fields, or a question-shaped query.
func NeedsFallback(text string, confidence int) bool {
	return confidence < MinConfidentFields || IsQuestionShaped(text)
}
