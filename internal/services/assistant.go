package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/nlp"
)

const DefaultHistorySize = 20

// HistoryEntry is one query handled within a session.
type HistoryEntry struct {
	Query   string           `json:"query"`
	Kind    models.ParseKind `json:"kind"`
	Results int              `json:"results"`
	At      time.Time        `json:"at"`
}

// Session holds per-conversation state. The caller owns its lifetime.
type Session struct {
	ID string

	mu         sync.Mutex
	history    []HistoryEntry
	maxHistory int
	lastUsed   time.Time
}

func NewSession(id string, maxHistory int) *Session {
	if maxHistory <= 0 {
		maxHistory = DefaultHistorySize
	}
	return &Session{ID: id, maxHistory: maxHistory, lastUsed: time.Now()}
}

func (s *Session) Record(e HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, e)
	if over := len(s.history) - s.maxHistory; over > 0 {
		s.history = append([]HistoryEntry(nil), s.history[over:]...)
	}
	s.lastUsed = e.At
}

// History returns a copy of the recorded entries, oldest first.
func (s *Session) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HistoryEntry(nil), s.history...)
}

func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Assistant turns free text into answers: it parses, searches and, for
// questions, runs the analytics.
type Assistant struct {
	pipeline      *nlp.Pipeline
	search        Searcher
	analytics     *Analytics
	questionLimit int
	logger        *logrus.Logger
}

func NewAssistant(pipeline *nlp.Pipeline, search Searcher, analytics *Analytics, questionLimit int, logger *logrus.Logger) *Assistant {
	if questionLimit <= 0 || questionLimit > MaxLimit {
		questionLimit = 50
	}
	return &Assistant{
		pipeline:      pipeline,
		search:        search,
		analytics:     analytics,
		questionLimit: questionLimit,
		logger:        logger,
	}
}

func (a *Assistant) ParseAndResolve(ctx context.Context, text string) models.ParseResult {
	return a.pipeline.ParseAndResolve(ctx, text)
}

func (a *Assistant) Execute(ctx context.Context, filters models.FilterRecord, page, limit int) (models.SearchResult, error) {
	return a.search.Execute(ctx, filters, page, limit)
}

// Ask parses text and answers it. Search requests use page and limit; a
// multi-part query answers each part in order.
func (a *Assistant) Ask(ctx context.Context, session *Session, text string, page, limit int) (models.AskResponse, error) {
	parsed := a.ParseAndResolve(ctx, text)
	resp := models.AskResponse{Parsed: parsed}
	if session != nil {
		resp.SessionID = session.ID
	}

	results := 0
	if parsed.Kind == models.KindMultiQuestion {
		multi := &models.MultiAnswer{IsMultiQuestion: true}
		for _, part := range parsed.Parts {
			ans, err := a.answer(ctx, part, DefaultPage, limit)
			if err != nil {
				return resp, err
			}
			multi.Answers = append(multi.Answers, models.QueryAnswer{
				Query:  part.Query,
				Type:   partType(part),
				Answer: ans,
			})
		}
		resp.Multi = multi
		results = len(multi.Answers)
	} else {
		ans, err := a.answer(ctx, parsed, page, limit)
		if err != nil {
			return resp, err
		}
		resp.Answer = ans
		if ans.Search != nil {
			results = len(ans.Search.Listings)
		}
	}

	if session != nil {
		session.Record(HistoryEntry{Query: text, Kind: parsed.Kind, Results: results, At: time.Now()})
	}

	a.logger.WithFields(logrus.Fields{
		"query":   text,
		"kind":    parsed.Kind,
		"results": results,
	}).Info("Answered query")

	return resp, nil
}

func partType(p models.ParseResult) string {
	if p.Kind == models.KindQuestion {
		return string(p.QuestionType)
	}
	return string(p.Kind)
}

func (a *Assistant) answer(ctx context.Context, p models.ParseResult, page, limit int) (*models.Answer, error) {
	if p.Kind != models.KindQuestion {
		return a.answerSearch(ctx, p, page, limit)
	}
	return a.answerQuestion(ctx, p), nil
}

func (a *Assistant) answerSearch(ctx context.Context, p models.ParseResult, page, limit int) (*models.Answer, error) {
	result, err := a.search.Execute(ctx, p.Filters, page, limit)
	if err != nil {
		return nil, err
	}
	return &models.Answer{
		Kind:        models.AnswerListings,
		Text:        searchSummary(result),
		Search:      &result,
		Insights:    searchInsights(result, p.Filters),
		Suggestions: searchSuggestions(result),
	}, nil
}

func searchSummary(r models.SearchResult) string {
	if len(r.Listings) == 0 {
		return "No properties found."
	}
	return "Found " + formatCount(r.TotalCount) + " properties."
}

func (a *Assistant) answerQuestion(ctx context.Context, q models.ParseResult) *models.Answer {
	switch {
	case q.QuestionType == models.GeneralQuestion:
		return generalAnswer(q.Query)
	case q.QuestionType == models.ComparisonQuestion, q.Analysis == models.AnalysisComparison:
		return a.compare(ctx, q)
	}

	result := a.fetch(ctx, q.Filters)
	listings := result.Listings

	switch q.QuestionType {
	case models.PriceRange:
		return a.withNoData(priceRangeAnswer(listings), listings)
	case models.AvgPrice:
		return a.withNoData(avgPriceAnswer(listings), listings)
	case models.CountListings:
		n := result.TotalCount
		if n < len(listings) {
			n = len(listings)
		}
		return countAnswer(n)
	case models.Availability:
		return availabilityAnswer(len(listings))
	case models.EstimatePrice:
		return a.withNoData(estimateAnswer(listings, q.Filters), listings)
	}

	switch q.Analysis {
	case models.AnalysisAffordability:
		if PriceStats(listings) == nil {
			listings = a.fetch(ctx, broaden(q.Filters)).Listings
		}
		return affordabilityAnswer(a.analytics.Affordability(listings, q.Query), q.Filters)
	case models.AnalysisHowTo:
		return howToAnswer(q.Query, q.Filters, result.TotalCount)
	case models.AnalysisMarket:
		return marketAnswer(listings, q.Filters)
	case models.AnalysisInsight:
		return insightAnswer(listings, q.Filters)
	default:
		return priceAnalysisAnswer(listings, q.Filters)
	}
}

// withNoData swaps a no-data answer for the empty-listings wording when the
// search itself came back empty.
func (a *Assistant) withNoData(ans *models.Answer, listings []models.Listing) *models.Answer {
	if ans.Kind == models.AnswerNoData && len(listings) == 0 {
		return models.NoData("No properties found.", noResultSuggestions)
	}
	return ans
}

func (a *Assistant) compare(ctx context.Context, q models.ParseResult) *models.Answer {
	if len(q.Locations) < 2 {
		return unresolvedComparison(q.Locations)
	}
	base := models.FilterRecord{Purpose: q.Filters.Purpose, PropertyType: q.Filters.PropertyType, Rooms: q.Filters.Rooms}
	return comparisonAnswer(a.analytics.Compare(ctx, q.Locations[0], q.Locations[1], base, a.questionLimit))
}

func (a *Assistant) fetch(ctx context.Context, filters models.FilterRecord) models.SearchResult {
	result, err := a.search.Execute(ctx, filters, DefaultPage, a.questionLimit)
	if err != nil {
		a.logger.WithError(err).Warn("Question search failed")
	}
	return result
}

// broaden keeps only the location, type, purpose and bedroom filters.
func broaden(f models.FilterRecord) models.FilterRecord {
	return models.FilterRecord{
		Purpose:       f.Purpose,
		PropertyType:  f.PropertyType,
		Rooms:         f.Rooms,
		LocationQuery: f.LocationQuery,
		Keywords:      f.Keywords,
	}
}
