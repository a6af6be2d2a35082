package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/cache"
	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/provider"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var ErrInvalidPaging = errors.New("invalid paging")

// Searcher runs a filtered listing search.
type Searcher interface {
	Execute(ctx context.Context, filters models.FilterRecord, page, limit int) (models.SearchResult, error)
}

// SearchService answers plain searches from the query cache, falling back to
// the listings provider on a miss.
type SearchService struct {
	provider provider.Provider
	cache    cache.Store
	logger   *logrus.Logger
}

func NewSearchService(p provider.Provider, store cache.Store, logger *logrus.Logger) *SearchService {
	return &SearchService{
		provider: p,
		cache:    store,
		logger:   logger,
	}
}

// Execute returns one page of listings. Zero page and limit take the
// defaults. Provider and cache failures degrade to an empty or uncached
// result; only invalid paging is an error.
func (s *SearchService) Execute(ctx context.Context, filters models.FilterRecord, page, limit int) (models.SearchResult, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		return models.SearchResult{}, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidPaging, page)
	}
	if limit < 1 || limit > MaxLimit {
		return models.SearchResult{}, fmt.Errorf("%w: limit must be between 1 and %d, got %d", ErrInvalidPaging, MaxLimit, limit)
	}

	key := cache.Key(filters, page, limit)
	logger := s.logger.WithFields(logrus.Fields{
		"key":   key,
		"page":  page,
		"limit": limit,
	})

	if entry, ok := s.fromCache(ctx, key, logger); ok {
		listings := entry.Listings
		if len(listings) > limit {
			listings = listings[:limit]
		}
		logger.WithField("listings", len(listings)).Debug("Cache hit")
		result := newSearchResult(listings, entry.Total, page, limit)
		result.Cached = true
		return result, nil
	}

	fetched, err := s.provider.Search(ctx, filters, page, limit)
	if err != nil {
		logger.WithError(err).Warn("Provider search failed, returning no listings")
		return newSearchResult(nil, 0, page, limit), nil
	}

	total := fetched.Total
	if total < len(fetched.Listings) {
		total = len(fetched.Listings)
	}

	if len(fetched.Listings) > 0 && s.cache != nil {
		if _, err := s.cache.Save(ctx, key, fetched.Listings, total); err != nil {
			logger.WithError(err).Warn("Failed to cache provider results")
		}
	}

	logger.WithFields(logrus.Fields{
		"listings": len(fetched.Listings),
		"total":    total,
	}).Debug("Provider search completed")

	return newSearchResult(fetched.Listings, total, page, limit), nil
}

func (s *SearchService) fromCache(ctx context.Context, key string, logger *logrus.Entry) (cache.Entry, bool) {
	if s.cache == nil {
		return cache.Entry{}, false
	}

	id, ok, err := s.cache.Find(ctx, key)
	if err != nil {
		logger.WithError(err).Warn("Cache lookup failed")
		return cache.Entry{}, false
	}
	if !ok {
		return cache.Entry{}, false
	}

	entry, err := s.cache.Read(ctx, id)
	if err != nil {
		logger.WithError(err).Warn("Cache read failed")
		return cache.Entry{}, false
	}
	return entry, true
}

func newSearchResult(listings []models.Listing, total, page, limit int) models.SearchResult {
	if listings == nil {
		listings = []models.Listing{}
	}
	totalPages := 1
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.SearchResult{
		Listings:   listings,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
	}
}
