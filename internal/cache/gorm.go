package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/repository"
)

// GormStore keeps entries in the search_queries and cached_properties tables.
type GormStore struct {
	repos  *repository.RepositoryManager
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Logger
}

func NewGormStore(repos *repository.RepositoryManager, ttl time.Duration, logger *logrus.Logger) *GormStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &GormStore{
		repos:  repos,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (s *GormStore) Find(ctx context.Context, key string) (string, bool, error) {
	q, err := s.repos.SearchQuery.FindLive(ctx, key, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up cache entry: %w", err)
	}
	return q.QueryID, true, nil
}

func (s *GormStore) Save(ctx context.Context, key string, listings []models.Listing, total int) (string, error) {
	now := s.now()
	id := uuid.NewString()

	err := s.repos.WithTx(ctx, func(tx *repository.RepositoryManager) error {
		if _, err := tx.SearchQuery.DeleteExpired(ctx, key, now); err != nil {
			return fmt.Errorf("failed to drop expired entry: %w", err)
		}

		if err := tx.SearchQuery.Create(ctx, &models.SearchQuery{
			QueryID:     id,
			QueryString: key,
			TotalCount:  total,
			ExpiresAt:   now.Add(s.ttl),
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		unique := uniqueListings(listings)
		rows := make([]models.CachedProperty, 0, len(unique))
		for i, l := range unique {
			rows = append(rows, models.NewCachedProperty(id, i, l))
		}
		return tx.CachedProperty.CreateBatch(ctx, rows)
	})

	if isUniqueViolation(err) {
		existing, ferr := s.repos.SearchQuery.FindByQueryString(ctx, key)
		if ferr != nil {
			return "", fmt.Errorf("failed to re-read cache entry after conflict: %w", ferr)
		}
		s.logger.WithFields(logrus.Fields{
			"key":      key,
			"query_id": existing.QueryID,
		}).Debug("Cache entry created concurrently, reusing it")
		return existing.QueryID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to save cache entry: %w", err)
	}

	return id, nil
}

func (s *GormStore) Read(ctx context.Context, id string) (Entry, error) {
	q, err := s.repos.SearchQuery.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read cache entry: %w", err)
	}

	rows, err := s.repos.CachedProperty.ListByQueryID(ctx, id)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read cached listings: %w", err)
	}

	listings := make([]models.Listing, 0, len(rows))
	for _, r := range rows {
		listings = append(listings, r.Listing())
	}
	return Entry{ID: id, Listings: listings, Total: q.TotalCount}, nil
}

func (s *GormStore) Stats(ctx context.Context) (models.CacheStats, error) {
	stats := models.CacheStats{Backend: "postgres"}

	all, err := s.repos.SearchQuery.CountAll(ctx)
	if err != nil {
		return stats, err
	}
	live, err := s.repos.SearchQuery.CountLive(ctx, s.now())
	if err != nil {
		return stats, err
	}

	stats.Entries = all
	stats.LiveEntries = live
	return stats, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite builds without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
