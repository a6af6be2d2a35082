package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

// SearchQueryRepositoryImpl implements SearchQueryRepository
type SearchQueryRepositoryImpl struct {
	db *gorm.DB
}

func NewSearchQueryRepository(db *gorm.DB) models.SearchQueryRepository {
	return &SearchQueryRepositoryImpl{db: db}
}

func (r *SearchQueryRepositoryImpl) Create(ctx context.Context, query *models.SearchQuery) error {
	return r.db.WithContext(ctx).Create(query).Error
}

func (r *SearchQueryRepositoryImpl) FindByID(ctx context.Context, queryID string) (*models.SearchQuery, error) {
	var query models.SearchQuery
	err := r.db.WithContext(ctx).
		Where("query_id = ?", queryID).
		First(&query).Error
	if err != nil {
		return nil, err
	}
	return &query, nil
}

func (r *SearchQueryRepositoryImpl) FindByQueryString(ctx context.Context, queryString string) (*models.SearchQuery, error) {
	var query models.SearchQuery
	err := r.db.WithContext(ctx).
		Where("query_string = ?", queryString).
		First(&query).Error
	if err != nil {
		return nil, err
	}
	return &query, nil
}

func (r *SearchQueryRepositoryImpl) FindLive(ctx context.Context, queryString string, now time.Time) (*models.SearchQuery, error) {
	var query models.SearchQuery
	err := r.db.WithContext(ctx).
		Where("query_string = ? AND expires_at > ?", queryString, now).
		First(&query).Error
	if err != nil {
		return nil, err
	}
	return &query, nil
}

// DeleteExpired removes the expired row for queryString together with its
// listings.
func (r *SearchQueryRepositoryImpl) DeleteExpired(ctx context.Context, queryString string, now time.Time) (int64, error) {
	db := r.db.WithContext(ctx)

	stale := db.Model(&models.SearchQuery{}).
		Select("query_id").
		Where("query_string = ? AND expires_at <= ?", queryString, now)

	if err := db.Where("query_id IN (?)", stale).Delete(&models.CachedProperty{}).Error; err != nil {
		return 0, err
	}

	result := db.Where("query_string = ? AND expires_at <= ?", queryString, now).
		Delete(&models.SearchQuery{})
	return result.RowsAffected, result.Error
}

func (r *SearchQueryRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SearchQuery{}).Count(&count).Error
	return count, err
}

func (r *SearchQueryRepositoryImpl) CountLive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SearchQuery{}).
		Where("expires_at > ?", now).
		Count(&count).Error
	return count, err
}

// CachedPropertyRepositoryImpl implements CachedPropertyRepository
type CachedPropertyRepositoryImpl struct {
	db *gorm.DB
}

func NewCachedPropertyRepository(db *gorm.DB) models.CachedPropertyRepository {
	return &CachedPropertyRepositoryImpl{db: db}
}

func (r *CachedPropertyRepositoryImpl) CreateBatch(ctx context.Context, properties []models.CachedProperty) error {
	if len(properties) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(properties, 100).Error
}

func (r *CachedPropertyRepositoryImpl) ListByQueryID(ctx context.Context, queryID string) ([]models.CachedProperty, error) {
	var properties []models.CachedProperty
	err := r.db.WithContext(ctx).
		Where("query_id = ?", queryID).
		Order("position ASC").
		Find(&properties).Error
	return properties, err
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	SearchQuery    models.SearchQueryRepository
	CachedProperty models.CachedPropertyRepository

	db *gorm.DB
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		SearchQuery:    NewSearchQueryRepository(db),
		CachedProperty: NewCachedPropertyRepository(db),
		db:             db,
	}
}

// WithTx runs fn with repositories bound to a single transaction.
func (m *RepositoryManager) WithTx(ctx context.Context, fn func(tx *RepositoryManager) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositoryManager(tx))
	})
}
