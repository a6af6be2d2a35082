package services

import (
	"context"
	"sync"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/provider"
)

type fakeProvider struct {
	mu    sync.Mutex
	page  provider.Page
	err   error
	calls int
}

func (f *fakeProvider) Search(ctx context.Context, filters models.FilterRecord, page, limit int) (provider.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.page, f.err
}

type fakeSearcher struct {
	mu         sync.Mutex
	byLocation map[string][]models.Listing
	fallback   []models.Listing
	failures   map[string]error
	calls      []models.FilterRecord
}

func (f *fakeSearcher) Execute(ctx context.Context, filters models.FilterRecord, page, limit int) (models.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, filters)
	if err := f.failures[filters.LocationQuery]; err != nil {
		return models.SearchResult{}, err
	}

	listings := f.fallback
	if l, ok := f.byLocation[filters.LocationQuery]; ok {
		listings = l
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return models.SearchResult{
		Listings:   listings,
		Page:       page,
		Limit:      limit,
		TotalCount: len(listings),
		TotalPages: 1,
	}, nil
}

func priced(id string, price float64) models.Listing {
	return models.Listing{ID: id, Price: models.Float64Ptr(price)}
}

func pricedWithArea(id string, price, area float64) models.Listing {
	return models.Listing{ID: id, Price: models.Float64Ptr(price), Area: models.Float64Ptr(area)}
}
