// Package cache stores provider results under a canonical query key for a
// fixed time window so repeated searches skip the provider.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

const DefaultTTL = 30 * time.Minute

var ErrNotFound = errors.New("cache entry not found")

// Entry is one cached provider fetch.
type Entry struct {
	ID       string
	Listings []models.Listing
	Total    int
}

// Store is the query cache. At most one live entry exists per key.
type Store interface {
	// Find returns the id of the live entry for key.
	Find(ctx context.Context, key string) (string, bool, error)
	// Save stores listings under key. If another writer created the entry
	// first, Save returns that entry's id instead.
	Save(ctx context.Context, key string, listings []models.Listing, total int) (string, error)
	Read(ctx context.Context, id string) (Entry, error)
	Stats(ctx context.Context) (models.CacheStats, error)
}

// Key is the canonical cache key: the filter values plus paging, with
// sorted parameter names.
func Key(filters models.FilterRecord, page, limit int) string {
	v := filters.Values()
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	return v.Encode()
}

// uniqueListings drops repeated listing ids, keeping the first occurrence.
func uniqueListings(listings []models.Listing) []models.Listing {
	seen := make(map[string]struct{}, len(listings))
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if _, ok := seen[l.ID]; ok {
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out
}
