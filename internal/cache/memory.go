package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

type memoryEntry struct {
	key       string
	listings  []models.Listing
	total     int
	expiresAt time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.RWMutex
	byKey   map[string]string
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		byKey:   make(map[string]string),
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Find(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byKey[key]
	if !ok || !s.entries[id].expiresAt.After(s.now()) {
		return "", false, nil
	}
	return id, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, listings []models.Listing, total int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if id, ok := s.byKey[key]; ok {
		if s.entries[id].expiresAt.After(now) {
			return id, nil
		}
		delete(s.entries, id)
	}

	id := uuid.NewString()
	s.byKey[key] = id
	s.entries[id] = memoryEntry{
		key:       key,
		listings:  uniqueListings(listings),
		total:     total,
		expiresAt: now.Add(s.ttl),
	}
	return id, nil
}

func (s *MemoryStore) Read(ctx context.Context, id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	listings := make([]models.Listing, len(e.listings))
	copy(listings, e.listings)
	return Entry{ID: id, Listings: listings, Total: e.total}, nil
}

func (s *MemoryStore) Stats(ctx context.Context) (models.CacheStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.CacheStats{Backend: "memory", Entries: int64(len(s.entries))}
	now := s.now()
	for _, e := range s.entries {
		if e.expiresAt.After(now) {
			stats.LiveEntries++
		}
	}
	return stats, nil
}
