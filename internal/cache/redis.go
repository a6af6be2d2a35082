package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

// Cache key formats
const (
	queryKeyFormat    = "query:%s"
	listingsKeyFormat = "listings:%s"
)

type redisEntry struct {
	Total    int              `json:"total"`
	Listings []models.Listing `json:"listings"`
}

// RedisStore claims a key with SETNX; the loser of a race adopts the
// winner's id.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func queryKey(key string) string {
	return fmt.Sprintf(queryKeyFormat, utils.MD5Hash(key))
}

func listingsKey(id string) string {
	return fmt.Sprintf(listingsKeyFormat, id)
}

func (s *RedisStore) Find(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, queryKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up cache entry: %w", err)
	}
	return id, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, listings []models.Listing, total int) (string, error) {
	id := uuid.NewString()

	data, err := json.Marshal(redisEntry{Total: total, Listings: uniqueListings(listings)})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cached listings: %w", err)
	}

	if err := s.client.Set(ctx, listingsKey(id), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save cached listings: %w", err)
	}

	claimed, err := s.client.SetNX(ctx, queryKey(key), id, s.ttl).Result()
	if err != nil {
		s.client.Del(ctx, listingsKey(id))
		return "", fmt.Errorf("failed to save cache entry: %w", err)
	}
	if claimed {
		return id, nil
	}

	s.client.Del(ctx, listingsKey(id))

	existing, err := s.client.Get(ctx, queryKey(key)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to re-read cache entry after conflict: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":      key,
		"query_id": existing,
	}).Debug("Cache entry created concurrently, reusing it")

	return existing, nil
}

func (s *RedisStore) Read(ctx context.Context, id string) (Entry, error) {
	data, err := s.client.Get(ctx, listingsKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry redisEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, fmt.Errorf("failed to unmarshal cached listings: %w", err)
	}
	return Entry{ID: id, Listings: entry.Listings, Total: entry.Total}, nil
}

// Stats counts query keys. Redis evicts expired keys itself, so every
// entry it reports is live.
func (s *RedisStore) Stats(ctx context.Context) (models.CacheStats, error) {
	stats := models.CacheStats{Backend: "redis"}

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, fmt.Sprintf(queryKeyFormat, "*"), 100).Result()
		if err != nil {
			return stats, fmt.Errorf("failed to scan cache keys: %w", err)
		}
		stats.Entries += int64(len(keys))
		cursor = next
		if cursor == 0 {
			break
		}
	}

	stats.LiveEntries = stats.Entries
	return stats, nil
}
