//go:build integration

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Ayash-Bera/propsearch/internal/database"
	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/repository"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

func startManager(t *testing.T) *database.Manager {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("propsearch_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	redisContainer, err := tcredis.Run(ctx,
		"redis:7.4-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	m, err := database.NewManager(&database.Config{
		Driver:      "postgres",
		DatabaseURL: fmt.Sprintf("postgres://test:test@%s:%s/propsearch_test?sslmode=disable", pgHost, pgPort.Port()),
		RedisURL:    fmt.Sprintf("redis://%s:%s/0", redisHost, redisPort.Port()),
	}, utils.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.Migrate())
	return m
}

func TestIntegration_ConcurrentSaves(t *testing.T) {
	m := startManager(t)

	stores := map[string]Store{
		"postgres": NewGormStore(repository.NewRepositoryManager(m.DB), time.Minute, utils.NullLogger()),
		"redis":    NewRedisStore(m.Redis, time.Minute, utils.NullLogger()),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := Key(models.FilterRecord{Purpose: models.PurposeForSale, LocationQuery: name}, 1, 10)

			const writers = 8
			ids := make([]string, writers)
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					id, err := store.Save(ctx, key, []models.Listing{{ID: "a"}, {ID: "b"}}, 2)
					assert.NoError(t, err)
					ids[i] = id
				}(i)
			}
			wg.Wait()

			for _, id := range ids {
				assert.Equal(t, ids[0], id)
			}

			entry, err := store.Read(ctx, ids[0])
			require.NoError(t, err)
			assert.Len(t, entry.Listings, 2)
		})
	}
}
