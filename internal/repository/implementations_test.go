package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ayash-Bera/propsearch/internal/database"
	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

func newTestRepos(t *testing.T) *RepositoryManager {
	t.Helper()
	m, err := database.NewManager(&database.Config{Driver: "sqlite", DatabaseURL: ":memory:"}, utils.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.Migrate())
	return NewRepositoryManager(m.DB)
}

func seedQuery(t *testing.T, repos *RepositoryManager, id, key string, expires time.Time, listings ...models.Listing) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repos.SearchQuery.Create(ctx, &models.SearchQuery{
		QueryID:     id,
		QueryString: key,
		TotalCount:  len(listings),
		ExpiresAt:   expires,
	}))
	var rows []models.CachedProperty
	for i, l := range listings {
		rows = append(rows, models.NewCachedProperty(id, i, l))
	}
	require.NoError(t, repos.CachedProperty.CreateBatch(ctx, rows))
}

func TestSearchQueryRepository_FindLive(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	now := time.Now()

	seedQuery(t, repos, "q-live", "purpose=for-sale", now.Add(10*time.Minute))
	seedQuery(t, repos, "q-old", "purpose=for-rent", now.Add(-time.Minute))

	live, err := repos.SearchQuery.FindLive(ctx, "purpose=for-sale", now)
	require.NoError(t, err)
	assert.Equal(t, "q-live", live.QueryID)

	_, err = repos.SearchQuery.FindLive(ctx, "purpose=for-rent", now)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	stale, err := repos.SearchQuery.FindByQueryString(ctx, "purpose=for-rent")
	require.NoError(t, err)
	assert.True(t, stale.ExpiresAt.Before(now))

	total, err := repos.SearchQuery.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	liveCount, err := repos.SearchQuery.CountLive(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liveCount)
}

func TestSearchQueryRepository_UniqueQueryString(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	seedQuery(t, repos, "q-1", "rooms=2", expires)

	err := repos.SearchQuery.Create(ctx, &models.SearchQuery{QueryID: "q-2", QueryString: "rooms=2", ExpiresAt: expires})
	require.Error(t, err)
}

func TestSearchQueryRepository_DeleteExpired(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	now := time.Now()

	seedQuery(t, repos, "q-old", "rooms=3", now.Add(-time.Second), models.Listing{ID: "a"}, models.Listing{ID: "b"})
	seedQuery(t, repos, "q-live", "rooms=4", now.Add(time.Hour), models.Listing{ID: "a"})

	n, err := repos.SearchQuery.DeleteExpired(ctx, "rooms=3", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := repos.CachedProperty.ListByQueryID(ctx, "q-old")
	require.NoError(t, err)
	assert.Empty(t, rows)

	n, err = repos.SearchQuery.DeleteExpired(ctx, "rooms=4", now)
	require.NoError(t, err)
	assert.Zero(t, n)

	rows, err = repos.CachedProperty.ListByQueryID(ctx, "q-live")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCachedPropertyRepository_ListOrdered(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	listings := []models.Listing{
		{ID: "z", Title: "first", Latitude: models.Float64Ptr(25.0805), Longitude: models.Float64Ptr(55.1403)},
		{ID: "a", Title: "second", ImageURLs: []string{"https://img/1", "https://img/2"}},
	}
	seedQuery(t, repos, "q-1", "page=1", time.Now().Add(time.Hour), listings...)

	rows, err := repos.CachedProperty.ListByQueryID(ctx, "q-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "first", rows[0].Title)
	assert.Equal(t, "thrnwtzbw05d", rows[0].Geohash)
	assert.Equal(t, []string{"https://img/1", "https://img/2"}, rows[1].Listing().ImageURLs)
}

func TestRepositoryManager_WithTxRollsBack(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	err := repos.WithTx(ctx, func(tx *RepositoryManager) error {
		if err := tx.SearchQuery.Create(ctx, &models.SearchQuery{QueryID: "q-tx", QueryString: "k", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	count, err := repos.SearchQuery.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
