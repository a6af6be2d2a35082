package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ayash-Bera/propsearch/internal/database"
	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/repository"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

func newGormTestStore(t *testing.T) (*GormStore, *repository.RepositoryManager) {
	t.Helper()
	m, err := database.NewManager(&database.Config{Driver: "sqlite", DatabaseURL: ":memory:"}, utils.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.Migrate())

	repos := repository.NewRepositoryManager(m.DB)
	return NewGormStore(repos, 30*time.Minute, utils.NullLogger()), repos
}

func sampleListings() []models.Listing {
	return []models.Listing{
		{ID: "1", Title: "Villa one", Price: models.Float64Ptr(2500000), Rooms: models.IntPtr(4)},
		{ID: "2", Title: "Villa two", Price: models.Float64Ptr(3100000), ImageURLs: []string{"https://img/a"}},
		{ID: "1", Title: "Villa one again"},
	}
}

func TestGormStore_SaveFindRead(t *testing.T) {
	store, _ := newGormTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Find(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	id, err := store.Save(ctx, "k", sampleListings(), 57)
	require.NoError(t, err)

	found, ok, err := store.Find(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, found)

	entry, err := store.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 57, entry.Total)
	require.Len(t, entry.Listings, 2)
	assert.Equal(t, "Villa one", entry.Listings[0].Title)
	assert.Equal(t, []string{"https://img/a"}, entry.Listings[1].ImageURLs)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Entries)
	assert.Equal(t, int64(1), stats.LiveEntries)
}

func TestGormStore_ConflictReusesExistingID(t *testing.T) {
	store, repos := newGormTestStore(t)
	ctx := context.Background()

	require.NoError(t, repos.SearchQuery.Create(ctx, &models.SearchQuery{
		QueryID:     "winner",
		QueryString: "k",
		TotalCount:  3,
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	id, err := store.Save(ctx, "k", sampleListings(), 3)
	require.NoError(t, err)
	assert.Equal(t, "winner", id)

	rows, err := repos.CachedProperty.ListByQueryID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGormStore_ExpiredEntryIsReplaced(t *testing.T) {
	store, _ := newGormTestStore(t)
	ctx := context.Background()

	start := time.Now()
	store.now = func() time.Time { return start }
	first, err := store.Save(ctx, "k", sampleListings(), 2)
	require.NoError(t, err)

	store.now = func() time.Time { return start.Add(31 * time.Minute) }

	_, ok, err := store.Find(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Entries)
	assert.Zero(t, stats.LiveEntries)

	second, err := store.Save(ctx, "k", []models.Listing{{ID: "9"}}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = store.Read(ctx, first)
	assert.ErrorIs(t, err, ErrNotFound)

	entry, err := store.Read(ctx, second)
	require.NoError(t, err)
	require.Len(t, entry.Listings, 1)
	assert.Equal(t, "9", entry.Listings[0].ID)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}
