package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayash-Bera/propsearch/internal/config"
	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

func testConfig(backend string) *config.Config {
	var cfg config.Config
	cfg.Database.Driver = "sqlite"
	cfg.Cache.Backend = backend
	cfg.Cache.TTL = 30 * time.Minute
	cfg.Provider.URL = "http://127.0.0.1:1"
	cfg.Provider.Index = "listings"
	cfg.Provider.Timeout = time.Second
	cfg.Analytics.Salary = 240000
	cfg.Analytics.SavingsRate = 0.2
	cfg.Search.DefaultLimit = 10
	cfg.Search.QuestionLimit = 50
	return &cfg
}

func TestNew_MemoryBackend(t *testing.T) {
	a, err := New(testConfig("memory"), utils.NullLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	stats, err := a.Store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "memory", stats.Backend)

	got := a.Assistant.ParseAndResolve(context.Background(), "2 bedroom apartment in Dubai Marina")
	assert.Equal(t, models.KindSearch, got.Kind)
}

func TestNew_SQLiteBackend(t *testing.T) {
	cfg := testConfig("postgres")
	cfg.Database.URL = filepath.Join(t.TempDir(), "cache.db")

	a, err := New(cfg, utils.NullLogger())
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.DB)
	assert.True(t, a.DB.DB.Migrator().HasTable(&models.SearchQuery{}))

	// The provider is unreachable: the search degrades to empty and the
	// health report is degraded rather than unhealthy.
	result, err := a.Search.Execute(context.Background(), models.FilterRecord{Purpose: models.PurposeForSale}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Listings)

	report := a.Health.CheckAll(context.Background())
	assert.Equal(t, "degraded", report.Status)
}
