package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayash-Bera/propsearch/internal/database"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

func TestRunMigrations(t *testing.T) {
	logger := utils.NullLogger()
	db, err := database.NewManager(&database.Config{Driver: "sqlite", DatabaseURL: ":memory:"}, logger)
	require.NoError(t, err)
	defer db.Close()

	runner := NewRunner(db, logger)

	applied, err := runner.RunMigrations()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"001_cached_properties_position.sql",
		"002_search_queries_live.sql",
	}, applied)
	assert.True(t, db.DB.Migrator().HasIndex("cached_properties", "idx_cached_properties_query_position"))
	assert.True(t, db.DB.Migrator().HasIndex("search_queries", "idx_search_queries_key_expiry"))

	applied, err = runner.RunMigrations()
	require.NoError(t, err)
	assert.Empty(t, applied)

	var count int64
	require.NoError(t, db.DB.Model(&SchemaMigration{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
