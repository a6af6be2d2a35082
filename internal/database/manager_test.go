package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

func TestNewManager_SQLite(t *testing.T) {
	m, err := NewManager(&Config{Driver: "sqlite", DatabaseURL: ":memory:"}, utils.NullLogger())
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Migrate())
	assert.True(t, m.DB.Migrator().HasTable("search_queries"))
	assert.True(t, m.DB.Migrator().HasTable("cached_properties"))

	assert.NoError(t, m.PingDatabase(context.Background()))
	assert.ErrorIs(t, m.PingRedis(context.Background()), ErrRedisDisabled)
	assert.Equal(t, "sqlite", m.Driver())
}

func TestNewManager_UnknownDriver(t *testing.T) {
	_, err := NewManager(&Config{Driver: "mysql"}, utils.NullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestNewManager_BadRedisURL(t *testing.T) {
	_, err := NewManager(&Config{Driver: "sqlite", DatabaseURL: ":memory:", RedisURL: "not-a-url"}, utils.NullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Redis")
}
