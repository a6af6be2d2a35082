package cache

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/database"
	"github.com/Ayash-Bera/propsearch/internal/repository"
)

// NewStore builds the Store named by backend: postgres, redis or memory.
func NewStore(backend string, db *database.Manager, ttl time.Duration, logger *logrus.Logger) (Store, error) {
	switch backend {
	case "postgres":
		if db == nil || db.DB == nil {
			return nil, fmt.Errorf("cache backend %q needs a database connection", backend)
		}
		return NewGormStore(repository.NewRepositoryManager(db.DB), ttl, logger), nil
	case "redis":
		if db == nil || db.Redis == nil {
			return nil, fmt.Errorf("cache backend %q needs a redis connection", backend)
		}
		return NewRedisStore(db.Redis, ttl, logger), nil
	case "memory":
		return NewMemoryStore(ttl), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", backend)
	}
}
