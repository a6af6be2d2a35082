package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

var ErrRedisDisabled = errors.New("redis is not configured")

// Database connection manager
type Manager struct {
	DB     *gorm.DB
	Redis  *redis.Client
	driver string
	logger *logrus.Logger
}

// Database configuration
type Config struct {
	Driver      string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
}

// NewManager opens the relational store and, when RedisURL is set, Redis.
func NewManager(config *Config, logger *logrus.Logger) (*Manager, error) {
	db, err := openDB(config, logger)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		DB:     db,
		driver: config.Driver,
		logger: logger,
	}

	if config.RedisURL != "" {
		client, err := openRedis(config.RedisURL)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.Redis = client
	}

	logger.WithFields(logrus.Fields{
		"driver": config.Driver,
		"redis":  m.Redis != nil,
	}).Info("Database connections established successfully")

	return m, nil
}

func openDB(config *Config, logger *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "postgres", "":
		dialector = postgres.Open(config.DatabaseURL)
	case "sqlite":
		dialector = sqlite.Open(config.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(config.LogLevel, logger),
		SkipDefaultTransaction: true,
		PrepareStmt:            config.Driver != "sqlite",
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if config.Driver == "sqlite" {
		// an in-memory database lives and dies with its connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func openRedis(url string) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.PoolSize = 20
	redisOpts.MinIdleConns = 5
	redisOpts.MaxConnAge = time.Hour
	redisOpts.IdleTimeout = 30 * time.Minute
	redisOpts.IdleCheckFrequency = 30 * time.Second

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// newGormLogger routes gorm's SQL log through logrus at debug level and
// silences it otherwise.
func newGormLogger(level string, logger *logrus.Logger) gormlogger.Interface {
	if level != "debug" {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return gormlogger.New(logger, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Info,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func (m *Manager) Driver() string {
	return m.driver
}

// Migrate creates the cache tables.
func (m *Manager) Migrate() error {
	m.logger.Info("Running database migrations...")

	return m.DB.AutoMigrate(
		&models.SearchQuery{},
		&models.CachedProperty{},
	)
}

// Close closes all database connections
func (m *Manager) Close() error {
	if m.Redis != nil {
		if err := m.Redis.Close(); err != nil {
			m.logger.WithError(err).Error("Failed to close Redis connection")
		}
	}

	if m.DB != nil {
		sqlDB, err := m.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

// Health check methods
func (m *Manager) PingDatabase(ctx context.Context) error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *Manager) PingRedis(ctx context.Context) error {
	if m.Redis == nil {
		return ErrRedisDisabled
	}
	return m.Redis.Ping(ctx).Err()
}
