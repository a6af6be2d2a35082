// Package app wires the configured components into a running assistant.
// Both binaries build on it.
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/cache"
	"github.com/Ayash-Bera/propsearch/internal/config"
	"github.com/Ayash-Bera/propsearch/internal/database"
	"github.com/Ayash-Bera/propsearch/internal/health"
	"github.com/Ayash-Bera/propsearch/internal/llm"
	"github.com/Ayash-Bera/propsearch/internal/migration"
	"github.com/Ayash-Bera/propsearch/internal/nlp"
	"github.com/Ayash-Bera/propsearch/internal/provider"
	"github.com/Ayash-Bera/propsearch/internal/services"
)

type App struct {
	Config    *config.Config
	DB        *database.Manager // nil for the memory cache backend
	Store     cache.Store
	Search    *services.SearchService
	Assistant *services.Assistant
	Health    *health.HealthChecker
	Logger    *logrus.Logger
}

// New connects storage and builds the service graph. Close releases it.
func New(cfg *config.Config, logger *logrus.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}
	a.Health = health.NewHealthChecker(0, logger)

	if cfg.Cache.Backend != "memory" {
		dbConfig := &database.Config{
			Driver:      cfg.Database.Driver,
			DatabaseURL: cfg.Database.URL,
			LogLevel:    cfg.Log.Level,
		}
		if cfg.Cache.Backend == "redis" {
			dbConfig.RedisURL = cfg.Redis.URL
		}

		db, err := database.NewManager(dbConfig, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database manager: %w", err)
		}
		if _, err := migration.NewRunner(db, logger).RunMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		a.DB = db

		a.Health.Register(db.Driver(), true, db.PingDatabase)
		if db.Redis != nil {
			a.Health.Register("redis", true, db.PingRedis)
		}
	}

	store, err := cache.NewStore(cfg.Cache.Backend, a.DB, cfg.Cache.TTL, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	algolia := provider.NewAlgoliaClient(
		cfg.Provider.URL,
		cfg.Provider.APIKey,
		cfg.Provider.AppID,
		cfg.Provider.Index,
		cfg.Provider.Timeout,
		logger,
	)
	a.Health.Register("provider", false, algolia.Ping)
	listings := provider.WithRetry(algolia, provider.DefaultRetryConfig(cfg.Provider.MaxRetries), logger)

	pipeline, client, err := NewPipeline(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	if client != nil {
		a.Health.Register("llm", false, client.Ping)
	}

	a.Search = services.NewSearchService(listings, store, logger)
	analytics := services.NewAnalytics(a.Search, cfg.Analytics.Salary, cfg.Analytics.SavingsRate, logger)
	a.Assistant = services.NewAssistant(pipeline, a.Search, analytics, cfg.Search.QuestionLimit, logger)

	logger.WithFields(logrus.Fields{
		"cache_backend": cfg.Cache.Backend,
		"llm_enabled":   cfg.LLM.Enabled,
		"max_retries":   cfg.Provider.MaxRetries,
	}).Info("Services initialized")

	return a, nil
}

// NewPipeline builds the query parser, with the LLM fallback when enabled.
// The returned client is nil when the fallback is off.
func NewPipeline(cfg *config.Config, logger *logrus.Logger) (*nlp.Pipeline, *llm.Client, error) {
	if !cfg.LLM.Enabled {
		return nlp.NewPipeline(nil, logger), nil, nil
	}

	client := llm.NewClient(cfg.LLM.URL, cfg.LLM.Model, cfg.LLM.Timeout, logger)
	resolver, err := llm.NewResolver(client, cfg.LLM.Timeout, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build LLM resolver: %w", err)
	}
	return nlp.NewPipeline(resolver, logger), client, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
