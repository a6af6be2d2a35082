package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/api/handlers"
	"github.com/Ayash-Bera/propsearch/internal/middleware"
)

type Deps struct {
	Search      *handlers.SearchHandler
	Health      *handlers.HealthHandler
	RateLimiter *middleware.RateLimiter
	Logger      *logrus.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(d.Logger), middleware.SecurityHeaders())

	r.GET("/health", d.Health.HandleHealth)
	r.GET("/health/cache", d.Search.HandleCacheStats)

	api := r.Group("/api")
	if d.RateLimiter != nil {
		api.Use(d.RateLimiter.RateLimit())
	}
	api.GET("/search", d.Search.HandleSearch)
	api.POST("/parse", d.Search.HandleParse)
	api.POST("/ask", d.Search.HandleAsk)

	return r
}

type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
}

func NewServer(port string, handler http.Handler, logger *logrus.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks until the server stops. It returns nil after Stop.
func (s *Server) Start() error {
	s.logger.WithField("address", s.httpServer.Addr).Info("Starting HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
