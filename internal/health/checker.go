package health

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

type check struct {
	name     string
	critical bool
	ping     PingFunc
}

// HealthChecker pings the registered dependencies. A failed critical check
// makes the whole system unhealthy; any other failure only degrades it.
type HealthChecker struct {
	checks  []check
	timeout time.Duration
	logger  *logrus.Logger
	started time.Time

	mu   sync.RWMutex
	last *OverallHealth
}

type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	Critical     bool   `json:"critical"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

func NewHealthChecker(timeout time.Duration, logger *logrus.Logger) *HealthChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthChecker{timeout: timeout, logger: logger, started: time.Now()}
}

// Register adds a named dependency. Call before serving.
func (h *HealthChecker) Register(name string, critical bool, ping PingFunc) {
	h.checks = append(h.checks, check{name: name, critical: critical, ping: ping})
}

func (h *HealthChecker) checkOne(ctx context.Context, c check) ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := c.ping(ctx)
	responseTime := int(time.Since(start).Milliseconds())

	result := ServiceHealth{
		Name:         c.name,
		Status:       StatusHealthy,
		Critical:     c.critical,
		ResponseTime: responseTime,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
		h.logger.WithError(err).WithField("service", c.name).Error("Health check failed")
	}
	return result
}

// CheckAll runs every check concurrently and remembers the result.
func (h *HealthChecker) CheckAll(ctx context.Context) OverallHealth {
	services := make([]ServiceHealth, len(h.checks))

	var wg sync.WaitGroup
	for i, c := range h.checks {
		wg.Add(1)
		go func(i int, c check) {
			defer wg.Done()
			services[i] = h.checkOne(ctx, c)
		}(i, c)
	}
	wg.Wait()

	overall := OverallHealth{
		Status:   Summarize(services),
		Services: services,
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}

	h.mu.Lock()
	h.last = &overall
	h.mu.Unlock()

	return overall
}

// Summarize folds per-service results into one status.
func Summarize(services []ServiceHealth) string {
	status := StatusHealthy
	for _, s := range services {
		if s.Status == StatusHealthy {
			continue
		}
		if s.Critical {
			return StatusUnhealthy
		}
		status = StatusDegraded
	}
	return status
}

// Last returns the most recent CheckAll result, or nil before the first run.
func (h *HealthChecker) Last() *OverallHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

// PeriodicHealthCheck runs CheckAll every interval until ctx is done.
func (h *HealthChecker) PeriodicHealthCheck(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			health := h.CheckAll(ctx)
			h.logger.WithField("status", health.Status).Debug("Periodic health check completed")
		}
	}
}
