package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries: maxRetries,
		BaseDelay:  2 * time.Second,
		MaxDelay:   15 * time.Second,
	}
}

// Retrying retries failed searches with capped exponential backoff.
type Retrying struct {
	next   Provider
	config RetryConfig
	logger *logrus.Logger
}

func WithRetry(next Provider, config RetryConfig, logger *logrus.Logger) Provider {
	if config.MaxRetries <= 0 {
		return next
	}
	return &Retrying{next: next, config: config, logger: logger}
}

func (r *Retrying) Search(ctx context.Context, filters models.FilterRecord, page, limit int) (Page, error) {
	var result Page
	err := r.retryOperation(ctx, func() error {
		var err error
		result, err = r.next.Search(ctx, filters, page, limit)
		return err
	})
	return result, err
}

func (r *Retrying) retryOperation(ctx context.Context, operation func() error) error {
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := operation()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrUnavailable) {
			return err
		}

		if attempt == r.config.MaxRetries {
			return fmt.Errorf("operation failed after %d retries: %w", r.config.MaxRetries, err)
		}

		delay := time.Duration(float64(r.config.BaseDelay) * math.Pow(1.5, float64(attempt)))
		if delay > r.config.MaxDelay {
			delay = r.config.MaxDelay
		}

		r.logger.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"delay":   delay,
			"error":   err.Error(),
		}).Warn("Retrying provider search")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil
}
