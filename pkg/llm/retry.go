package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/openai/openai-go"
)

const (
	defaultInitialBackoff = 200 * time.Millisecond
	defaultMaxBackoff     = 3 * time.Second
	defaultBackoffFactor  = 2.0
)

// RetryConfig holds exponential backoff settings for chat calls.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = defaultInitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = defaultMaxBackoff
	}
	if c.Multiplier <= 1 {
		c.Multiplier = defaultBackoffFactor
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}

// RetryHandler reruns transient failures with exponential backoff.
type RetryHandler struct {
	cfg RetryConfig
}

// NewRetryHandler constructs a handler, filling zero fields with defaults.
func NewRetryHandler(cfg RetryConfig) *RetryHandler {
	return &RetryHandler{cfg: cfg.withDefaults()}
}

// Do runs fn, retrying transient errors up to MaxRetries times. Context
// cancellation during a backoff wait wins over the pending error.
func (r *RetryHandler) Do(ctx context.Context, fn func() error) error {
	backoff := r.cfg.InitialBackoff
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if attempt >= r.cfg.MaxRetries || !shouldRetry(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff, r.cfg)
	}
}

func nextBackoff(current time.Duration, cfg RetryConfig) time.Duration {
	next := time.Duration(float64(current) * cfg.Multiplier)
	if next > cfg.MaxBackoff {
		return cfg.MaxBackoff
	}
	return next
}

// shouldRetry classifies an error as transient. Context errors are never
// retried; API errors retry on rate-limit, timeout and 5xx statuses;
// network errors retry when temporary or connection-level.
func shouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Temporary() {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusRequestTimeout,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
