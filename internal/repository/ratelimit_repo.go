package repository

import (
	"context"
	"time"
)

// RateLimitRepository defines the interface for fixed-window request
// rate limiting.
type RateLimitRepository interface {
	// Allow records one request for key and reports whether it is still
	// within limit requests per window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
