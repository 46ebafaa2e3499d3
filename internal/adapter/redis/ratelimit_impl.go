package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimitRepoImpl provides a concrete implementation for the
// RateLimitRepository interface using Redis fixed-window counters.
type RateLimitRepoImpl struct {
	client *redis.Client
}

// NewRateLimitRepo creates a new instance of RateLimitRepoImpl.
func NewRateLimitRepo(client *redis.Client) *RateLimitRepoImpl {
	return &RateLimitRepoImpl{client: client}
}

// Allow increments the window counter for key and reports whether the
// caller is still under the limit. INCR and EXPIRE run in one pipeline;
// the expiry is only set on the first hit of a window.
func (r *RateLimitRepoImpl) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("%s%s", rateLimitPrefix, key)

	pipe := r.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() <= int64(limit), nil
}
