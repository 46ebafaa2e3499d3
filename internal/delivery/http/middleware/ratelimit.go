package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/user/phishblock-service/internal/repository"
	"github.com/user/phishblock-service/pkg/metrics"
)

// RateLimit rejects clients that exceed limit requests per minute,
// keyed by client IP. Limiter errors fail open: classification must keep
// working when Redis is down.
func RateLimit(limiter repository.RateLimitRepository, limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key, limit, time.Minute)
			if err != nil {
				slog.Warn("Rate limiter unavailable, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "Rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
