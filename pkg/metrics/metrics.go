package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "url_classifications_total",
			Help: "Total number of URL classifications by risk level.",
		},
		[]string{"risk_level"},
	)

	PhishingDetectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "phishing_detected_total",
			Help: "Total number of URLs flagged as phishing.",
		},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "batch_request_urls",
			Help:    "Number of URLs per batch classification request.",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)

	ModelDownloadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "model_download_bytes_total",
			Help: "Total bytes downloaded for model artifacts and metadata.",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter.",
		},
	)
)
