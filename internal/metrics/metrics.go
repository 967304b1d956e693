package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RegisteredUsers is the current number of user accounts, refreshed
	// periodically from the store.
	RegisteredUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "picshare_registered_users",
			Help: "Number of registered user accounts",
		},
	)

	// SignupsTotal counts successful sign-ups since process start.
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "picshare_signups_total",
			Help: "Total number of successful sign-ups",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, RegisteredUsers, SignupsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /users/123 -> /users/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// SetRegisteredUsers updates the registered-users gauge.
func SetRegisteredUsers(n int64) {
	RegisteredUsers.Set(float64(n))
}

// IncSignups increments the sign-up counter.
func IncSignups() {
	SignupsTotal.Inc()
}
