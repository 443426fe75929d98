// Package metrics exposes Prometheus collectors for the bookshelf server.
//
// Collectors register with the default registry on package init and are
// served by the API at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookshelf_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)

	APIRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshelf_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Recommendations
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookshelf_recommendation_duration_seconds",
			Help:    "Time to load the library and rank recommendations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"}, // "recommend", "similar"
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookshelf_recommendation_results",
			Help:    "Number of books returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	LibrarySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookshelf_library_books",
			Help: "Number of books in the last loaded library snapshot",
		},
	)

	// Auto-tagging
	AutotagSuggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_autotag_suggestions_total",
			Help: "Total number of auto-tag suggestion runs",
		},
		[]string{"source"}, // "api", "create"
	)

	AutotagTagsSuggested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_autotag_tags_suggested_total",
			Help: "Total number of tags suggested, by category",
		},
		[]string{"category"}, // "mood", "content_warning", "spice", "genre"
	)

	// Share identifiers
	ShareResolves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_share_resolves_total",
			Help: "Total number of share identifier lookups",
		},
		[]string{"result"}, // "found", "not_found"
	)

	// Search
	SearchQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_search_queries_total",
			Help: "Total number of search queries",
		},
		[]string{"status"}, // "success", "error"
	)

	SearchIndexErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshelf_search_index_errors_total",
			Help: "Total number of failed search index updates",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRecommendation records one ranking pass.
func RecordRecommendation(kind string, librarySize, results int, duration time.Duration) {
	RecommendationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	RecommendationResults.Observe(float64(results))
	LibrarySize.Set(float64(librarySize))
}

// RecordAutotag records a suggestion run and how many tags each category produced.
func RecordAutotag(source string, moods, warnings int, spice bool, genre bool) {
	AutotagSuggestions.WithLabelValues(source).Inc()
	AutotagTagsSuggested.WithLabelValues("mood").Add(float64(moods))
	AutotagTagsSuggested.WithLabelValues("content_warning").Add(float64(warnings))
	if spice {
		AutotagTagsSuggested.WithLabelValues("spice").Inc()
	}
	if genre {
		AutotagTagsSuggested.WithLabelValues("genre").Inc()
	}
}

// RecordShareResolve records a share identifier lookup.
func RecordShareResolve(found bool) {
	if found {
		ShareResolves.WithLabelValues("found").Inc()
	} else {
		ShareResolves.WithLabelValues("not_found").Inc()
	}
}

// RecordSearch records a search query.
func RecordSearch(err error) {
	if err != nil {
		SearchQueries.WithLabelValues("error").Inc()
		return
	}
	SearchQueries.WithLabelValues("success").Inc()
}
