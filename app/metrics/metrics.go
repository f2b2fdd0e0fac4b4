// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notiongram_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notiongram_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	NotionQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notiongram_notion_queries_total",
			Help: "Total number of Notion database queries by result",
		},
		[]string{"result"},
	)

	NotionQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notiongram_notion_query_duration_seconds",
			Help:    "Notion database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notiongram_records_total",
			Help: "Database records seen while assembling the feed, by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordNotionQuery records the duration and result of one upstream query.
func RecordNotionQuery(duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	NotionQueriesTotal.WithLabelValues(result).Inc()
	NotionQueryDuration.Observe(duration.Seconds())
}

// RecordFeedAssembly records how the records of one query were used.
func RecordFeedAssembly(served, discarded, filtered int) {
	RecordsTotal.WithLabelValues("served").Add(float64(served))
	RecordsTotal.WithLabelValues("discarded").Add(float64(discarded))
	RecordsTotal.WithLabelValues("filtered").Add(float64(filtered))
}

func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
