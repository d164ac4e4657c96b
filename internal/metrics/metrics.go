package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Upstream subgraph metrics
	SubgraphQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_subgraph_queries_total",
			Help: "Total subgraph queries by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	SubgraphQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_subgraph_query_duration_seconds",
			Help:    "Subgraph query duration",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)
