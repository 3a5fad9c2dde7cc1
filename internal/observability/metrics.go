package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinel",
		Name:      "frames_received_total",
		Help:      "Total number of JPEG frame snapshots received over the socket channel",
	}, []string{"client_id"})

	LandmarksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinel",
		Name:      "landmarks_received_total",
		Help:      "Total number of landmark frames received, by kind",
	}, []string{"kind"})

	Comparisons = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinel",
		Name:      "comparisons_total",
		Help:      "Total number of face comparison requests, by outcome",
	}, []string{"result"})

	CompareDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sentinel",
		Name:      "compare_duration_seconds",
		Help:      "Duration of remote face ranking calls",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	LogWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinel",
		Name:      "log_writes_total",
		Help:      "Total number of system log appends, by outcome",
	}, []string{"outcome"})

	RosterMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinel",
		Name:      "roster_mutations_total",
		Help:      "Total number of roster create/update/delete operations",
	}, []string{"op"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sentinel",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "sentinel",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections, by role",
	}, []string{"role"})
)
