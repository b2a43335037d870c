package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	featureReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studybuddy",
			Name:      "feature_requests_total",
			Help:      "Total feature requests by feature and result",
		},
		[]string{"feature", "result"},
	)

	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studybuddy",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of generation API calls by feature",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"feature"},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(featureReqs, upstreamLatency)
}

// Handler returns the http.Handler for /metrics.
func Handler() http.Handler { return promhttp.Handler() }

func ObserveFeature(feature, result string) {
	featureReqs.WithLabelValues(feature, result).Inc()
}

func ObserveUpstream(feature string, dur time.Duration) {
	upstreamLatency.WithLabelValues(feature).Observe(dur.Seconds())
}
