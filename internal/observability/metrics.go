package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	apiRequestsTotal       *prometheus.CounterVec
	apiLatencySeconds      *prometheus.HistogramVec
	activityEventsTotal    *prometheus.CounterVec
	timelineRequestsTotal  *prometheus.CounterVec
	timelineLatencySeconds prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		activityEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_events_total",
			Help: "Audit events recorded, by event type and outcome.",
		}, []string{"event_type", "outcome"})

		timelineRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timeline_requests_total",
			Help: "Timeline page reads, by cache outcome.",
		}, []string{"cache"})

		timelineLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timeline_request_seconds",
			Help:    "Latency distribution for timeline reads.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			activityEventsTotal,
			timelineRequestsTotal,
			timelineLatencySeconds,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// ActivityEvents exposes the audit write counter.
func ActivityEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return activityEventsTotal
}

// TimelineRequests exposes the timeline read counter.
func TimelineRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return timelineRequestsTotal
}

// TimelineLatency exposes the timeline latency histogram.
func TimelineLatency() prometheus.Histogram {
	RegisterMetrics()
	return timelineLatencySeconds
}
