package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_tracker_polls_total",
		Help: "Poll ticks by concern and result",
	}, []string{"concern", "result"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_tracker_transitions_total",
		Help: "Trip status transitions applied locally",
	}, []string{"from", "to"})

	activeTimers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trip_tracker_active_timers",
		Help: "Number of polling timers currently running",
	})

	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trip_tracker_backend_request_duration_seconds",
		Help:    "Latency of calls to the trip backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})
)

// Poll result labels
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultStale   = "stale"
	ResultSkipped = "skipped"
)

// ObservePoll counts one poll tick
func ObservePoll(concern, result string) {
	pollsTotal.WithLabelValues(concern, result).Inc()
}

// ObserveTransition counts one status transition
func ObserveTransition(from, to string) {
	transitionsTotal.WithLabelValues(from, to).Inc()
}

// SetActiveTimers records how many timers are running
func SetActiveTimers(n int) {
	activeTimers.Set(float64(n))
}

// ObserveBackendCall records the latency of one backend call
func ObserveBackendCall(endpoint, status string, seconds float64) {
	backendLatency.WithLabelValues(endpoint, status).Observe(seconds)
}

// Handler exposes the default registry for echo
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
