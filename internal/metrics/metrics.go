package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exam_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	resultsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_results_submitted_total",
			Help: "Total number of scored submissions",
		},
		[]string{"passed"},
	)

	submissionRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_submission_rejections_total",
			Help: "Total number of rejected submissions",
		},
		[]string{"reason"},
	)
)

func ObserveRequest(method, route string, status int, seconds float64) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func ResultSubmitted(passed bool) {
	resultsSubmitted.WithLabelValues(strconv.FormatBool(passed)).Inc()
}

func SubmissionRejected(reason string) {
	submissionRejections.WithLabelValues(reason).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
