package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "library_http_requests_total",
		Help: "Count of HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "library_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	OverdueNoticesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "library_overdue_notices_sent_total",
		Help: "Overdue notice emails delivered to borrowers.",
	})

	OverdueNoticesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "library_overdue_notices_failed_total",
		Help: "Overdue notice emails that failed to send.",
	})

	FinesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "library_fines_issued_total",
		Help: "Pending fines created by the nightly fine job.",
	})
)
