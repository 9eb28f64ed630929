package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travel", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "travel", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	EnquirySubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travel", Name: "enquiry_submissions_total", Help: "Contact form submissions."},
		[]string{"result"}, // result: created|invalid|throttled|error
	)
	CurationActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travel", Name: "curation_actions_total", Help: "Staff write actions."},
		[]string{"resource", "action"},
	)
	ThrottleEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travel", Name: "throttle_events_total", Help: "Contact throttle decisions."},
		[]string{"decision"}, // decision: allow|deny|error
	)
)

// Serve exposes /metrics on a separate listener. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, EnquirySubmissions, CurationActions, ThrottleEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveEnquiry(result string) {
	EnquirySubmissions.WithLabelValues(result).Inc()
}

func ObserveCuration(resource, action string) {
	CurationActions.WithLabelValues(resource, action).Inc()
}

func ObserveThrottle(decision string) {
	ThrottleEvents.WithLabelValues(decision).Inc()
}
