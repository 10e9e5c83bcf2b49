package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation. A nil
// *MetricsService is valid and records nothing.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	registrations   prometheus.Counter
	registered      prometheus.Counter
	suspensions     *prometheus.CounterVec
	recipients      prometheus.Histogram
	mentions        prometheus.Histogram
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database statements by repository operation",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_cache_lookups_total",
		Help: "Roster cache lookups by result",
	}, []string{"result"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_cache_latency_seconds",
		Help:    "Latency for roster cache reads",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_cache_write_seconds",
		Help:    "Latency for roster cache writes",
		Buckets: prometheus.DefBuckets,
	})

	registrations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_registrations_total",
		Help: "Successful registration requests",
	})

	registered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_registered_students_total",
		Help: "Student entries processed by successful registrations",
	})

	suspensions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "student_suspensions_total",
		Help: "Suspension requests by whether a stored student matched",
	}, []string{"matched"})

	recipients := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "notification_recipients",
		Help:    "Recipients resolved per notification",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	mentions := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "notification_mentions",
		Help:    "Mention tokens found per notification",
		Buckets: prometheus.LinearBuckets(0, 1, 10),
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, dbQueryDuration, cacheLookups, cacheLatency, cacheWrite,
		registrations, registered, suspensions, recipients, mentions, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		dbQueryDuration: dbQueryDuration,
		cacheLookups:    cacheLookups,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		registrations:   registrations,
		registered:      registered,
		suspensions:     suspensions,
		recipients:      recipients,
		mentions:        mentions,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveDBQuery records database statement timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// RecordCacheOperation records a cache lookup and whether it hit.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
	}
}

// ObserveCacheWrite tracks the duration of cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordRegistration counts a successful registration of n students.
func (m *MetricsService) RecordRegistration(n int) {
	if m == nil {
		return
	}
	m.registrations.Inc()
	m.registered.Add(float64(n))
}

// RecordSuspension counts a suspension request.
func (m *MetricsService) RecordSuspension(matched bool) {
	if m == nil {
		return
	}
	m.suspensions.WithLabelValues(fmt.Sprintf("%t", matched)).Inc()
}

// ObserveNotification records mention and recipient counts for one resolution.
func (m *MetricsService) ObserveNotification(mentions, recipients int) {
	if m == nil {
		return
	}
	m.mentions.Observe(float64(mentions))
	m.recipients.Observe(float64(recipients))
}
