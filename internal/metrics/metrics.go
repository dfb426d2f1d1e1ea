// Package metrics defines the Prometheus metrics exported by the tsdiag
// service. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sartorproj/tsdiag/diagerr"
)

// Default buckets.
var (
	DefaultHTTPDurationBuckets     = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
	DefaultAnalysisDurationBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1}
	DefaultBatchSizeBuckets        = []float64{1, 5, 10, 50, 100, 500, 1000}
)

// Metrics holds the service metric families and their registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	RiskTiersTotal      *prometheus.CounterVec
	BatchSize           *prometheus.HistogramVec
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	ErrorsTotal         *prometheus.CounterVec
}

// New registers every metric family on a fresh registry under namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests",
		}, []string{"method", "path", "status_code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request duration",
			Buckets: DefaultHTTPDurationBuckets,
		}, []string{"method", "path"}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "analyses_total", Help: "Unit-circle analyses by family and outcome",
		}, []string{"family", "outcome"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "analysis_duration_seconds", Help: "Analysis duration by operation",
			Buckets: DefaultAnalysisDurationBuckets,
		}, []string{"operation"}),
		RiskTiersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "risk_tiers_total", Help: "Margin reports by risk tier",
		}, []string{"family", "risk_level"}),
		BatchSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "batch_size", Help: "Models per batch request",
			Buckets: DefaultBatchSizeBuckets,
		}, []string{"operation"}),
		CacheHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_hits_total", Help: "Cache hits",
		}, []string{"cache"}),
		CacheMissesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_misses_total", Help: "Cache misses",
		}, []string{"cache"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "errors_total", Help: "Errors by kind",
		}, []string{"component", "kind"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.RiskTiersTotal,
		m.BatchSize,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.ErrorsTotal,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAnalysis counts one classification. err takes precedence over
// satisfied.
func (m *Metrics) RecordAnalysis(family, operation string, satisfied bool, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "unsatisfied"
	switch {
	case err != nil:
		outcome = "error"
	case satisfied:
		outcome = "satisfied"
	}
	m.AnalysesTotal.WithLabelValues(family, outcome).Inc()
	m.AnalysisDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.RecordError("diagnostic", err)
	}
}

func (m *Metrics) RecordRisk(family, risk string) {
	if m == nil {
		return
	}
	m.RiskTiersTotal.WithLabelValues(family, risk).Inc()
}

func (m *Metrics) RecordBatch(operation string, size int) {
	if m == nil {
		return
	}
	m.BatchSize.WithLabelValues(operation).Observe(float64(size))
}

func (m *Metrics) RecordCacheAccess(cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordError labels err with its diagerr kind.
func (m *Metrics) RecordError(component string, err error) {
	if m == nil || err == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, diagerr.KindOf(err).String()).Inc()
}
