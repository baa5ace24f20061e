package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fitscore/internal/models"
	"fitscore/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetRecordsTotal(table string, count int)
	IncScoresComputed()
	IncStreakFailures()
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	recordsTotal        *prometheus.GaugeVec
	scoresComputed      prometheus.Counter
	streakFailures      prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRecordsTotal(table string, count int) {
	m.recordsTotal.WithLabelValues(table).Set(float64(count))
}

func (m *MetricsProvider) IncScoresComputed() {
	m.scoresComputed.Inc()
}

func (m *MetricsProvider) IncStreakFailures() {
	m.streakFailures.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store models.RecordStoreInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fitscore_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fitscore_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fitscore_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fitscore_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fitscore_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		recordsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fitscore_records_total",
			Help: "Number of records per table",
		}, []string{"table"}),

		scoresComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fitscore_scores_computed_total",
			Help: "Total number of daily compliance scores computed",
		}),

		streakFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fitscore_streak_update_failures_total",
			Help: "Total number of streak updates that failed after a score was saved",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fitscore_compliance_scores",
		Help: "Current number of stored compliance scores",
	}, func() float64 {
		return float64(store.Counts()[models.TableComplianceScores])
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fitscore_streaks",
		Help: "Current number of tracked streaks",
	}, func() float64 {
		return float64(store.Counts()[models.TableStreaks])
	})

	return m
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                  {}
func (n *noopMetrics) IncScoresComputed()                               {}
func (n *noopMetrics) IncStreakFailures()                               {}
