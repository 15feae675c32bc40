package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusHooks implements PipelineHooks and CacheHooks backed by a
// dedicated Prometheus registry. The serve command registers it at
// startup and exposes Handler on /metrics.
type PrometheusHooks struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	stepsPlaced   prometheus.Histogram

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec
}

// NewPrometheusHooks creates hooks with all collectors registered.
func NewPrometheusHooks() *PrometheusHooks {
	reg := prometheus.NewRegistry()

	h := &PrometheusHooks{
		registry: reg,
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "glasspiral",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glasspiral",
			Name:      "stage_errors_total",
			Help:      "Pipeline stage failures.",
		}, []string{"stage"}),
		stepsPlaced: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "glasspiral",
			Name:      "steps_placed",
			Help:      "Number of trace steps per placed scene.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glasspiral",
			Name:      "cache_hits_total",
			Help:      "Cache hits by key type.",
		}, []string{"key_type"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glasspiral",
			Name:      "cache_misses_total",
			Help:      "Cache misses by key type.",
		}, []string{"key_type"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glasspiral",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to cache by key type.",
		}, []string{"key_type"}),
	}

	reg.MustRegister(
		h.stageDuration,
		h.stageErrors,
		h.stepsPlaced,
		h.cacheHits,
		h.cacheMisses,
		h.cacheBytes,
	)
	return h
}

// Handler serves the metrics endpoint for this registry.
func (h *PrometheusHooks) Handler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}

func (h *PrometheusHooks) observeStage(stage string, d time.Duration, err error) {
	h.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (h *PrometheusHooks) OnParseStart(context.Context, string) {}

func (h *PrometheusHooks) OnParseComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	h.observeStage("parse", d, err)
}

func (h *PrometheusHooks) OnPlaceStart(context.Context, int) {}

func (h *PrometheusHooks) OnPlaceComplete(_ context.Context, stepCount int, d time.Duration, err error) {
	h.observeStage("place", d, err)
	if err == nil {
		h.stepsPlaced.Observe(float64(stepCount))
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.observeStage("render", d, err)
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheHits.WithLabelValues(keyType).Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheMisses.WithLabelValues(keyType).Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
)
