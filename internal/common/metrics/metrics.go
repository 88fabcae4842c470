// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_predictions_total",
			Help: "Total number of successful scoring requests by risk band",
		},
		[]string{"risk_band", "user_type"},
	)

	PredictionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_prediction_failures_total",
			Help: "Total number of failed scoring requests by error code",
		},
		[]string{"error_code"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "scoring_prediction_duration_seconds",
			Help: "Duration of end-to-end scoring requests in seconds",
		},
		[]string{"user_type"},
	)

	// CoercionDefaults tracks fields silently replaced by their documented
	// defaults. Feeds data-quality monitoring; these are not errors.
	CoercionDefaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_coercion_defaults_total",
			Help: "Total number of input fields replaced by their documented default",
		},
		[]string{"field"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_cache_hits_total",
			Help: "Total number of score results served from cache",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_cache_misses_total",
			Help: "Total number of score cache misses",
		},
	)

	HistoryWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_history_write_failures_total",
			Help: "Total number of failed score history inserts",
		},
	)
)
