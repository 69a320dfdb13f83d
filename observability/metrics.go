package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for PredictionsTotal.
const (
	OutcomeApproved    = "approved"
	OutcomeRejected    = "rejected"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)

var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loan_predictor",
		Name:      "predictions_total",
		Help:      "Prediction requests by outcome.",
	}, []string{"outcome"})

	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "loan_predictor",
		Name:      "inference_duration_seconds",
		Help:      "Time spent scaling and classifying one feature vector.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loan_predictor",
		Name:      "cache_lookups_total",
		Help:      "Prediction cache lookups by result.",
	}, []string{"result"})
)

// MetricsHandler exposes the default registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
