package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rpgo/returns-calculator/internal/calculation"
	"github.com/rpgo/returns-calculator/internal/config"
)

var (
	// Projections counts computed projections by mode and outcome.
	Projections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projections_total",
			Help: "Number of projections requested, by mode and status",
		},
		[]string{"mode", "status"},
	)

	// ProjectionErrors counts failed projections by mode and error kind.
	ProjectionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projection_errors_total",
			Help: "Number of failed projections, by mode and error kind",
		},
		[]string{"mode", "kind"},
	)

	// HTTPRequests counts served HTTP requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by path and status code",
		},
		[]string{"path", "status"},
	)
)

// ErrorKind classifies an error for the kind label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, config.ErrOutOfBounds):
		return "validation"
	case errors.Is(err, calculation.ErrUnknownMode):
		return "unknown_mode"
	case errors.Is(err, calculation.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, calculation.ErrOutOfRange):
		return "out_of_range"
	default:
		return "other"
	}
}

// RecordProjection updates the projection counters for one request.
func RecordProjection(mode string, err error) {
	if err != nil {
		kind := ErrorKind(err)
		Projections.WithLabelValues(mode, "error").Inc()
		ProjectionErrors.WithLabelValues(mode, kind).Inc()
		return
	}
	Projections.WithLabelValues(mode, "success").Inc()
}
