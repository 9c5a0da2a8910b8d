package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpgo/returns-calculator/internal/calculation"
	"github.com/rpgo/returns-calculator/internal/config"
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/internal/metrics"
	"github.com/rpgo/returns-calculator/internal/output"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type projectionResponse struct {
	domain.Projection
	Breakdown output.Breakdown `json:"breakdown"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var (
		in  domain.Inputs
		err error
	)
	switch r.Method {
	case http.MethodGet:
		in, err = inputsFromQuery(r, s.config.Settings)
	case http.MethodPost:
		in, err = inputsFromBody(w, r, s.config.Settings)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	p, ok := s.project(w, r, in, err)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, projectionResponse{Projection: p, Breakdown: output.AnalyzeResult(p.Result)})
}

func (s *Server) handleProjectionCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	in, err := inputsFromQuery(r, s.config.Settings)
	p, ok := s.project(w, r, in, err)
	if !ok {
		return
	}

	data, err := output.CSVProjectionExporter{}.Format(s.report(p))
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="investment_projection.csv"`)
	w.Write(data)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	in, err := inputsFromQuery(r, s.config.Settings)
	p, ok := s.project(w, r, in, err)
	if !ok {
		return
	}

	report := s.report(p)
	if v := r.URL.Query().Get("theme"); v != "" {
		report.DarkMode = v == "dark"
	}
	data, err := output.HTMLFormatter{}.Format(report)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// project validates inputs and runs the engine inside a span. On failure it
// writes the error response and returns false.
func (s *Server) project(w http.ResponseWriter, r *http.Request, in domain.Inputs, parseErr error) (domain.Projection, bool) {
	ctx, span := s.tracer.Start(r.Context(), "projection")
	defer span.End()

	mode := string(in.Mode)
	fail := func(status int, err error) (domain.Projection, bool) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordProjection(mode, err)
		s.logger.Warnf("projection rejected id=%s: %v", RequestID(ctx), err)
		writeError(w, r, status, err.Error())
		return domain.Projection{}, false
	}

	if parseErr != nil {
		mode = "unknown"
		return fail(http.StatusBadRequest, parseErr)
	}

	span.SetAttributes(
		attribute.String("mode", mode),
		attribute.Float64("amount", in.Amount.Float64()),
		attribute.Float64("rate_percent", in.RatePercent.InexactFloat64()),
		attribute.Int("years", in.Years),
	)

	if !in.Mode.Valid() {
		return fail(http.StatusBadRequest, calculation.ErrUnknownMode)
	}
	if !s.noLimits {
		if err := config.ValidateInputs(s.config.Limits, in); err != nil {
			return fail(http.StatusBadRequest, err)
		}
	}

	p, err := s.engine.ComputeInputs(in)
	if err != nil {
		return fail(statusFor(err), err)
	}

	span.SetAttributes(attribute.Float64("total", p.Result.Total.Float64()))
	metrics.RecordProjection(mode, nil)
	return p, true
}

func (s *Server) report(p domain.Projection) *domain.Report {
	return output.NewReport([]domain.Projection{p}, s.config.Output, s.config.Settings.DarkMode)
}

// statusFor maps calculation errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrOutOfBounds), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, calculation.ErrInvalidInput),
		errors.Is(err, calculation.ErrOutOfRange),
		errors.Is(err, calculation.ErrUnknownMode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes to a buffer first so encoding failures can still set the status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestID(r.Context())})
}
