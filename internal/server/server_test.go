package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectionBody struct {
	Inputs struct {
		Mode  string `json:"mode"`
		Years int    `json:"years"`
	} `json:"inputs"`
	Result struct {
		Contributed string `json:"contributed"`
		Growth      string `json:"growth"`
		Total       string `json:"total"`
	} `json:"result"`
	Series []struct {
		Year  int    `json:"year"`
		Value string `json:"value"`
	} `json:"series"`
	Breakdown struct {
		ContributedPct string `json:"contributed_pct"`
	} `json:"breakdown"`
}

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	s := New(opts)
	if s.limiter != nil {
		t.Cleanup(s.limiter.Stop)
	}
	return s.Handler()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func rounded(t *testing.T, s string) string {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d.StringFixed(2)
}

func TestProjection_GetLumpsum(t *testing.T) {
	h := newTestServer(t, Options{})
	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/projection?mode=lumpsum&amount=800000&rate=12&years=10", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body projectionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "lumpsum", body.Inputs.Mode)
	assert.Equal(t, "800000.00", rounded(t, body.Result.Contributed))
	assert.Equal(t, "1684678.57", rounded(t, body.Result.Growth))
	assert.Equal(t, "2484678.57", rounded(t, body.Result.Total))
	require.Len(t, body.Series, 10)
	assert.Equal(t, body.Result.Total, body.Series[9].Value)
	assert.NotEmpty(t, body.Breakdown.ContributedPct)
}

func TestProjection_GetDefaultsFromSettings(t *testing.T) {
	h := newTestServer(t, Options{})
	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/projection?mode=sip", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body projectionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sip", body.Inputs.Mode)
	assert.Equal(t, 10, body.Inputs.Years)
	assert.Equal(t, "1200000.00", rounded(t, body.Result.Contributed))
	assert.Equal(t, "2323390.76", rounded(t, body.Result.Total))
}

func TestProjection_PostPeriodic(t *testing.T) {
	h := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodPost, "/api/projection",
		bytes.NewBufferString(`{"mode":"monthly","amount":5000,"rate_percent":6,"years":5}`))
	w := serve(h, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body projectionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sip", body.Inputs.Mode)
	assert.Equal(t, "300000.00", rounded(t, body.Result.Contributed))
	assert.Equal(t, "350594.40", rounded(t, body.Result.Total))
	assert.Len(t, body.Series, 5)
}

func TestProjection_Errors(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		opts     Options
		wantCode int
		wantMsg  string
	}{
		{"below limits", http.MethodGet, "/api/projection?mode=lumpsum&amount=5000", "", Options{}, http.StatusBadRequest, "Total Investment must be between"},
		{"off step rate", http.MethodGet, "/api/projection?rate=12.05", "", Options{}, http.StatusBadRequest, "Expected Return Rate must be a multiple"},
		{"too many years", http.MethodGet, "/api/projection?years=31", "", Options{}, http.StatusBadRequest, "Investment Time Period"},
		{"bad years", http.MethodGet, "/api/projection?years=ten", "", Options{}, http.StatusBadRequest, "invalid years"},
		{"bad amount", http.MethodGet, "/api/projection?amount=lots", "", Options{}, http.StatusBadRequest, "invalid amount"},
		{"unknown mode", http.MethodGet, "/api/projection?mode=weekly", "", Options{}, http.StatusBadRequest, "unknown investment mode"},
		{"bad body", http.MethodPost, "/api/projection", "{invalid-json}", Options{}, http.StatusBadRequest, "invalid request body"},
		{"method", http.MethodPut, "/api/projection", "", Options{}, http.StatusMethodNotAllowed, "method not allowed"},
		{"negative amount without limits", http.MethodGet, "/api/projection?amount=-1", "", Options{NoLimits: true}, http.StatusUnprocessableEntity, "invalid input"},
		{"huge years without limits", http.MethodGet, "/api/projection?mode=sip&years=768614336404564651", "", Options{NoLimits: true}, http.StatusUnprocessableEntity, "at most 1200 years"},
		{"zero years without limits", http.MethodGet, "/api/projection?years=0", "", Options{NoLimits: true}, http.StatusUnprocessableEntity, "invalid input"},
		{"overflow without limits", http.MethodGet, "/api/projection?mode=lumpsum&amount=1&rate=100&years=1100", "", Options{NoLimits: true}, http.StatusUnprocessableEntity, "out of representable range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.opts)
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			w := serve(h, httptest.NewRequest(tt.method, tt.target, body))

			assert.Equal(t, tt.wantCode, w.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.wantMsg)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestProjectionCSV(t *testing.T) {
	h := newTestServer(t, Options{})
	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/projection.csv?mode=lumpsum&amount=100000&rate=10&years=3", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "investment_projection.csv")
	assert.Equal(t, "Year,Value (₹)\n1,110000.00\n2,121000.00\n3,133100.00\n", w.Body.String())
}

func TestReportPage(t *testing.T) {
	h := newTestServer(t, Options{})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "<!DOCTYPE html>"))
	assert.Contains(t, w.Body.String(), "₹2,484,678.57")
	assert.NotContains(t, w.Body.String(), "#0e1117")

	w = serve(h, httptest.NewRequest(http.MethodGet, "/?theme=dark", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "#0e1117")

	w = serve(h, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, Options{})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	serve(h, httptest.NewRequest(http.MethodGet, "/api/projection", nil))

	w = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{path="/healthz",status="200"}`)
	assert.Contains(t, w.Body.String(), `projections_total{mode="lumpsum",status="success"}`)
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := serve(h, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRateLimitedAPI(t *testing.T) {
	h := newTestServer(t, Options{RateLimit: 1, RateWindow: time.Hour})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/projection", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/projection", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// health checks are not limited
	w = serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestProjection_PostBodyTooLarge(t *testing.T) {
	h := newTestServer(t, Options{})
	body := `{"mode":"sip","note":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	w := serve(h, httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "request body too large")
}
