package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpgo/returns-calculator/internal/calculation"
	"github.com/rpgo/returns-calculator/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRoundTrip(t *testing.T) {
	cfg := loadExample(t, "example_config.yaml")
	srv := server.New(server.Options{
		Configuration: cfg,
		Engine:        calculation.NewEngineWithLimits(cfg.Limits),
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/projection", "application/json",
		strings.NewReader(`{"mode":"sip","amount":"10000","rate_percent":"12","years":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(server.RequestIDHeader))

	var body struct {
		Result struct {
			Total string `json:"total"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, strings.HasPrefix(body.Result.Total, "128093.28"), body.Result.Total)

	csvResp, err := http.Get(ts.URL + "/api/projection.csv?mode=sip&amount=10000&rate=12&years=2")
	require.NoError(t, err)
	defer csvResp.Body.Close()
	data, err := io.ReadAll(csvResp.Body)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}
