package http_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	adapter "github.com/aretw0/ham/internal/adapters/http"
	"github.com/aretw0/ham/internal/testutils"
	"github.com/aretw0/ham/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const model = `
name: weather
tracks:
  mood: [happy, grumpy]
states:
  - name: init
    label: start
    transitions: {sunny: 0.6, rainy: 0.4}
  - name: sunny
    label: Sunny
    transitions: {sunny: 0.8, rainy: 0.2}
    emissions: {track: mood, probs: {happy: 0.9, grumpy: 0.1}}
  - name: rainy
    label: Rainy
    transitions: {sunny: 0.4, rainy: 0.6, end: 0}
    emissions: {track: mood, probs: {happy: 0.3, grumpy: 0.7}}
`

func newHandler(t *testing.T, opts ...adapter.Option) http.Handler {
	t.Helper()
	return adapter.NewHandler(testutils.LoadTopology(t, model), opts...)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := get(t, newHandler(t), "/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	rr := get(t, newHandler(t, adapter.WithVersion("1.0.0")), "/info")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ham-http", resp["app"])
	assert.Equal(t, "1.0.0", resp["version"])
	assert.Equal(t, "weather", resp["topology"])
	assert.Equal(t, 3.0, resp["states"])
}

func TestListStates(t *testing.T) {
	rr := get(t, newHandler(t), "/states")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var views []adapter.StateView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	require.Len(t, views, 3)

	assert.Equal(t, "init", views[0].Name)
	assert.Nil(t, views[0].Iterator)
	assert.Len(t, views[0].Transitions, 2, "dense width is total-1")

	assert.Equal(t, "sunny", views[1].Name)
	require.NotNil(t, views[1].Iterator)
	assert.Equal(t, 0, *views[1].Iterator)
	assert.Contains(t, views[1].Emissions, "track: mood")
	assert.Nil(t, views[1].End)
}

func TestGetState(t *testing.T) {
	rr := get(t, newHandler(t), "/states/rainy")
	require.Equal(t, http.StatusOK, rr.Code)

	var view adapter.StateView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "Rainy", view.Label)
	require.Len(t, view.Transitions, 2)
	assert.Equal(t, "sunny", view.Transitions[0].To)
	require.NotNil(t, view.Transitions[0].LogProb)
	assert.InDelta(t, math.Log(0.4), *view.Transitions[0].LogProb, 1e-12)

	require.NotNil(t, view.End)
	assert.Equal(t, "end", view.End.To)
	assert.Nil(t, view.End.LogProb, "impossible transitions carry a null log_prob")
}

func TestGetState_Unknown(t *testing.T) {
	rr := get(t, newHandler(t), "/states/foggy")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "foggy")
}

func TestGetGraph(t *testing.T) {
	rr := get(t, newHandler(t), "/graph?current=rainy")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "graph LR")
	assert.Contains(t, rr.Body.String(), "class rainy current;")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg).ObserveLoad("weather", 3, time.Millisecond, nil)

	rr := get(t, newHandler(t, adapter.WithGatherer(reg)), "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `ham_topology_states{topology="weather"} 3`)
}

func TestListIssues(t *testing.T) {
	rr := get(t, newHandler(t), "/issues")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String(), "every distribution sums to 1 and no state can end")
}
