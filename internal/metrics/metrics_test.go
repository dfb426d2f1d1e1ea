package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/tsdiag/diagerr"
)

func TestRecordAnalysisOutcomes(t *testing.T) {
	m := New("test")

	m.RecordAnalysis("AR", "check", true, nil, time.Millisecond)
	m.RecordAnalysis("AR", "check", false, nil, time.Millisecond)
	m.RecordAnalysis("AR", "check", true, diagerr.InputValue("empty"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("AR", "satisfied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("AR", "unsatisfied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("AR", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("diagnostic", "input_value")))
}

func TestRecordHelpers(t *testing.T) {
	m := New("test")

	m.RecordHTTPRequest("POST", "/api/v1/ar/check", 200, 2*time.Millisecond)
	m.RecordRisk("MA", "medium")
	m.RecordCacheAccess("analysis", true)
	m.RecordCacheAccess("analysis", false)
	m.RecordCacheAccess("analysis", false)
	m.RecordBatch("compare", 3)
	m.RecordError("http", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/ar/check", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RiskTiersTotal.WithLabelValues("MA", "medium")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("analysis")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("analysis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("http", "unknown")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.BatchSize))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
		m.RecordAnalysis("AR", "check", true, nil, time.Second)
		m.RecordRisk("AR", "low")
		m.RecordBatch("analyze", 1)
		m.RecordCacheAccess("analysis", true)
		m.RecordError("x", errors.New("y"))
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("tsdiag")
	m.RecordRisk("AR", "high")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `tsdiag_risk_tiers_total{family="AR",risk_level="high"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNewUsesIsolatedRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("tsdiag")
		New("tsdiag")
	})
}
