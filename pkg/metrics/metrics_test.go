package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerMetrics_Handler(t *testing.T) {
	m := NewServerMetrics("test")
	m.Requests.WithLabelValues("GET", "/api/products", "200").Inc()
	m.Requests.WithLabelValues("GET", "/api/products", "200").Inc()
	m.LatencyMS.WithLabelValues("GET", "/api/products").Observe(12)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `lanari_test_http_requests_total{method="GET",route="/api/products",status="200"} 2`)
	assert.Contains(t, string(body), "lanari_test_http_request_duration_ms_bucket")
}

func TestNewServerMetrics_Twice(t *testing.T) {
	assert.NotPanics(t, func() {
		NewServerMetrics("twice")
		NewServerMetrics("twice")
	})
}
