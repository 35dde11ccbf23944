package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	rec, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	rec.Observe("instance-list", http.MethodGet, http.StatusOK, 20*time.Millisecond)
	rec.Observe("instance-list", http.MethodGet, http.StatusOK, 30*time.Millisecond)
	rec.Observe("instance-detail", http.MethodDelete, http.StatusForbidden, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.requestTotal.WithLabelValues("instance-list", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.requestTotal.WithLabelValues("instance-detail", "DELETE", "403")))
	assert.Equal(t, 2, testutil.CollectAndCount(rec.requestLatency))
}

func TestObserve_UnknownMethodsShareOneLabel(t *testing.T) {
	rec, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	rec.Observe("unmatched", "BREW", http.StatusNotFound, time.Millisecond)
	rec.Observe("unmatched", "X-ANYTHING", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.requestTotal.WithLabelValues("unmatched", "OTHER", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.requestTotal))
}

func TestNewRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestHandlerServesRegistry(t *testing.T) {
	rec, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	rec.Observe("health-list", http.MethodGet, http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `cloudapi_request_total{code="200",method="GET",route="health-list"} 1`), body)
}
