package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/addresses", "/addresses"},
		{"/addresses/6f1c2a9e-0000-4000-8000-000000000001", "/addresses/:id"},
		{"/addresses/abc/validate", "/addresses/:id/validate"},
		{"/addresses/abc/fields/postal_code", "/addresses/:id/fields/postal_code"},
		{"/metrics", "/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}

func TestMetrics_Middleware_CountsRequests(t *testing.T) {
	m := NewMetrics("test")
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/addresses/123", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	h.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/addresses/:id", "404"))
	assert.Equal(t, float64(2), got)
}

func TestMetrics_ObserveFieldAccess(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveFieldAccess("set", "street_address", "repeated")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.fieldAccess.WithLabelValues("set", "street_address", "repeated")))
}

func TestMetrics_Handler_ExposesCollectors(t *testing.T) {
	m := NewMetrics("test")
	m.ObserveFieldAccess("get", "recipient", "scalar")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_address_field_access_total")
}
