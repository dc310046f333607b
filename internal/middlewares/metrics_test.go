package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dkorchagin/recipe-api/internal/middlewares"
)

func TestMetricsMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := middlewares.NewMetrics(registry)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middlewares.MetricsMiddleware(metrics)(next)

	req := httptest.NewRequest(http.MethodGet, "/recipes/99", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recipes/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	count := testutil.ToFloat64(metrics.Requests.With(prometheus.Labels{
		"method": http.MethodGet,
		"path":   "/recipes/99",
		"status": "404",
	}))
	assert.Equal(t, float64(2), count)
}

func TestNewMetrics_Registers(t *testing.T) {
	registry := prometheus.NewRegistry()
	middlewares.NewMetrics(registry)

	// Re-registering the same instruments must panic via MustRegister.
	assert.Panics(t, func() {
		middlewares.NewMetrics(registry)
	})
}
