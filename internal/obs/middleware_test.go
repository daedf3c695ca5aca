package obs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/noah-isme/pizza-pricing/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("pizza", []float64{1, 10}, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/health/ready"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/health/ready", "204")))
	require.NotZero(t, testutil.CollectAndCount(metrics.ReqDur))
	require.Zero(t, testutil.ToFloat64(metrics.InFlight))
}

func TestHTTPMetricsReuseRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := obs.NewHTTPMetrics("pizza", nil, registry)
	second := obs.NewHTTPMetrics("pizza", nil, registry)
	require.Same(t, first.ReqTotal, second.ReqTotal)
}

func TestPricingMetricsRegister(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := obs.NewPricingMetrics("pizza", registry)
	m.QuotesTotal.WithLabelValues("Mon", "ok").Inc()
	m.QuotedPizzas.WithLabelValues("pepperoni").Add(3)
	m.QuoteAmount.Observe(27)
	m.BulkBonusApplied.Inc()

	require.Equal(t, float64(3), testutil.ToFloat64(m.QuotedPizzas.WithLabelValues("pepperoni")))
	count, err := testutil.GatherAndCount(registry, "pizza_quotes_total", "pizza_quote_amount")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	again := obs.NewPricingMetrics("pizza", registry)
	require.Same(t, m.QuotesTotal, again.QuotesTotal)
}

func TestParseBucketsCSV(t *testing.T) {
	require.Nil(t, obs.ParseBucketsCSV("  "))
	require.Equal(t, []float64{5, 2.5}, obs.ParseBucketsCSV("5, x, -1, 2.5"))
}

func TestRequestLoggerUsesMatchedRoute(t *testing.T) {
	var buf bytes.Buffer
	logger := obs.NewLoggerTo(&buf, "json", "info")

	r := chi.NewRouter()
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Get("/api/v1/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/things/7", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "http_request", entry["message"])
	require.Equal(t, "/api/v1/things/{id}", entry["route"])
	require.Equal(t, float64(http.StatusTeapot), entry["status"])
}

func TestSpanRouteMiddlewareNamesSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	r := chi.NewRouter()
	r.Use(obs.SpanRouteMiddleware)
	r.Post("/api/v1/quotes", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
	ctx, span := tp.Tracer("test").Start(req.Context(), "server")
	r.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "POST /api/v1/quotes", ended[0].Name())
	require.Equal(t, "Error", ended[0].Status().Code.String())
}
