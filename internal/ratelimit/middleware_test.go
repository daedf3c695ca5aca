package ratelimit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pizza-pricing/internal/common"
	"github.com/noah-isme/pizza-pricing/internal/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareEnforcesLimit(t *testing.T) {
	limited := ratelimit.New(ratelimit.Config{
		Key:    func(*http.Request) string { return "static" },
		Window: time.Minute,
		Max:    1,
	}, zerolog.Nop()).Middleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", nil)
	rr1 := httptest.NewRecorder()
	limited.ServeHTTP(rr1, req.Clone(req.Context()))
	require.Equal(t, http.StatusOK, rr1.Code)
	require.Equal(t, "1", rr1.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", rr1.Header().Get("X-RateLimit-Remaining"))

	rr2 := httptest.NewRecorder()
	limited.ServeHTTP(rr2, req.Clone(req.Context()))
	require.Equal(t, http.StatusTooManyRequests, rr2.Code)
	require.NotEmpty(t, rr2.Header().Get("Retry-After"))
	require.Equal(t, "application/json", rr2.Header().Get("Content-Type"))
	var body struct {
		Error common.ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr2.Body.Bytes(), &body))
	require.Equal(t, "RATE_LIMITED", body.Error.Code)
}

func TestMiddlewareKeysByClientIP(t *testing.T) {
	limited := ratelimit.New(ratelimit.Config{Window: time.Minute, Max: 1}, zerolog.Nop()).Middleware(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	second := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	second.RemoteAddr = "10.0.0.2:1234"

	for _, req := range []*http.Request{first, second} {
		rr := httptest.NewRecorder()
		limited.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestDisabledLimiterPassesThrough(t *testing.T) {
	limited := ratelimit.New(ratelimit.Config{Max: 0}, zerolog.Nop()).Middleware(okHandler())
	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		limited.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	require.Equal(t, "192.0.2.10", ratelimit.ClientIP(req))
	req.RemoteAddr = "192.0.2.11"
	require.Equal(t, "192.0.2.11", ratelimit.ClientIP(req))
}
