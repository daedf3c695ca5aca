package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/noah-isme/pizza-pricing/internal/common"
)

// Config describes how to derive a rate limit key and thresholds.
type Config struct {
	Key    func(*http.Request) string
	Window time.Duration
	Max    int
}

// Handler enforces a fixed-window request limit per key, held in process memory.
type Handler struct {
	limiter *limiter.Limiter
	key     func(*http.Request) string
	logger  zerolog.Logger
}

// New builds a limiter handler. A non-positive Max disables limiting.
func New(cfg Config, logger zerolog.Logger) *Handler {
	h := &Handler{key: cfg.Key, logger: logger}
	if h.key == nil {
		h.key = ClientIP
	}
	if cfg.Max > 0 {
		window := cfg.Window
		if window <= 0 {
			window = time.Minute
		}
		rate := limiter.Rate{Period: window, Limit: int64(cfg.Max)}
		h.limiter = limiter.New(memory.NewStore(), rate)
	}
	return h
}

// Middleware rejects requests over the limit with 429 and advertises the quota in headers.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	if h == nil || h.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lctx, err := h.limiter.Get(r.Context(), h.key(r))
		if err != nil {
			h.logger.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		headers.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			retryAfter := lctx.Reset - time.Now().Unix()
			if retryAfter < 0 {
				retryAfter = 0
			}
			headers.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP keys requests by remote address without the port.
func ClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
