package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// clientIP prefers the first X-Forwarded-For hop over the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func rateLimitKey(scope, ip string) string {
	return fmt.Sprintf("rate_limit_%s_%s", scope, ip)
}

// rateLimit allows at most limit requests per client IP in every fixed window.
// Redis failures let the request through.
func (h *Handler) rateLimit(scope string, limit int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.redisClient == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			window := time.Duration(h.config.RateLimit.Window) * time.Second
			ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
			defer cancel()

			count, err := fixedWindowScript.Run(ctx, h.redisClient, []string{rateLimitKey(scope, clientIP(r))}, window.Milliseconds()).Int64()
			if err != nil {
				slog.Warn("rate limiter unavailable", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", h.config.RateLimit.Window))
				h.errorResponse(w, r, http.StatusTooManyRequests, "too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
