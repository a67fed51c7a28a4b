// Package middleware contains huma middlewares for the HTTP surface.
package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/JoshGearou/shortlink/internal/ratelimit"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware that enforces the rate limits an
// operation declares in its metadata. Operations without limits pass through.
//
// The rate limit key combines the client, the operation's route template, and
// the window, so all requests matching a route share counters per client.
func RateLimiter(api huma.API, store ratelimit.Store, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := ratelimit.GetEndpointConfig(ctx)
		if cfg == nil || cfg.Disabled || len(cfg.Limits) == 0 {
			next(ctx)

			return
		}

		op := ctx.Operation()
		clientK := clientKey(ctx)

		for _, limit := range cfg.Limits {
			key := fmt.Sprintf("%s:%s:%d", clientK, op.Path, limit.Window.Milliseconds())

			count, err := store.Record(ctx.Context(), key, limit.Window)
			if err != nil {
				logger.Error("rate limit check failed",
					zap.String("path", op.Path),
					zap.Error(err),
				)
				_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

				return
			}

			if count > limit.Max {
				logger.Warn("rate limit exceeded",
					zap.String("path", op.Path),
					zap.String("method", ctx.Method()),
					zap.Int64("count", count),
					zap.Int64("max", limit.Max),
					zap.Duration("window", limit.Window),
					zap.String("client_ip", clientIP(ctx)),
				)
				_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests,
					fmt.Sprintf("rate limit exceeded: %d/%d requests in %s", count, limit.Max, limit.Window))

				return
			}
		}

		next(ctx)
	}
}

// clientKey hashes IP and User-Agent into a stable per-client key.
func clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(clientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// Take the first IP (original client).
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
