package ratelimit

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataKey is the huma operation metadata key carrying an EndpointConfig.
const MetadataKey = "ratelimit"

// LimitConfig is a single window/max pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig is the per-endpoint rate limit configuration attached to an
// operation's metadata.
type EndpointConfig struct {
	// Disabled turns off rate limiting for the endpoint.
	Disabled bool

	// Limits are checked in order; every window records the hit.
	Limits []LimitConfig
}

// GetEndpointConfig extracts the endpoint configuration from the current
// operation, if any.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	if cfg, ok := op.Metadata[MetadataKey].(EndpointConfig); ok {
		return &cfg
	}

	return nil
}
