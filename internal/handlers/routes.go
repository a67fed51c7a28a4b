package handlers

import (
	"net/http"
	"time"

	"github.com/JoshGearou/shortlink/internal/ratelimit"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the shortener routes with per-endpoint rate limits.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	// Writes get the strict limits: a shorten request can burn many resolver
	// attempts when the weak 32-bit strategies collide.
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Create short URL",
		Description: "Derives a short code for the given URL using the selected strategy.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 30},
					{Window: time.Hour, Max: 500},
				},
			},
		},
	}, urlHandler.CreateShortURL)

	// Redirects are read-heavy; keep the limit generous.
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the long URL stored under the short code.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, urlHandler.RedirectToURL)
}
