// Package health exposes the service health endpoint.
package health

import (
	"context"

	"github.com/JoshGearou/shortlink/internal/shortener"
	"github.com/danielgtaylor/huma/v2"
)

// Handler handles health check operations.
type Handler struct {
	store shortener.Store
}

// NewHandler creates a new health handler.
func NewHandler(store shortener.Store) *Handler {
	return &Handler{store: store}
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status string `json:"status"`
		Links  int64  `json:"links"`
	}
}

// Check reports service status and the number of stored links.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	n, err := h.store.Len(ctx)
	if err != nil {
		resp.Body.Status = "degraded"

		return resp, nil
	}

	resp.Body.Links = n

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
