// Package handlers exposes the shorten and redirect operations over huma.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JoshGearou/shortlink/internal/events"
	"github.com/JoshGearou/shortlink/internal/hasher"
	"github.com/JoshGearou/shortlink/internal/messaging"
	"github.com/JoshGearou/shortlink/internal/shortener"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening operations.
type URLHandler struct {
	strategies         hasher.Registry
	resolver           *shortener.Resolver
	store              shortener.Store
	baseURL            string
	defaultStrategy    string
	publishLinkCreated messaging.Publish[events.LinkCreatedEvent]
	logger             *zap.Logger
}

// NewURLHandler creates a URL handler with injected strategies and resolver.
func NewURLHandler(
	store shortener.Store,
	resolver *shortener.Resolver,
	strategies hasher.Registry,
	baseURL string,
	defaultStrategy string,
	publishLinkCreated messaging.Publish[events.LinkCreatedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		strategies:         strategies,
		resolver:           resolver,
		store:              store,
		baseURL:            baseURL,
		defaultStrategy:    defaultStrategy,
		publishLinkCreated: publishLinkCreated,
		logger:             logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	if req.Body.LongURL == "" {
		return nil, huma.Error400BadRequest("longURL is required")
	}

	strategyName := req.Body.Strategy
	if strategyName == "" {
		strategyName = h.defaultStrategy
	}

	strategy, ok := h.strategies[strategyName]
	if !ok {
		return nil, huma.Error400BadRequest(fmt.Sprintf(
			"invalid strategy: must be one of %s", strings.Join(h.strategies.Names(), ", ")))
	}

	res, err := h.resolver.Resolve(ctx, strategy, req.Body.LongURL)
	if err != nil {
		if errors.Is(err, shortener.ErrAttemptsExhausted) {
			h.logger.Error("code allocation exhausted",
				zap.String("strategy", strategyName),
				zap.Error(err),
			)

			return nil, huma.Error500InternalServerError("could not allocate a unique code")
		}

		return nil, huma.Error500InternalServerError("failed to save url")
	}

	event := &events.LinkCreatedEvent{
		EventID:   uuid.NewString(),
		Code:      res.Code,
		LongURL:   req.Body.LongURL,
		Strategy:  strategyName,
		Attempts:  res.Attempts,
		Salted:    res.Salted,
		CreatedAt: time.Now(),
	}

	if err := h.publishLinkCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", res.Code),
			zap.Error(err),
		)
	}

	resp := &CreateShortURLResponse{}
	resp.Body.ShortURL = fmt.Sprintf("%s/%s", h.baseURL, res.Code)

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	longURL, err := h.store.Get(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("URL not found")
		}

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = longURL

	return resp, nil
}
