package shortener

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoshGearou/shortlink/internal/hasher"
	"go.uber.org/zap"
)

// ErrAttemptsExhausted is returned when neither the strategy's candidate
// sequence nor the salted fallback produced an insertable code.
var ErrAttemptsExhausted = errors.New("collision retry attempts exhausted")

// SaltGenerator produces a random salt for the exhaustion fallback.
type SaltGenerator func() string

// Resolution describes the outcome of a resolve.
type Resolution struct {
	Code     string
	Attempts int
	Salted   bool
}

// Resolver allocates a unique code for a long URL by walking a strategy's
// candidate sequence against the store. The walk is bounded: once the retry
// budget is spent it re-derives from a salted input, and failing that returns
// ErrAttemptsExhausted instead of spinning.
type Resolver struct {
	store        Store
	maxAttempts  int
	saltAttempts int
	salt         SaltGenerator
	logger       *zap.Logger
}

// NewResolver creates a resolver with the given retry budget. maxAttempts
// covers the strategy's own candidate chain; a small fixed number of salted
// rounds follows it.
func NewResolver(store Store, maxAttempts int, salt SaltGenerator, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:        store,
		maxAttempts:  maxAttempts,
		saltAttempts: 3,
		salt:         salt,
		logger:       logger,
	}
}

// Resolve derives a code for longURL with strategy and records the mapping.
// Shortening the same URL again before any colliding insert yields the same
// code without writing: an entry that already holds the identical URL is
// returned as-is.
func (r *Resolver) Resolve(ctx context.Context, strategy hasher.Strategy, longURL string) (*Resolution, error) {
	cand := strategy.Derive(longURL)

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		existing, saved, err := r.store.SaveIfAbsent(ctx, cand.Code(), longURL)
		if err != nil {
			return nil, err
		}

		if saved || existing == longURL {
			return &Resolution{Code: cand.Code(), Attempts: attempt}, nil
		}

		cand = cand.Next()
	}

	// The candidate chain is saturated. Re-derive from a salted input so the
	// request still gets a code.
	for attempt := 1; attempt <= r.saltAttempts; attempt++ {
		code := strategy.Derive(longURL + "#" + r.salt()).Code()

		existing, saved, err := r.store.SaveIfAbsent(ctx, code, longURL)
		if err != nil {
			return nil, err
		}

		if saved || existing == longURL {
			r.logger.Warn("resolver fell back to salted code",
				zap.String("strategy", strategy.Name()),
				zap.String("code", code),
				zap.Int("attempts", r.maxAttempts+attempt),
			)

			return &Resolution{Code: code, Attempts: r.maxAttempts + attempt, Salted: true}, nil
		}
	}

	return nil, fmt.Errorf("%w: strategy %s", ErrAttemptsExhausted, strategy.Name())
}
