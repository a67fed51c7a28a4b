package shortener_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/JoshGearou/shortlink/internal/hasher"
	"github.com/JoshGearou/shortlink/internal/shortener"
	"github.com/JoshGearou/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestResolver(s shortener.Store, maxAttempts int) *shortener.Resolver {
	n := 0
	salt := func() string {
		n++

		return fmt.Sprintf("salt%d", n)
	}

	return shortener.NewResolver(s, maxAttempts, salt, zap.NewNop())
}

// fixedStrategy yields the same code at every position, so its chain can
// never escape a collision.
type fixedStrategy struct{ code string }

func (s fixedStrategy) Name() string { return "fixed" }

func (s fixedStrategy) Derive(string) hasher.Candidate { return fixedCandidate(s.code) }

type fixedCandidate string

func (c fixedCandidate) Code() string           { return string(c) }
func (c fixedCandidate) Next() hasher.Candidate { return c }

// echoStrategy uses the input itself as the code, so salted inputs derive
// fresh codes while the unsalted chain stays stuck.
type echoStrategy struct{}

func (echoStrategy) Name() string { return "echo" }

func (echoStrategy) Derive(longURL string) hasher.Candidate { return fixedCandidate(longURL) }

// seqStrategy walks a scripted candidate list and parks on the last entry.
type seqStrategy struct{ codes []string }

func (s seqStrategy) Name() string { return "seq" }

func (s seqStrategy) Derive(string) hasher.Candidate { return seqCandidate{codes: s.codes} }

type seqCandidate struct {
	codes []string
	pos   int
}

func (c seqCandidate) Code() string { return c.codes[c.pos] }

func (c seqCandidate) Next() hasher.Candidate {
	next := c.pos
	if next < len(c.codes)-1 {
		next++
	}

	return seqCandidate{codes: c.codes, pos: next}
}

func TestResolve(t *testing.T) {
	t.Run("inserts on the first attempt", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		r := newTestResolver(memStore, 8)

		res, err := r.Resolve(context.Background(), hasher.Sha256Digest{}, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, 1, res.Attempts)
		assert.False(t, res.Salted)

		longURL, err := memStore.Get(context.Background(), res.Code)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", longURL)
	})

	t.Run("is idempotent for an unchanged url", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		r := newTestResolver(memStore, 8)

		for _, strategy := range hasher.DefaultRegistry() {
			res1, err1 := r.Resolve(context.Background(), strategy, "https://example.com/"+strategy.Name())
			res2, err2 := r.Resolve(context.Background(), strategy, "https://example.com/"+strategy.Name())

			require.NoError(t, err1)
			require.NoError(t, err2)
			assert.Equal(t, res1.Code, res2.Code)
			assert.Equal(t, 1, res2.Attempts)
		}

		n, err := memStore.Len(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(len(hasher.DefaultRegistry())), n)
	})

	t.Run("walks past a collision to the next candidate", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		r := newTestResolver(memStore, 8)

		// "!" folds to 33 under the rolling hash, which encodes to "x".
		_, saved, err := memStore.SaveIfAbsent(context.Background(), "x", "https://other.com")
		require.NoError(t, err)
		require.True(t, saved)

		res, err := r.Resolve(context.Background(), hasher.RollingBitHash{}, "!")

		require.NoError(t, err)
		assert.NotEqual(t, "x", res.Code)
		assert.Equal(t, "y", res.Code) // 34 in base36
		assert.Equal(t, 2, res.Attempts)

		// The seeded entry keeps its owner.
		longURL, err := memStore.Get(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, "https://other.com", longURL)
	})

	t.Run("assigns distinct codes to urls with identical initial candidates", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		r := newTestResolver(memStore, 8)

		strategy := seqStrategy{codes: []string{"clash", "clash2"}}

		res1, err1 := r.Resolve(context.Background(), strategy, "https://example.com/a")
		require.NoError(t, err1)

		// Same initial candidate, different URL: must land elsewhere.
		res2, err2 := r.Resolve(context.Background(), strategy, "https://example.com/b")
		require.NoError(t, err2)

		assert.Equal(t, "clash", res1.Code)
		assert.Equal(t, "clash2", res2.Code)
	})

	t.Run("falls back to a salted code when the chain is saturated", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		r := newTestResolver(memStore, 2)

		_, _, err := memStore.SaveIfAbsent(context.Background(), "stuck", "https://other.com")
		require.NoError(t, err)

		res, err := r.Resolve(context.Background(), echoStrategy{}, "stuck")

		require.NoError(t, err)
		assert.True(t, res.Salted)
		assert.NotEqual(t, "stuck", res.Code)
		assert.Greater(t, res.Attempts, 2)

		longURL, err := memStore.Get(context.Background(), res.Code)
		require.NoError(t, err)
		assert.Equal(t, "stuck", longURL)
	})

	t.Run("returns a typed error when even salted codes collide", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		r := newTestResolver(memStore, 2)

		_, _, err := memStore.SaveIfAbsent(context.Background(), "dup", "https://other.com")
		require.NoError(t, err)

		_, err = r.Resolve(context.Background(), fixedStrategy{code: "dup"}, "https://example.com/b")

		assert.ErrorIs(t, err, shortener.ErrAttemptsExhausted)
	})

	t.Run("allocates unique codes under concurrency", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		r := newTestResolver(memStore, 8)

		const n = 50

		var wg sync.WaitGroup

		codes := make([]string, n)

		for i := 0; i < n; i++ {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()

				res, err := r.Resolve(context.Background(), hasher.Murmur32Int{}, fmt.Sprintf("https://example.com/%d", i))
				if err == nil {
					codes[i] = res.Code
				}
			}(i)
		}

		wg.Wait()

		seen := make(map[string]bool, n)
		for _, code := range codes {
			require.NotEmpty(t, code)
			assert.False(t, seen[code], "code %q allocated twice", code)
			seen[code] = true
		}
	})
}
