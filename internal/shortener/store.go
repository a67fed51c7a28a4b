// Package shortener holds the code allocation core: the store contract for
// the shared code table and the resolver that walks a hash strategy's
// candidate sequence until a unique code is secured.
package shortener

import (
	"context"
	"errors"
)

// ErrNotFound indicates no mapping exists for the requested code.
var ErrNotFound = errors.New("url not found")

// Store is the shared code -> long URL table. Entries are insert-only: a code
// never changes owner and is never deleted for the life of the process. All
// strategies write into the same namespace.
type Store interface {
	// SaveIfAbsent inserts the mapping unless the code is already taken. It
	// reports whether the insert happened and, when it did not, the long URL
	// that currently owns the code. The check and the insert are one atomic
	// step so concurrent resolves cannot race an ownership change.
	SaveIfAbsent(ctx context.Context, code, longURL string) (existing string, saved bool, err error)

	// Get returns the long URL stored under code, or ErrNotFound.
	Get(ctx context.Context, code string) (string, error)

	// Len reports the number of stored mappings.
	Len(ctx context.Context) (int64, error)
}
