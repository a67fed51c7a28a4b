// Package ratelimit provides sliding-window request limiting configured per
// endpoint through huma operation metadata.
package ratelimit

import (
	"context"
	"time"
)

// Store records request hits per key over a sliding window.
type Store interface {
	// Record registers a hit for key and returns the number of hits still
	// inside the window, the new one included.
	Record(ctx context.Context, key string, window time.Duration) (int64, error)
}
