package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by every repository when a lookup matches nothing.
var ErrNotFound = errors.New("document not found")

// DefaultTimeout bounds a single database round trip.
const DefaultTimeout = 5 * time.Second

// WithTimeout derives a bounded context from ctx, falling back to
// context.Background when ctx is nil.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}
