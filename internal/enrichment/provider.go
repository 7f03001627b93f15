// Package enrichment merges external profile activity into candidate records.
// The core depends only on the Provider contract; GitHub and Redis-cached
// implementations live alongside it.
package enrichment

import (
	"context"
	"errors"
)

// ErrUnavailable wraps every failure to obtain activity for a handle.
var ErrUnavailable = errors.New("enrichment unavailable")

// Activity is what an external source reports for a handle.
type Activity struct {
	ActivityCount int      `json:"activity_count"`
	Languages     []string `json:"languages"`
}

// Provider looks up activity for an external handle. Any error is treated as
// the degraded default by the Consumer.
type Provider interface {
	Lookup(ctx context.Context, handle string) (*Activity, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, handle string) (*Activity, error)

// Lookup implements Provider.
func (f ProviderFunc) Lookup(ctx context.Context, handle string) (*Activity, error) {
	return f(ctx, handle)
}
