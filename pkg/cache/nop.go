package cache

import (
	"context"
	"time"
)

// NopCache discards writes and misses on every read. It backs --no-cache
// and the "none" config kind, and keeps the pipeline free of nil checks.
type NopCache struct{}

// NewNopCache returns the no-op cache.
func NewNopCache() Cache { return NopCache{} }

// Get always misses.
func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (NopCache) Delete(context.Context, string) error { return nil }

// Close is a no-op.
func (NopCache) Close() error { return nil }

var _ Cache = NopCache{}
