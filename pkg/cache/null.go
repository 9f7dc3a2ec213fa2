package cache

import (
	"context"
	"time"
)

// NullCache backs --no-cache: writes are dropped, so every layout and
// artifact is recomputed.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a cache that holds nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
