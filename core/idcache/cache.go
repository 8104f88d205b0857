package idcache

import (
	"context"
	"fmt"
)

// Cache maps asset fingerprints to Immich asset ids across runs.
type Cache interface {
	// Get returns the asset id stored for fingerprint, if any.
	Get(ctx context.Context, fingerprint string) (string, bool, error)
	// Set stores the asset id for fingerprint, honoring the configured TTL.
	Set(ctx context.Context, fingerprint, assetID string) error
	// Len returns the number of entries under the configured prefix.
	Len(ctx context.Context) (int64, error)
	// Flush removes every entry under the configured prefix.
	Flush(ctx context.Context) error
	// Close releases the backend resources.
	Close() error
}

// Open creates the cache backend selected by cfg.
func Open(cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendRedis:
		return openRedis(cfg)
	case BackendBadger:
		return openBadger(cfg)
	case BackendMemory:
		return newMemoryCache(cfg.TTL()), nil
	case BackendNone:
		return Noop(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Noop returns a Cache that stores nothing and always misses. It backs
// the none backend and cacheless runs.
func Noop() Cache {
	return noop{}
}

type noop struct{}

var _ Cache = noop{}

func (noop) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	return "", false, nil
}

func (noop) Set(ctx context.Context, fingerprint, assetID string) error {
	return nil
}

func (noop) Len(ctx context.Context) (int64, error) {
	return 0, nil
}

func (noop) Flush(ctx context.Context) error {
	return nil
}

func (noop) Close() error {
	return nil
}
