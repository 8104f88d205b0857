package idcache

import "time"

// Config holds configuration for the asset id cache.
type Config struct {
	// Backend selects the cache backend (redis, badger, memory, none).
	Backend string `mapstructure:"backend" default:"redis"`
	// TTLSeconds is the entry time-to-live in seconds. Zero keeps entries forever.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"604800"`
	// Prefix is prepended to every cache key.
	Prefix string `mapstructure:"prefix" default:"lr2immich:asset:"`
	// RedisURL is the connection URL for the redis backend.
	RedisURL string `mapstructure:"redis_url" default:"redis://localhost:6379/0"`
	// BadgerPath is the on-disk directory for the badger backend.
	BadgerPath string `mapstructure:"badger_path" default:".lr2immich/cache"`
}

const (
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// IsValidBackend checks if the configured backend is valid.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendRedis, BackendBadger, BackendMemory, BackendNone:
		return true
	default:
		return false
	}
}

// TTL returns the configured time-to-live as a duration.
func (c Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
