package syncer

import "time"

// Config holds configuration for the sync engine.
type Config struct {
	// BatchSize is the maximum number of asset ids per album add call.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// AssetWorkers is the number of concurrent asset resolutions per collection.
	AssetWorkers int `mapstructure:"asset_workers" default:"4"`
	// AlbumWorkers is the number of collections synced concurrently.
	AlbumWorkers int `mapstructure:"album_workers" default:"1"`
	// MaxRetries is the number of attempts for retryable Immich calls.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryDelaySeconds is the initial backoff delay between attempts.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" default:"1"`
}

// RetryDelay returns the initial retry backoff as a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}
