package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// SyncIntervalMinutes is the pause between scheduled sync runs.
	SyncIntervalMinutes int `mapstructure:"sync_interval_minutes" default:"360"`
}

// SyncInterval returns the scheduled sync pause as a duration.
func (c Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalMinutes) * time.Minute
}
