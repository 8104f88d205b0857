// Package config provides configuration management for lr2immich.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Catalog: path to the Lightroom catalog file
//   - Immich: server URL, API key, timeouts and rate limits
//   - Cache: asset id cache backend and TTL
//   - Sync: batch size, worker counts and retry policy
//   - Server: HTTP server settings for serve mode
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Immich.URL)
package config
