// Package server holds the HTTP server configuration for serve mode.
//
// While the serve command handles the server startup, this package
// defines the configuration structure for server settings, such as the
// listen port and the scheduled sync interval.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the pause
// between scheduled sync runs.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the serve command to schedule background runs.
package server
