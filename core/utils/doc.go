// Package utils provides common utility functions for the lr2immich application.
// It includes helper functions for coercing generically scanned SQLite row values
// (text timestamps, nullable integers) into Go types, and other shared logic that
// doesn't fit into domain-specific packages.
package utils
