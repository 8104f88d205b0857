// Package checkup verifies that every external dependency of a sync
// run is usable: the configuration is complete, the Lightroom catalog
// opens and carries the expected schema, the Immich server answers
// with the configured key, and the id cache backend connects.
//
// The check command drives the same Service from the CLI; serve mode
// exposes it at GET /checkup for monitors. Each check reports
// independently, so one broken dependency never hides the state of
// the others.
package checkup
