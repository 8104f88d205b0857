// Package sync schedules background sync passes for serve mode.
//
// The Service loop runs one pass at startup, one per configured
// interval and one for every trigger request, never more than one at a
// time. Each pass opens the catalog fresh, drives the sync engine and
// records a RunReport.
//
// # Endpoints
//
//   - GET /sync/status: scheduler state and the last pass outcome
//   - POST /sync/trigger: queue an immediate pass
//
// The feature registers both through the loader; the serve command
// owns the Service so the schedule loop and the HTTP surface share
// one state.
package sync
