// Package syncer implements the catalog to Immich synchronization run.
//
// # Pipeline
//
// A run walks three stages per collection:
//
//  1. Resolve: map each asset reference to an Immich asset id, first
//     from the id cache, then through a staged metadata search with a
//     deterministic tie-break for multiple candidates.
//  2. Reconcile: create the matching album when absent and add the
//     resolved ids that are not members yet. Membership only grows.
//  3. Summarize: per-collection results roll up into a Summary whose
//     status maps to the process exit code.
//
// Resolution for a collection completes before its album is written.
// Collections run on a bounded worker pool, as do the per-collection
// resolutions, so the concurrency stays within the server's rate
// limits.
//
// # Failure Model
//
// Unresolved references, ambiguous matches and per-album failures are
// recorded and reported; they never abort the run. Unavailable-server
// errors are retried with exponential backoff before degrading. Only an
// unreadable catalog or a failed startup album listing aborts.
//
// # Usage
//
//	engine := syncer.NewEngine(cat, client, cache, cfg.Sync, logger)
//	summary, err := engine.Run(ctx, syncer.Options{})
package syncer
