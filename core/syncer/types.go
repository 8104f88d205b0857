package syncer

import (
	"time"

	"lr2immich/core/catalog"
)

// Resolution provenance tags.
const (
	MatchCache      = "cache"
	MatchSearch     = "metadata-search"
	MatchUnresolved = "unresolved"
)

// Run status values.
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// ResolvedAsset is the outcome of resolving one catalog asset reference
// against the Immich server.
type ResolvedAsset struct {
	// Ref is the catalog reference this result belongs to.
	Ref catalog.AssetRef
	// Fingerprint is the stable cache key derived from Ref.
	Fingerprint string
	// AssetID is the matched Immich asset id, empty when unresolved.
	AssetID string
	// Method records how the id was found: cache, metadata-search or unresolved.
	Method string
	// Ambiguous marks matches picked by the lexicographic tie-break.
	Ambiguous bool
	// Err holds the failure that prevented resolution, if any.
	Err error
}

// Resolved reports whether the asset was matched to an Immich id.
func (r ResolvedAsset) Resolved() bool {
	return r.AssetID != ""
}

// AlbumResult is the per-collection outcome of one sync run.
type AlbumResult struct {
	// Album is the flattened collection name.
	Album string
	// AlbumID is the Immich album id, empty when the album was never touched.
	AlbumID string
	// Created marks albums created during this run.
	Created bool
	// Total is the number of asset references read from the collection.
	Total int
	// Resolved counts references matched to an Immich id.
	Resolved int
	// Unresolved counts references without a match.
	Unresolved int
	// Ambiguous counts matches flagged by the tie-break.
	Ambiguous int
	// Added counts assets newly added to the album.
	Added int
	// AlreadyPresent counts assets that were members before the run.
	AlreadyPresent int
	// FailedAdds counts assets the server rejected on add.
	FailedAdds int
	// Skipped marks collections with nothing to reconcile.
	Skipped bool
	// Err holds the failure that stopped work on this collection, if any.
	Err error
}

// Summary aggregates the outcome of one sync run.
type Summary struct {
	// Status is ok, partial or failed.
	Status string
	// Duration is the wall time of the run.
	Duration time.Duration
	// Albums is the number of collections processed.
	Albums int
	// AlbumsCreated is the number of albums created on the server.
	AlbumsCreated int
	// AlbumsFailed is the number of collections that hit a fatal per-album error.
	AlbumsFailed int
	// AlbumsSkipped is the number of collections with nothing to reconcile.
	AlbumsSkipped int
	// AssetsResolved, AssetsUnresolved, AssetsAmbiguous and AssetsAdded
	// aggregate the per-collection counters.
	AssetsResolved   int
	AssetsUnresolved int
	AssetsAmbiguous  int
	AssetsAdded      int
	// Results holds the per-collection detail.
	Results []AlbumResult
}

// Options adjust a single run without changing configuration.
type Options struct {
	// DryRun resolves assets but performs no album writes.
	DryRun bool
	// Filter keeps only collections whose flattened name contains the
	// value, case-insensitive. Empty keeps everything.
	Filter string
}
