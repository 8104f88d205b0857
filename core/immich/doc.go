// Package immich provides the HTTP client for the Immich server API.
//
// # Client Interface
//
// All operations are defined on the Client interface so consumers can
// depend on the behavior rather than the transport. A testify mock
// lives in core/immich/mocks for unit tests.
//
// # Operations
//
// The client covers the endpoints the sync flow needs:
//
//   - Ping: server reachability probe, used at startup
//   - AllAlbums: list every album visible to the API key
//   - AlbumAssetIDs: asset ids currently in one album
//   - CreateAlbum: create an empty album by name
//   - AddAssets: bulk add asset ids to an album, per-id results
//   - SearchAssets: paginated metadata search
//
// Errors are classified with two sentinels. ErrAuth wraps 401 and 403
// responses and ErrUnavailable wraps transport failures, 429 and 5xx
// responses. Callers decide with errors.Is which failures to retry.
//
// # Usage
//
//	client := immich.NewClient(cfg.Immich)
//	if err := client.Ping(ctx); err != nil {
//	    return err
//	}
//	albums, err := client.AllAlbums(ctx)
package immich
