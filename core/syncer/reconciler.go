package syncer

import (
	"context"
	"fmt"
	"sync"

	"lr2immich/core/immich"

	"go.uber.org/zap"
)

// Reconciler converges Immich album membership toward catalog
// collections. It only ever creates albums and adds members; nothing
// is removed, renamed or deleted.
type Reconciler struct {
	client immich.Client
	cfg    Config
	logger *zap.Logger

	mu     sync.Mutex
	albums map[string]immich.Album
	locks  map[string]*sync.Mutex
}

// NewReconciler creates a Reconciler. Load must run once before any
// Reconcile call.
func NewReconciler(client immich.Client, cfg Config, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		client: client,
		cfg:    cfg,
		logger: logger,
		albums: make(map[string]immich.Album),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Load fetches the server's album list once and indexes it by name.
// The index is the only album listing a run performs; created albums
// are inserted as they appear.
func (r *Reconciler) Load(ctx context.Context) error {
	albums, err := r.client.AllAlbums(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.albums = make(map[string]immich.Album, len(albums))
	for _, album := range albums {
		r.albums[album.Name] = album
	}
	return nil
}

func (r *Reconciler) lookup(name string) (immich.Album, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	album, ok := r.albums[name]
	return album, ok
}

func (r *Reconciler) store(album immich.Album) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.albums[album.Name] = album
}

// albumLock serializes reconciliation per album name so concurrent
// workers never interleave writes to one album.
func (r *Reconciler) albumLock(name string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[name] = lock
	}
	return lock
}

// Reconcile brings the album named name up to date with the resolved
// assets of one collection. Unresolved references are counted and
// skipped; membership only grows. Running it again with the same
// inputs performs no further writes.
func (r *Reconciler) Reconcile(ctx context.Context, name string, resolved []ResolvedAsset, dryRun bool) AlbumResult {
	result := AlbumResult{Album: name, Total: len(resolved)}

	// Virtual copies resolve to the same id; keep the first occurrence.
	ids := make([]string, 0, len(resolved))
	seen := make(map[string]struct{}, len(resolved))
	for _, asset := range resolved {
		if !asset.Resolved() {
			result.Unresolved++
			continue
		}
		result.Resolved++
		if asset.Ambiguous {
			result.Ambiguous++
		}
		if _, ok := seen[asset.AssetID]; ok {
			continue
		}
		seen[asset.AssetID] = struct{}{}
		ids = append(ids, asset.AssetID)
	}

	if len(ids) == 0 {
		r.logger.Info("nothing resolved, skipping album", zap.String("album", name))
		result.Skipped = true
		return result
	}

	if dryRun {
		if album, ok := r.lookup(name); ok {
			r.logger.Info("dry run: would update album",
				zap.String("album", name),
				zap.String("album_id", album.ID),
				zap.Int("assets", len(ids)),
			)
			result.AlbumID = album.ID
		} else {
			r.logger.Info("dry run: would create album",
				zap.String("album", name),
				zap.Int("assets", len(ids)),
			)
		}
		return result
	}

	lock := r.albumLock(name)
	lock.Lock()
	defer lock.Unlock()

	album, created, err := r.ensureAlbum(ctx, name)
	if err != nil {
		result.Err = fmt.Errorf("create album %q failed: %w", name, err)
		return result
	}
	result.AlbumID = album.ID
	result.Created = created

	missing, present, err := r.missingAssets(ctx, album, ids, created)
	if err != nil {
		result.Err = fmt.Errorf("list album %q assets failed: %w", name, err)
		return result
	}
	result.AlreadyPresent = present
	if len(missing) == 0 {
		return result
	}

	added, alreadyPresent, failed, err := r.addAssets(ctx, album.ID, missing)
	result.Added = added
	result.AlreadyPresent += alreadyPresent
	result.FailedAdds = failed
	if err != nil {
		result.Err = fmt.Errorf("add assets to album %q failed: %w", name, err)
	}
	return result
}

// ensureAlbum returns the album for name, creating it when absent. The
// caller holds the album lock, so a name maps to exactly one album per
// run even with concurrent workers.
func (r *Reconciler) ensureAlbum(ctx context.Context, name string) (immich.Album, bool, error) {
	if album, ok := r.lookup(name); ok {
		return album, false, nil
	}
	var album *immich.Album
	err := withRetry(ctx, r.logger, r.cfg.MaxRetries, r.cfg.RetryDelay(), "create album", func() error {
		var err error
		album, err = r.client.CreateAlbum(ctx, name)
		return err
	})
	if err != nil {
		return immich.Album{}, false, err
	}
	r.store(*album)
	r.logger.Info("created album",
		zap.String("album", name),
		zap.String("album_id", album.ID),
	)
	return *album, true, nil
}

// missingAssets diffs ids against the album's current membership and
// returns the ids to add plus the count already present. Freshly
// created albums are empty, so their snapshot fetch is skipped.
func (r *Reconciler) missingAssets(ctx context.Context, album immich.Album, ids []string, created bool) ([]string, int, error) {
	current := make(map[string]struct{})
	if !created {
		var members []string
		err := withRetry(ctx, r.logger, r.cfg.MaxRetries, r.cfg.RetryDelay(), "list album assets", func() error {
			var err error
			members, err = r.client.AlbumAssetIDs(ctx, album.ID)
			return err
		})
		if err != nil {
			return nil, 0, err
		}
		for _, id := range members {
			current[id] = struct{}{}
		}
	}

	missing := make([]string, 0, len(ids))
	present := 0
	for _, id := range ids {
		if _, ok := current[id]; ok {
			present++
			continue
		}
		missing = append(missing, id)
	}
	return missing, present, nil
}

// addAssets pushes ids to the album in batches and tallies the per-id
// results. A failed batch stops the album; earlier batches stay counted.
func (r *Reconciler) addAssets(ctx context.Context, albumID string, ids []string) (added, alreadyPresent, failed int, err error) {
	size := r.cfg.BatchSize
	if size < 1 {
		size = len(ids)
	}
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		var results []immich.AddResult
		err = withRetry(ctx, r.logger, r.cfg.MaxRetries, r.cfg.RetryDelay(), "add album assets", func() error {
			var err error
			results, err = r.client.AddAssets(ctx, albumID, batch)
			return err
		})
		if err != nil {
			failed += len(ids) - start
			return added, alreadyPresent, failed, err
		}
		for _, res := range results {
			switch {
			case res.Success:
				added++
			case res.Error == "duplicate":
				alreadyPresent++
			default:
				failed++
			}
		}
	}
	return added, alreadyPresent, failed, nil
}
