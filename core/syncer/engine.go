package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lr2immich/core/catalog"
	"lr2immich/core/idcache"
	"lr2immich/core/immich"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CollectionSource yields the catalog side of a sync run. It is
// implemented by catalog.Catalog.
type CollectionSource interface {
	Collections(ctx context.Context) ([]catalog.Collection, error)
	Assets(ctx context.Context, collectionID int64) ([]catalog.AssetRef, error)
}

var _ CollectionSource = (*catalog.Catalog)(nil)

// Engine drives a full catalog to Immich sync run.
type Engine struct {
	source     CollectionSource
	cfg        Config
	logger     *zap.Logger
	resolver   *Resolver
	reconciler *Reconciler
}

// NewEngine wires a sync engine from its collaborators.
func NewEngine(source CollectionSource, client immich.Client, cache idcache.Cache, cfg Config, logger *zap.Logger) *Engine {
	return &Engine{
		source:     source,
		cfg:        cfg,
		logger:     logger,
		resolver:   NewResolver(client, cache, cfg, logger),
		reconciler: NewReconciler(client, cfg, logger),
	}
}

// Run executes one sync pass and reports the aggregate outcome. Only an
// unreadable catalog or a failed album listing aborts the run; every
// other failure is captured per collection in the summary.
func (e *Engine) Run(ctx context.Context, opts Options) (*Summary, error) {
	started := time.Now()

	collections, err := e.source.Collections(ctx)
	if err != nil {
		return nil, err
	}
	collections = filterCollections(collections, opts.Filter)
	if len(collections) == 0 {
		e.logger.Info("no collections to sync")
		return &Summary{Status: StatusOK, Duration: time.Since(started)}, nil
	}
	e.logger.Info("starting sync",
		zap.Int("collections", len(collections)),
		zap.Bool("dry_run", opts.DryRun),
	)

	if err := e.reconciler.Load(ctx); err != nil {
		return nil, fmt.Errorf("list albums failed: %w", err)
	}

	limit := e.cfg.AlbumWorkers
	if limit < 1 {
		limit = 1
	}
	results := make([]AlbumResult, len(collections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, col := range collections {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.syncCollection(gctx, col, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return summarize(results, time.Since(started)), nil
}

// syncCollection resolves one collection's references and reconciles
// the matching album. Resolution finishes for every reference before
// any album write happens.
func (e *Engine) syncCollection(ctx context.Context, col catalog.Collection, opts Options) AlbumResult {
	log := e.logger.With(zap.String("album", col.Name))

	refs, err := e.source.Assets(ctx, col.ID)
	if err != nil {
		log.Error("reading collection failed", zap.Error(err))
		return AlbumResult{Album: col.Name, Err: err}
	}
	if len(refs) == 0 {
		log.Info("collection is empty, skipping")
		return AlbumResult{Album: col.Name, Skipped: true}
	}

	resolved := e.resolveAll(ctx, refs)
	result := e.reconciler.Reconcile(ctx, col.Name, resolved, opts.DryRun)
	log.Info("collection synced",
		zap.Int("resolved", result.Resolved),
		zap.Int("unresolved", result.Unresolved),
		zap.Int("added", result.Added),
		zap.Int("already_present", result.AlreadyPresent),
	)
	return result
}

// resolveAll resolves every reference of one collection with a bounded
// worker pool, keeping catalog order.
func (e *Engine) resolveAll(ctx context.Context, refs []catalog.AssetRef) []ResolvedAsset {
	limit := e.cfg.AssetWorkers
	if limit < 1 {
		limit = 1
	}
	resolved := make([]ResolvedAsset, len(refs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, ref := range refs {
		g.Go(func() error {
			resolved[i] = e.resolver.Resolve(ctx, ref)
			return nil
		})
	}
	_ = g.Wait()
	return resolved
}

// filterCollections keeps collections whose flattened name contains
// filter, case-insensitive. An empty filter keeps everything.
func filterCollections(collections []catalog.Collection, filter string) []catalog.Collection {
	if filter == "" {
		return collections
	}
	needle := strings.ToLower(filter)
	kept := collections[:0]
	for _, col := range collections {
		if strings.Contains(strings.ToLower(col.Name), needle) {
			kept = append(kept, col)
		}
	}
	return kept
}

func summarize(results []AlbumResult, duration time.Duration) *Summary {
	s := &Summary{Status: StatusOK, Duration: duration, Results: results}
	for _, r := range results {
		s.Albums++
		if r.Skipped {
			s.AlbumsSkipped++
		}
		if r.Created {
			s.AlbumsCreated++
		}
		if r.Err != nil {
			s.AlbumsFailed++
		}
		s.AssetsResolved += r.Resolved
		s.AssetsUnresolved += r.Unresolved
		s.AssetsAmbiguous += r.Ambiguous
		s.AssetsAdded += r.Added
	}
	if s.AlbumsFailed > 0 || s.AssetsUnresolved > 0 {
		s.Status = StatusPartial
	}
	return s
}
