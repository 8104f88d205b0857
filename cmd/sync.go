package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lr2immich/core/catalog"
	"lr2immich/core/config"
	"lr2immich/core/idcache"
	"lr2immich/core/immich"
	"lr2immich/core/logger"
	"lr2immich/core/syncer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	dryRunSync      bool
	forceSync       bool
	collectionsSync string
)

// syncCmd runs one full catalog to Immich sync pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync Lightroom collections into Immich albums",
	Long: `Runs one reconciliation pass: reads the collections from the Lightroom
catalog, resolves each asset against Immich by metadata, creates missing
albums and adds the resolved assets to them.

Albums are only ever created and grown. Nothing is removed, renamed or
deleted on the Immich side, so re-running is always safe.

Exit codes: 0 when everything reconciled, 2 when some assets stayed
unresolved or an album failed, 1 on startup failures.

Examples:
  # Full sync
  lr2immich sync

  # Only collections whose name contains "2023"
  lr2immich sync --collections 2023

  # Show what would change without writing
  lr2immich sync --dry-run

  # Keep going when the cache backend is down
  lr2immich sync --force`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Resolve assets but do not create albums or add members")
	syncCmd.Flags().BoolVar(&forceSync, "force", false, "Run without the id cache when its backend is unreachable")
	syncCmd.Flags().StringVar(&collectionsSync, "collections", "", "Only sync collections whose name contains this value")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	// Cancel the run on interrupt so in-flight calls stop cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the catalog read-only
	cat, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	// Verify the server answers before doing any work
	client := immich.NewClient(cfg.Immich)
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("immich server unreachable: %w", err)
	}

	// Connect the id cache; --force degrades to a cacheless run
	cache, err := idcache.Open(cfg.Cache)
	if err != nil {
		if !forceSync {
			return fmt.Errorf("failed to open cache (use --force to sync without it): %w", err)
		}
		l.Warn("Cache unavailable, continuing without it", zap.Error(err))
		cache = idcache.Noop()
	}
	defer cache.Close()

	engine := syncer.NewEngine(cat, client, cache, cfg.Sync, l)
	summary, err := engine.Run(ctx, syncer.Options{
		DryRun: dryRunSync,
		Filter: collectionsSync,
	})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printSummary(l, summary)

	if summary.Status != syncer.StatusOK {
		_ = l.Sync()
		os.Exit(2)
	}
	return nil
}

// printSummary logs the aggregate run outcome and the per-album
// failures a user would want to chase.
func printSummary(l *zap.Logger, s *syncer.Summary) {
	l.Info("Sync finished",
		zap.String("status", s.Status),
		zap.Int("albums", s.Albums),
		zap.Int("albums_created", s.AlbumsCreated),
		zap.Int("albums_failed", s.AlbumsFailed),
		zap.Int("albums_skipped", s.AlbumsSkipped),
		zap.Int("assets_resolved", s.AssetsResolved),
		zap.Int("assets_unresolved", s.AssetsUnresolved),
		zap.Int("assets_added", s.AssetsAdded),
		zap.Duration("duration", s.Duration),
	)

	for _, r := range s.Results {
		if r.Err != nil {
			l.Error("Album failed", zap.String("album", r.Album), zap.Error(r.Err))
		}
		if r.Unresolved > 0 {
			l.Warn("Album has unresolved assets",
				zap.String("album", r.Album),
				zap.Int("unresolved", r.Unresolved),
			)
		}
	}
}
