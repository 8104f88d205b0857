package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"lr2immich/core/config"
	"lr2immich/core/idcache"
	"lr2immich/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var yesConfirm bool

// cacheCmd is the parent command for id cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the asset id cache",
}

// cacheStatsCmd shows the cache backend and entry count.
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache backend and entry count",
	RunE:  runCacheStats,
}

// cacheFlushCmd deletes every cached mapping.
var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Delete every cached asset id mapping",
	Long: `Removes all entries under the configured key prefix. The next sync run
re-resolves every asset through metadata search, which is slower but
always safe.`,
	RunE: runCacheFlush,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheFlushCmd)
	cacheFlushCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cache, err := idcache.Open(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cache.Close()

	entries, err := cache.Len(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count cache entries: %w", err)
	}

	fmt.Println("\n--- Cache Stats ---")
	fmt.Printf("Backend:   %s\n", cfg.Cache.Backend)
	fmt.Printf("Prefix:    %s\n", cfg.Cache.Prefix)
	fmt.Printf("TTL:       %s\n", cfg.Cache.TTL())
	fmt.Printf("Entries:   %d\n", entries)
	return nil
}

func runCacheFlush(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	cache, err := idcache.Open(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cache.Close()

	entries, err := cache.Len(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count cache entries: %w", err)
	}
	if entries == 0 {
		l.Info("Cache is already empty")
		return nil
	}

	fmt.Printf("About to delete %d cached mappings (backend %s, prefix %q).\n",
		entries, cfg.Cache.Backend, cfg.Cache.Prefix)
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	if err := cache.Flush(cmd.Context()); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	l.Info("Cache flushed", zap.Int64("entries", entries))
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
