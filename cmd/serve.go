package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lr2immich/core/config"
	"lr2immich/core/idcache"
	"lr2immich/core/immich"
	"lr2immich/core/loader"
	"lr2immich/core/logger"
	"lr2immich/core/middleware/auth"
	"lr2immich/core/middleware/rayid"
	"lr2immich/core/syncer"
	"lr2immich/feature/checkup"
	syncfeature "lr2immich/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduled sync server",
	Long: `Starts the HTTP server and runs sync passes on a schedule: one at
startup, then one per configured interval. The API exposes the
scheduler state, a manual trigger and the dependency checks.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 3. Verify the Immich server before scheduling anything
		client := immich.NewClient(cfg.Immich)
		if err := client.Ping(ctx); err != nil {
			logg.Fatal("Immich server unreachable", zap.Error(err))
		}

		// 4. Connect the id cache (Optional)
		cache, err := idcache.Open(cfg.Cache)
		if err != nil {
			logg.Warn("Cache unavailable, continuing without it", zap.Error(err))
			cache = idcache.Noop()
		}
		defer cache.Close()

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Sync scheduler service
		svc := syncfeature.NewService(cfg.Catalog, client, cache, cfg.Sync, syncer.Options{}, logg)

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(syncfeature.NewFeature(svc))
		mgr.Register(checkup.NewFeature(cfg, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Liveness probe, registered before auth so monitors need no key
		app.Get("/healthz", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Schedule Loop
		go svc.Start(ctx, cfg.Server.SyncInterval())

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.Duration("sync_interval", cfg.Server.SyncInterval()),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
