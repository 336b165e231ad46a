package cmd

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"switchshop/core/catalog"
	"switchshop/core/config"
	"switchshop/core/downloads"
	"switchshop/core/events"
	"switchshop/core/images"
	"switchshop/core/loader"
	"switchshop/core/logger"
	"switchshop/core/metadata"
	"switchshop/core/middleware/rayid"
	"switchshop/core/reconcile"

	"switchshop/feature/dav"
	"switchshop/feature/library"
	shopfeature "switchshop/feature/shop"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the shop server",
	Long:  `Starts the HTTP server, the catalog scan, and all background tasks.`,
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

		logg.Info("starting switchshop",
			zap.String("games_dir", cfg.Library.GamesDir),
			zap.String("data_dir", cfg.Library.DataDir))

		// 3. Ensure directory layout
		if err := os.MkdirAll(cfg.Library.GamesDir, 0o755); err != nil {
			logg.Fatal("failed to create games directory", zap.Error(err))
		}
		if err := os.MkdirAll(filepath.Join(cfg.Library.DataDir, "images"), 0o755); err != nil {
			logg.Fatal("failed to create images directory", zap.Error(err))
		}

		// 4. Wire the catalog core
		bus := events.NewBus()
		cat := catalog.NewStore(bus)
		meta := metadata.NewStore(cfg.Metadata, cfg.Library.DataDir, logg)
		meta.Load()
		engine := reconcile.New(cat, meta, bus, logg, cfg.Library)
		tracker := downloads.NewTracker()
		fetcher := images.NewFetcher(cat, meta, bus, logg, cfg.Library)

		// 5. Background tasks: image cache fill subscribes first so
		// the initial scan's completion event cannot be dropped, then
		// scan + watch, periodic metadata sync, download speedometer.
		fetcher.Start()
		engine.Start()
		go meta.RunPeriodic(bus)
		go tracker.RunSpeedometer(bus)

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			RequestMethods:        dav.RequestMethods(),
		})

		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Debug("request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("request error", zap.Error(err))
			}
			return err
		})

		// 7. Register Features
		hostURL := "http://127.0.0.1:" + cfg.Server.Port
		if ips := library.LocalIPs(); len(ips) > 0 {
			hostURL = "http://" + ips[0] + ":" + cfg.Server.Port
		}

		mgr := loader.NewManager(logg)
		libFeature := library.NewFeature(cat, meta, engine, tracker, bus, logg,
			cfg.Library.GamesDir, cfg.Server)
		mgr.Register(libFeature)
		mgr.Register(shopfeature.NewFeature(cat, logg, cfg.Shop, hostURL, libFeature.DownloadHandler()))
		mgr.Register(dav.NewFeature(cfg.Library.GamesDir, cfg.Server, logg))

		app.Static("/images", filepath.Join(cfg.Library.DataDir, "images"))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("listening", zap.String("port", cfg.Server.Port), zap.String("url", hostURL))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("shutting down server")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
