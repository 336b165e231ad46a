package library

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"switchshop/core/catalog"
	"switchshop/core/downloads"
	"switchshop/core/events"
	"switchshop/core/metadata"
	"switchshop/core/reconcile"
	"switchshop/core/server"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Library feature.
func NewFeature(cat *catalog.Store, meta *metadata.Store, engine *reconcile.Engine,
	tracker *downloads.Tracker, bus *events.Bus, logger *zap.Logger,
	gamesDir string, serverCfg server.Config) *Feature {
	svc := NewService(cat, meta, engine, tracker, bus, logger, gamesDir, serverCfg)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "library"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// DownloadHandler exposes the file download handler so other features
// (the DBI index) can route their download paths to the same logic.
func (f *Feature) DownloadHandler() fiber.Handler {
	return f.handler.HandleDownload
}
