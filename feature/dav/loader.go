package dav

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"switchshop/core/server"
)

// RequestMethods returns Fiber's default method list extended with
// the WebDAV verbs. The application must be constructed with these
// for /dav routes to match PROPFIND and friends.
func RequestMethods() []string {
	methods := make([]string, 0, len(fiber.DefaultMethods)+7)
	methods = append(methods, fiber.DefaultMethods...)
	return append(methods, "PROPFIND", "PROPPATCH", "MKCOL", "COPY", "MOVE", "LOCK", "UNLOCK")
}

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates a new WebDAV feature serving gamesDir.
func NewFeature(gamesDir string, cfg server.Config, logger *zap.Logger) *Feature {
	return &Feature{
		handler: NewHandler(gamesDir, cfg, logger),
		enabled: cfg.WebDAVEnabled,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "dav"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
