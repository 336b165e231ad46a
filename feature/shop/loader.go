package shop

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"switchshop/core/catalog"
	"switchshop/core/shop"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Shop feature. The download handler is
// shared with the library feature so /dbi/{path} and /files/{path}
// serve files identically.
func NewFeature(cat *catalog.Store, logger *zap.Logger, cfg shop.Config, hostURL string, download fiber.Handler) *Feature {
	svc := NewService(cat, logger, cfg, hostURL)
	h := NewHandler(svc, download)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "shop"
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
