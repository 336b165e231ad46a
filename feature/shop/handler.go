package shop

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"switchshop/core/logger"
	"switchshop/core/shop"
)

// Handler handles shop-protocol HTTP requests.
type Handler struct {
	service  *Service
	download fiber.Handler
}

// NewHandler creates a new HTTP handler. The download handler serves
// files referenced from the DBI listing.
func NewHandler(service *Service, download fiber.Handler) *Handler {
	return &Handler{service: service, download: download}
}

// RegisterRoutes registers the shop routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	for _, route := range []string{"/tinfoil", "/tinfoil/", "/tinwoo", "/tinwoo/"} {
		app.Get(route, h.HandleShopIndex)
	}
	app.Get("/dbi", h.HandleDirectoryIndex)
	app.Get("/dbi/", h.HandleDirectoryIndex)
	app.Get("/dbi/*", h.download)
}

// HandleShopIndex serves the shop index, wrapped in the encrypted
// container when enabled. Container encoding failures fall back to
// the plain JSON index; they never fail the request.
func (h *Handler) HandleShopIndex(c *fiber.Ctx) error {
	host := h.service.hostURL
	if hostname := c.Hostname(); hostname != "" {
		host = "http://" + hostname
	}

	index := h.service.Index(host)

	if h.service.EncryptEnabled() {
		l := logger.WithRayID(h.service.logger, c)
		payload, err := json.Marshal(index)
		if err != nil {
			l.Error("shop index marshal failed", zap.Error(err))
			return c.JSON(index)
		}
		container, err := shop.Encrypt(payload)
		if err != nil {
			l.Error("shop index encryption failed", zap.Error(err))
			return c.JSON(index)
		}
		c.Set(fiber.HeaderContentType, "application/octet-stream")
		return c.Send(container)
	}

	return c.JSON(index)
}

// HandleDirectoryIndex serves the HTML directory listing.
func (h *Handler) HandleDirectoryIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(h.service.DirectoryHTML())
}
