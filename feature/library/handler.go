package library

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"switchshop/core/logger"
)

// Handler handles HTTP requests for the game library.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api")
	api.Get("/games", h.HandleListGames)
	api.Get("/info", h.HandleServerInfo)
	api.Get("/sync", h.HandleTriggerSync)

	app.Get("/events", h.HandleEvents)
	app.Get("/files/*", h.HandleDownload)
}

// HandleListGames returns the full catalog as JSON.
func (h *Handler) HandleListGames(c *fiber.Ctx) error {
	return c.JSON(h.service.Games())
}

// HandleServerInfo returns connection information for the frontend.
func (h *Handler) HandleServerInfo(c *fiber.Ctx) error {
	return c.JSON(h.service.ServerInfo())
}

// HandleTriggerSync starts a manual metadata sync plus rescan and
// responds immediately.
func (h *Handler) HandleTriggerSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("manual metadata sync requested")
	h.service.TriggerSync()
	return c.JSON(fiber.Map{"status": "started"})
}

// HandleEvents streams catalog change events over Server-Sent Events.
// The subscription is best-effort: a client that cannot keep up
// misses events rather than slowing the catalog down.
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	ch, cancel := h.service.bus.Subscribe()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		keepalive := time.NewTicker(15 * time.Second)
		defer keepalive.Stop()
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

// HandleDownload streams a game file, tracking transferred bytes for
// the download telemetry.
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	rel, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Bad path")
	}

	path := filepath.Join(h.service.gamesDir, filepath.FromSlash(rel))
	root := filepath.Clean(h.service.gamesDir)
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	file, err := os.Open(path)
	if err != nil {
		l.Error("file download failed", zap.String("path", path), zap.Error(err))
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}
	info, err := file.Stat()
	if err != nil || info.IsDir() {
		file.Close()
		return c.Status(fiber.StatusNotFound).SendString("File not found")
	}

	filename := filepath.Base(path)
	id := h.service.downloads.Begin(filename, uint64(info.Size()))
	l.Info("starting download", zap.String("file", filename), zap.String("id", id))

	contentType := contentTypeFor(filename)
	c.Set(fiber.HeaderContentType, contentType)
	if contentType == "application/octet-stream" {
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	}

	reader := &countingReader{
		file:    file,
		tracker: h.service.downloads,
		id:      id,
	}
	return c.SendStream(reader, int(info.Size()))
}

// countingReader reports bytes read to the download tracker and ends
// the session when the stream is closed.
type countingReader struct {
	file    *os.File
	tracker interface {
		Add(id string, n uint64)
		End(id string)
	}
	id string
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.file.Read(p)
	if n > 0 {
		r.tracker.Add(r.id, uint64(n))
	}
	return n, err
}

func (r *countingReader) Close() error {
	r.tracker.End(r.id)
	return r.file.Close()
}

var _ io.ReadCloser = (*countingReader)(nil)

func contentTypeFor(filename string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
