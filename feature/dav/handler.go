package dav

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
	"golang.org/x/net/webdav"

	"switchshop/core/server"
)

// Handler serves the games directory over WebDAV with optional basic
// auth. The DAV implementation itself comes from golang.org/x/net;
// this handler only supplies it a root directory and the
// authorization decision.
type Handler struct {
	dav    *webdav.Handler
	cfg    server.Config
	logger *zap.Logger
}

// NewHandler creates a WebDAV handler rooted at gamesDir.
func NewHandler(gamesDir string, cfg server.Config, logger *zap.Logger) *Handler {
	return &Handler{
		dav: &webdav.Handler{
			Prefix:     "/dav",
			FileSystem: webdav.Dir(gamesDir),
			LockSystem: webdav.NewMemLS(),
		},
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterRoutes registers the /dav routes for all methods.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	wrapped := adaptor.HTTPHandlerFunc(h.serveHTTP)
	app.All("/dav", wrapped)
	app.All("/dav/*", wrapped)
}

func (h *Handler) serveHTTP(w http.ResponseWriter, r *http.Request) {
	// Windows explorer probes for these before speaking DAV.
	w.Header().Set("DAV", "1, 2")
	w.Header().Set("MS-Author-Via", "DAV")

	if h.cfg.WebDAVAuthRequired() && !h.authorized(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="Switchshop WebDAV"`)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	h.logger.Debug("webdav request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	h.dav.ServeHTTP(w, r)
}

// authorized checks the request's basic auth credentials against the
// configured pair.
func (h *Handler) authorized(r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	return ok && user == h.cfg.WebDAVUsername && pass == h.cfg.WebDAVPassword
}
