package shop

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"switchshop/core/catalog"
	"switchshop/core/shop"
)

// Service builds shop indices from the catalog.
type Service struct {
	catalog *catalog.Store
	logger  *zap.Logger
	cfg     shop.Config
	// hostURL is the fallback base URL when a request carries no
	// Host header.
	hostURL string
}

// NewService creates a new shop service.
func NewService(cat *catalog.Store, logger *zap.Logger, cfg shop.Config, hostURL string) *Service {
	return &Service{catalog: cat, logger: logger, cfg: cfg, hostURL: hostURL}
}

// Index renders the current catalog as a shop index rooted at host.
func (s *Service) Index(host string) shop.Index {
	return shop.BuildIndex(s.catalog.Snapshot(), host)
}

// EncryptEnabled reports whether indices should be served in the
// encrypted container.
func (s *Service) EncryptEnabled() bool {
	return s.cfg.Encrypt
}

// DirectoryHTML renders the minimal HTML directory listing consumed
// by DBI-style installers. Links are relative to the listing path.
func (s *Service) DirectoryHTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>DBI Index</title></head><body><h1>Index of /</h1><ul>")
	for _, entry := range s.catalog.Snapshot() {
		fmt.Fprintf(&b, "<li><a href=%q>%s</a></li>", shop.EncodePath(entry.RelativePath), entry.Name)
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}
