package library

import (
	"context"
	"net"

	"go.uber.org/zap"

	"switchshop/core/catalog"
	"switchshop/core/downloads"
	"switchshop/core/events"
	"switchshop/core/metadata"
	"switchshop/core/reconcile"
	"switchshop/core/server"
)

// Service exposes the catalog and its supporting stores to the
// library HTTP handlers.
type Service struct {
	catalog   *catalog.Store
	metadata  *metadata.Store
	engine    *reconcile.Engine
	downloads *downloads.Tracker
	bus       *events.Bus
	logger    *zap.Logger

	gamesDir  string
	serverCfg server.Config
}

// NewService creates a new library service.
func NewService(cat *catalog.Store, meta *metadata.Store, engine *reconcile.Engine,
	tracker *downloads.Tracker, bus *events.Bus, logger *zap.Logger,
	gamesDir string, serverCfg server.Config) *Service {
	return &Service{
		catalog:   cat,
		metadata:  meta,
		engine:    engine,
		downloads: tracker,
		bus:       bus,
		logger:    logger,
		gamesDir:  gamesDir,
		serverCfg: serverCfg,
	}
}

// Games returns the current catalog snapshot.
func (s *Service) Games() []catalog.Entry {
	return s.catalog.Snapshot()
}

// Info describes the server for the frontend's connection helper.
type Info struct {
	IPs           []string `json:"ips"`
	Port          string   `json:"port"`
	WebDAVEnabled bool     `json:"webdav_enabled"`
	WebDAVAuth    bool     `json:"webdav_auth"`
}

// ServerInfo reports the reachable addresses and WebDAV settings.
func (s *Service) ServerInfo() Info {
	return Info{
		IPs:           LocalIPs(),
		Port:          s.serverCfg.Port,
		WebDAVEnabled: s.serverCfg.WebDAVEnabled,
		WebDAVAuth:    s.serverCfg.WebDAVAuthRequired(),
	}
}

// TriggerSync starts a metadata sync followed by a full catalog
// rescan in the background and returns immediately. Concurrent
// triggers collapse into the sync already in flight.
func (s *Service) TriggerSync() {
	go func() {
		if err := s.metadata.Sync(context.Background()); err != nil {
			s.logger.Error("manual metadata sync failed", zap.Error(err))
			return
		}
		s.logger.Info("metadata synced, starting full rescan")
		s.engine.Rescan()
		s.bus.Publish(events.SyncComplete())
	}()
}

// LocalIPs returns the host's non-loopback IPv4 addresses.
func LocalIPs() []string {
	ips := []string{}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ips
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		ips = append(ips, ipNet.IP.String())
	}
	return ips
}
