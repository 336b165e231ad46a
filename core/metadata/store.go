package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"switchshop/core/events"
)

// TitleRecord is one entry of the regional title database.
type TitleRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	IconURL     string   `json:"iconUrl,omitempty"`
	BannerURL   string   `json:"bannerUrl,omitempty"`
	Category    []string `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
}

// Store loads and serves the two on-disk titledb datasets: title
// records (indexed by uppercased title identifier) and the version
// history (keyed lowercase, a quirk of the upstream data that is
// preserved as-is).
//
// Reads go through a Snapshot, which holds the store's read lock
// until released. The bulk scan keeps one snapshot for its whole
// walk, so every entry built during a scan sees metadata as of scan
// start; a concurrent sync blocks on the write lock until the scan
// finishes.
type Store struct {
	cfg     Config
	dataDir string
	logger  *zap.Logger
	client  *http.Client

	mu       sync.RWMutex
	titles   map[string]TitleRecord
	versions map[string]map[string]string

	group singleflight.Group
}

// NewStore creates a store for the titledb documents under
// dataDir/titledb.
func NewStore(cfg Config, dataDir string, logger *zap.Logger) *Store {
	return &Store{
		cfg:      cfg,
		dataDir:  dataDir,
		logger:   logger,
		client:   &http.Client{},
		titles:   make(map[string]TitleRecord),
		versions: make(map[string]map[string]string),
	}
}

func (s *Store) titledbDir() string {
	return filepath.Join(s.dataDir, "titledb")
}

func (s *Store) titlesFilename() string {
	return fmt.Sprintf("%s.%s.json", s.cfg.Region, s.cfg.Language)
}

// Load reads both titledb documents from disk. Missing, empty, or
// malformed files leave the corresponding dataset empty rather than
// erroring.
func (s *Store) Load() {
	titles := make(map[string]TitleRecord)
	titlesPath := filepath.Join(s.titledbDir(), s.titlesFilename())
	if raw, err := os.ReadFile(titlesPath); err == nil && len(raw) > 0 {
		s.logger.Info("loading title database", zap.String("path", titlesPath))
		var doc map[string]TitleRecord
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.logger.Warn("malformed title database", zap.String("path", titlesPath), zap.Error(err))
		} else {
			for id, rec := range doc {
				rec.ID = id
				titles[strings.ToUpper(id)] = rec
			}
		}
	}

	versions := make(map[string]map[string]string)
	versionsPath := filepath.Join(s.titledbDir(), "versions.json")
	if raw, err := os.ReadFile(versionsPath); err == nil && len(raw) > 0 {
		s.logger.Info("loading version history", zap.String("path", versionsPath))
		var doc map[string]map[string]string
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.logger.Warn("malformed version history", zap.String("path", versionsPath), zap.Error(err))
		} else {
			versions = doc
		}
	}

	s.mu.Lock()
	s.titles = titles
	s.versions = versions
	s.mu.Unlock()
}

// Sync refreshes the on-disk titledb documents from the remote source
// and reloads them. The two fetches are independent: a network error
// or non-success status on one is logged and does not abort the other
// nor fail the sync. Only local filesystem failures (directory or
// file creation, writes) are returned as errors. Load always runs
// afterwards to pick up whatever made it to disk.
//
// Concurrent calls (periodic and manual) are collapsed into a single
// in-flight sync.
func (s *Store) Sync(ctx context.Context) error {
	_, err, _ := s.group.Do("sync", func() (any, error) {
		return nil, s.syncOnce(ctx)
	})
	return err
}

func (s *Store) syncOnce(ctx context.Context) error {
	defer s.Load()

	dir := s.titledbDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create titledb directory: %w", err)
	}

	s.logger.Info("syncing version history")
	versionsURL := s.cfg.BaseURL + "/versions.json"
	if err := s.fetchToFile(ctx, versionsURL, filepath.Join(dir, "versions.json")); err != nil {
		return err
	}

	// Region-specific document first, generic titles.json as fallback.
	// Either one is saved under the region-specific filename.
	dest := filepath.Join(dir, s.titlesFilename())
	urls := []string{
		s.cfg.BaseURL + "/" + s.titlesFilename(),
		s.cfg.BaseURL + "/titles.json",
	}
	for _, url := range urls {
		s.logger.Info("syncing title database", zap.String("url", url))
		fetched, err := s.fetchOne(ctx, url, dest)
		if err != nil {
			return err
		}
		if fetched {
			break
		}
	}
	return nil
}

// fetchToFile downloads url to dest. Remote failures are logged as
// warnings and swallowed; only local I/O failures are returned.
func (s *Store) fetchToFile(ctx context.Context, url, dest string) error {
	_, err := s.fetchOne(ctx, url, dest)
	return err
}

// fetchOne reports whether the remote resource was actually written.
func (s *Store) fetchOne(ctx context.Context, url, dest string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.logger.Warn("titledb sync request failed", zap.String("url", url), zap.Error(err))
		return false, nil
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("titledb sync failed", zap.String("url", url), zap.Error(err))
		return false, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("titledb sync failed", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return false, nil
	}

	file, err := os.Create(dest)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", dest, err)
	}
	defer file.Close()
	if _, err := io.Copy(file, resp.Body); err != nil {
		return false, fmt.Errorf("write %s: %w", dest, err)
	}
	return true, nil
}

// RunPeriodic syncs immediately and then on every interval tick,
// publishing a SyncComplete event after each successful cycle. It
// never returns; run it on its own goroutine.
func (s *Store) RunPeriodic(bus *events.Bus) {
	interval := time.Duration(s.cfg.SyncIntervalHours) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.Sync(context.Background()); err != nil {
			s.logger.Error("metadata sync failed", zap.Error(err))
		} else {
			s.logger.Info("metadata sync complete")
			bus.Publish(events.SyncComplete())
		}
		<-ticker.C
	}
}

// Snapshot acquires a read view of the loaded datasets. The view
// holds the store's read lock until Release is called; a sync cannot
// swap datasets while any snapshot is held.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	return &Snapshot{store: s}
}

// Snapshot is a consistent read view of the metadata store.
type Snapshot struct {
	store *Store
	once  sync.Once
}

// Release drops the view's read lock. Safe to call more than once.
func (sn *Snapshot) Release() {
	sn.once.Do(sn.store.mu.RUnlock)
}

// Title looks up the record for the given title identifier,
// regardless of the identifier's casing.
func (sn *Snapshot) Title(titleID string) (TitleRecord, bool) {
	rec, ok := sn.store.titles[strings.ToUpper(titleID)]
	return rec, ok
}

// LatestVersion returns the numerically highest version-number key
// recorded for the title, restringified. Non-numeric keys are
// ignored; ok is false when none parse or the title is unknown.
func (sn *Snapshot) LatestVersion(titleID string) (string, bool) {
	history, ok := sn.store.versions[strings.ToLower(titleID)]
	if !ok {
		return "", false
	}
	var best uint64
	found := false
	for key := range history {
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		if !found || n > best {
			best = n
			found = true
		}
	}
	if !found {
		return "", false
	}
	return strconv.FormatUint(best, 10), true
}
