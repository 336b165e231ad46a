package images

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cenk/backoff"
	"go.uber.org/zap"

	"switchshop/core/catalog"
	"switchshop/core/events"
	"switchshop/core/metadata"
)

// defaultSources are probed in order for each title identifier; {id}
// is replaced with the identifier.
var defaultSources = []string{
	"https://api.nlib.cc/nx/{id}/icon",
	"https://raw.githubusercontent.com/BigOnYa/titledb/main/icons/{id}.png",
	"https://raw.githubusercontent.com/CensoredTheInvisable/titledb/main/icons/{id}.png",
}

// Fetcher fills the on-disk image cache for catalog entries that
// carry a title identifier but resolved no image. After each
// successful download the entry is rebuilt so the cache hit is picked
// up, and an ImageUpdated event is published.
type Fetcher struct {
	catalog  *catalog.Store
	metadata *metadata.Store
	bus      *events.Bus
	logger   *zap.Logger
	client   *http.Client
	sources  []string

	gamesDir string
	dataDir  string
}

// NewFetcher creates a fetcher writing into cfg.DataDir/images.
func NewFetcher(cat *catalog.Store, meta *metadata.Store, bus *events.Bus, logger *zap.Logger, cfg catalog.Config) *Fetcher {
	return &Fetcher{
		catalog:  cat,
		metadata: meta,
		bus:      bus,
		logger:   logger,
		client:   &http.Client{Timeout: 30 * time.Second},
		sources:  defaultSources,
		gamesDir: cfg.GamesDir,
		dataDir:  cfg.DataDir,
	}
}

// Start subscribes to the event bus and begins filling missing
// images in the background after every completed scan. The
// subscription is established before Start returns, so a scan that
// completes immediately afterwards is not missed.
func (f *Fetcher) Start() {
	ch, cancel := f.bus.Subscribe()
	go f.run(ch, cancel)
}

func (f *Fetcher) run(ch <-chan events.Event, cancel func()) {
	defer cancel()
	for ev := range ch {
		if ev.Type == events.TypeScan && ev.Status == events.StatusComplete {
			f.FillMissing()
		}
	}
}

// FillMissing downloads a cached image for every entry that has a
// title identifier but no resolved image, rebuilding each entry that
// gains one.
func (f *Fetcher) FillMissing() {
	for _, entry := range f.catalog.Snapshot() {
		if entry.TitleID == "" || entry.ImageURL != "" {
			continue
		}
		if !f.download(entry.TitleID) {
			continue
		}

		snap := f.metadata.Snapshot()
		rebuilt, ok := catalog.Build(entry.Path, f.gamesDir, f.dataDir, snap)
		snap.Release()
		if !ok {
			continue
		}
		f.catalog.Upsert(rebuilt)
		f.bus.Publish(events.ImageUpdated(rebuilt))
	}
}

// download tries every source for the title identifier and, when the
// identifier looks like an update or DLC, for its base application
// identifier. The image is written to the cache under the original
// identifier so the builder's cache probe finds it.
func (f *Fetcher) download(titleID string) bool {
	ids := []string{titleID}
	if base := baseTitleID(titleID); base != "" {
		ids = append(ids, base)
	}

	for _, id := range ids {
		for _, source := range f.sources {
			url := strings.Replace(source, "{id}", id, 1)
			if f.fetchImage(url, titleID) {
				f.logger.Debug("cached image",
					zap.String("title_id", titleID), zap.String("url", url))
				return true
			}
		}
	}
	f.logger.Warn("no image found", zap.String("title_id", titleID))
	return false
}

// fetchImage downloads one candidate URL into the cache, retrying
// transient failures with exponential backoff. Not-found responses
// stop retrying immediately.
func (f *Fetcher) fetchImage(url, titleID string) bool {
	var body []byte
	var contentType string

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 10 * time.Second

	err := backoff.Retry(func() error {
		resp, err := f.client.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("status %s", resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = data
		contentType = resp.Header.Get("Content-Type")
		return nil
	}, policy)
	if err != nil {
		f.logger.Debug("image source failed", zap.String("url", url), zap.Error(err))
		return false
	}

	ext := "png"
	if strings.Contains(contentType, "jpeg") || strings.Contains(contentType, "jpg") {
		ext = "jpg"
	}

	dir := filepath.Join(f.dataDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		f.logger.Error("failed to create image cache directory", zap.Error(err))
		return false
	}
	dest := filepath.Join(dir, titleID+"."+ext)
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		f.logger.Error("failed to write cached image", zap.String("path", dest), zap.Error(err))
		return false
	}
	return true
}

// baseTitleID derives the base application identifier from an update
// or DLC identifier (ApplicationId = TitleId & 0xFFFFFFFFFFFFE000).
// It returns "" when the identifier already is the base one or does
// not parse as hex.
func baseTitleID(titleID string) string {
	id, err := strconv.ParseUint(titleID, 16, 64)
	if err != nil {
		return ""
	}
	base := fmt.Sprintf("%016X", id&0xFFFFFFFFFFFFE000)
	if base == strings.ToUpper(titleID) {
		return ""
	}
	return base
}
