package reconcile

import (
	"io/fs"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"switchshop/core/catalog"
	"switchshop/core/events"
	"switchshop/core/metadata"
)

// scanBatchSize is how many built entries are accumulated before the
// batch is drained into the catalog under its lock.
const scanBatchSize = 50

// Engine drives the two procedures that keep the catalog in step with
// the filesystem: the bulk scan and the watch loop. Both run for the
// process lifetime on dedicated goroutines because they block on
// system calls.
type Engine struct {
	catalog  *catalog.Store
	metadata *metadata.Store
	bus      *events.Bus
	logger   *zap.Logger

	gamesDir string
	dataDir  string
}

// New creates an engine over the given stores and directories.
func New(cat *catalog.Store, meta *metadata.Store, bus *events.Bus, logger *zap.Logger, cfg catalog.Config) *Engine {
	return &Engine{
		catalog:  cat,
		metadata: meta,
		bus:      bus,
		logger:   logger,
		gamesDir: cfg.GamesDir,
		dataDir:  cfg.DataDir,
	}
}

// Start launches the initial bulk scan and the watch loop, each on
// its own goroutine, and returns immediately.
func (e *Engine) Start() {
	go e.Scan()
	go e.Watch()
}

// Scan walks the games directory once, building an entry for every
// qualifying file and draining them into the catalog in batches of
// scanBatchSize. Progress is reported with Scanning events carrying
// the running total, followed by a final ScanComplete.
//
// One metadata snapshot is held for the entire walk: every entry of a
// scan sees metadata as of scan start. The catalog lock is only taken
// per batch drain, never for the walk itself.
func (e *Engine) Scan() {
	e.logger.Info("starting catalog scan", zap.String("dir", e.gamesDir))
	start := time.Now()
	e.bus.Publish(events.Scanning(0))

	snap := e.metadata.Snapshot()
	defer snap.Release()

	batch := make([]catalog.Entry, 0, scanBatchSize)
	total := 0

	_ = filepath.WalkDir(e.gamesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		entry, ok := catalog.Build(path, e.gamesDir, e.dataDir, snap)
		if !ok {
			return nil
		}
		batch = append(batch, entry)
		total++
		if len(batch) >= scanBatchSize {
			e.catalog.ApplyBatch(batch)
			batch = batch[:0]
			e.bus.Publish(events.Scanning(total))
		}
		return nil
	})

	if len(batch) > 0 {
		e.catalog.ApplyBatch(batch)
	}

	e.logger.Info("catalog scan complete",
		zap.Int("games", total),
		zap.Duration("elapsed", time.Since(start)))
	e.bus.Publish(events.ScanComplete(total))
}

// Rescan rebuilds the catalog from scratch and swaps it in wholesale,
// dropping entries whose files have disappeared. Used after a manual
// metadata sync so every entry picks up the fresh datasets.
func (e *Engine) Rescan() {
	e.logger.Info("starting full rescan", zap.String("dir", e.gamesDir))

	snap := e.metadata.Snapshot()
	entries := make([]catalog.Entry, 0, e.catalog.Len())
	_ = filepath.WalkDir(e.gamesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry, ok := catalog.Build(path, e.gamesDir, e.dataDir, snap); ok {
			entries = append(entries, entry)
		}
		return nil
	})
	snap.Release()

	e.catalog.ReplaceAll(entries)
	e.logger.Info("rescan complete", zap.Int("games", len(entries)))
	e.bus.Publish(events.ScanComplete(len(entries)))
}
