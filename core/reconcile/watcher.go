package reconcile

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"switchshop/core/catalog"
)

// Watch consumes filesystem change notifications for the games
// directory and applies them to the catalog incrementally. It blocks
// until the watcher is torn down; run it on its own goroutine.
//
// Setup failure (the OS watch cannot be created or attached) is fatal
// to this loop only: it is logged and the catalog stays static until
// the next bulk scan.
//
// Notifications are processed strictly in arrival order by this
// single consumer. The kernel reports a rename as the old path
// vanishing followed by a create of the new path, so a tracked rename
// yields EntryRemoved(old) then EntryUpdated(new) in that order, with
// a transient window where neither is present.
func (e *Engine) Watch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		e.logger.Error("failed to create file watcher, catalog will not track live changes", zap.Error(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(e.gamesDir); err != nil {
		e.logger.Error("failed to watch games directory, catalog will not track live changes",
			zap.String("dir", e.gamesDir), zap.Error(err))
		return
	}
	e.watchSubdirs(watcher, e.gamesDir)
	e.logger.Info("file watcher started", zap.String("dir", e.gamesDir))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

// watchSubdirs attaches watches to every directory below root. The
// OS watch is per-directory, so recursion is emulated by walking the
// tree; directories that cannot be watched are skipped with a
// warning.
func (e *Engine) watchSubdirs(watcher *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() || path == root {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			e.logger.Warn("failed to watch subdirectory", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
}

func (e *Engine) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if event.Op.Has(fsnotify.Create) {
				e.adoptDirectory(watcher, event.Name)
			}
			return
		}
		e.rebuild(event.Name)

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		// Rename reports the old path vanishing; the paired create
		// for the new path re-inserts the entry.
		e.catalog.Remove(event.Name)
	}
}

// rebuild constructs a fresh entry for path under a newly acquired
// metadata snapshot and upserts it. Paths that fail classification
// are silently skipped.
func (e *Engine) rebuild(path string) {
	snap := e.metadata.Snapshot()
	entry, ok := catalog.Build(path, e.gamesDir, e.dataDir, snap)
	snap.Release()
	if !ok {
		return
	}
	e.catalog.Upsert(entry)
}

// adoptDirectory starts watching a directory that appeared after
// setup and indexes any files it already contains: a directory moved
// into the tree arrives as a single create notification for the
// directory itself.
func (e *Engine) adoptDirectory(watcher *fsnotify.Watcher, dir string) {
	if err := watcher.Add(dir); err != nil {
		e.logger.Warn("failed to watch new directory", zap.String("dir", dir), zap.Error(err))
	}
	e.watchSubdirs(watcher, dir)

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		e.rebuild(path)
		return nil
	})
}
