package reconcile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchshop/core/catalog"
	"switchshop/core/events"
)

const (
	watchTimeout = 5 * time.Second
	watchTick    = 20 * time.Millisecond
)

func (f *fixture) hasPath(path string) func() bool {
	return func() bool {
		for _, e := range f.catalog.Snapshot() {
			if e.Path == path {
				return true
			}
		}
		return false
	}
}

func (f *fixture) lacksPath(path string) func() bool {
	return func() bool {
		return !f.hasPath(path)()
	}
}

func startWatch(t *testing.T, f *fixture) {
	t.Helper()
	go f.engine.Watch()
	// Give the watcher time to attach before mutating the tree.
	time.Sleep(200 * time.Millisecond)
}

func TestWatch_TracksCreate(t *testing.T) {
	f := newFixture(t)
	startWatch(t, f)

	path := f.addGame(t, "New Game [0100ABCDEF123456][v0].nsp")

	require.Eventually(t, f.hasPath(path), watchTimeout, watchTick)

	snapshot := f.catalog.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "New Game", snapshot[0].Name)
}

func TestWatch_IgnoresUnrecognizedFiles(t *testing.T) {
	f := newFixture(t)
	startWatch(t, f)

	f.addGame(t, "notes.txt")
	path := f.addGame(t, "Game [0100ABCDEF123456][v0].nsp")

	require.Eventually(t, f.hasPath(path), watchTimeout, watchTick)
	assert.Equal(t, 1, f.catalog.Len())
}

func TestWatch_TracksRemove(t *testing.T) {
	f := newFixture(t)
	path := f.addGame(t, "Game [0100ABCDEF123456][v0].nsp")
	f.engine.Scan()
	require.Equal(t, 1, f.catalog.Len())

	startWatch(t, f)
	require.NoError(t, os.Remove(path))

	require.Eventually(t, f.lacksPath(path), watchTimeout, watchTick)
	assert.Zero(t, f.catalog.Len())
}

func TestWatch_TracksRename(t *testing.T) {
	f := newFixture(t)
	oldPath := f.addGame(t, "Old Name [0100ABCDEF123456][v0].nsp")
	f.engine.Scan()
	require.Equal(t, 1, f.catalog.Len())

	startWatch(t, f)
	newPath := filepath.Join(f.gamesDir, "New Name [0100ABCDEF123456][v0].nsp")
	require.NoError(t, os.Rename(oldPath, newPath))

	require.Eventually(t, f.hasPath(newPath), watchTimeout, watchTick)
	require.Eventually(t, f.lacksPath(oldPath), watchTimeout, watchTick)
	assert.Equal(t, 1, f.catalog.Len())
}

func nextEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for event")
		return events.Event{}
	}
}

func TestWatch_RenameEmitsRemoveThenUpdate(t *testing.T) {
	f := newFixture(t)
	oldPath := f.addGame(t, "Old Name [0100ABCDEF123456][v0].nsp")
	f.engine.Scan()
	require.Equal(t, 1, f.catalog.Len())

	startWatch(t, f)

	ch, cancel := f.bus.Subscribe()
	defer cancel()

	newPath := filepath.Join(f.gamesDir, "New Name [0100ABCDEF123456][v0].nsp")
	require.NoError(t, os.Rename(oldPath, newPath))

	removed := nextEvent(t, ch)
	assert.Equal(t, events.TypeScan, removed.Type)
	assert.Equal(t, events.StatusRemove, removed.Status)
	assert.Equal(t, oldPath, removed.Path)

	updated := nextEvent(t, ch)
	assert.Equal(t, events.TypeScan, updated.Type)
	assert.Equal(t, events.StatusUpdate, updated.Status)
	entry, ok := updated.Game.(catalog.Entry)
	require.True(t, ok)
	assert.Equal(t, newPath, entry.Path)

	// Exactly one event per side of the rename.
	assert.Empty(t, ch)
}

func TestWatch_AdoptsNewDirectories(t *testing.T) {
	f := newFixture(t)
	startWatch(t, f)

	sub := filepath.Join(f.gamesDir, "incoming")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(200 * time.Millisecond)

	path := filepath.Join(sub, "Game [0100ABCDEF123456][v0].nsp")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	require.Eventually(t, f.hasPath(path), watchTimeout, watchTick)
}
