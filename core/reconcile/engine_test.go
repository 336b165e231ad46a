package reconcile_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"switchshop/core/catalog"
	"switchshop/core/events"
	"switchshop/core/metadata"
	"switchshop/core/reconcile"
)

type fixture struct {
	gamesDir string
	dataDir  string
	bus      *events.Bus
	catalog  *catalog.Store
	engine   *reconcile.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gamesDir := t.TempDir()
	dataDir := t.TempDir()

	bus := events.NewBus()
	cat := catalog.NewStore(bus)
	meta := metadata.NewStore(metadata.Config{Region: "US", Language: "en"}, dataDir, zap.NewNop())
	meta.Load()

	cfg := catalog.Config{GamesDir: gamesDir, DataDir: dataDir}
	return &fixture{
		gamesDir: gamesDir,
		dataDir:  dataDir,
		bus:      bus,
		catalog:  cat,
		engine:   reconcile.New(cat, meta, bus, zap.NewNop(), cfg),
	}
}

func (f *fixture) addGame(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.gamesDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	return path
}

func TestEngine_Scan(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 120; i++ {
		f.addGame(t, fmt.Sprintf("Game %03d [0100%012X][v0].nsp", i, i))
	}
	f.addGame(t, "notes.txt")
	f.addGame(t, filepath.Join("nested", "Deep Game [0100ABCDEF123456][v0].nsp"))

	ch, cancel := f.bus.Subscribe()
	defer cancel()

	f.engine.Scan()

	assert.Equal(t, 121, f.catalog.Len())

	// Progress events: initial zero, one per drained batch of 50, and
	// the final completion with the full count.
	var counts []int
	var final events.Event
	for len(ch) > 0 {
		ev := <-ch
		if ev.Status == events.StatusScanning {
			require.NotNil(t, ev.Count)
			counts = append(counts, *ev.Count)
		}
		final = ev
	}
	assert.Equal(t, []int{0, 50, 100}, counts)
	assert.Equal(t, events.StatusComplete, final.Status)
	require.NotNil(t, final.Count)
	assert.Equal(t, 121, *final.Count)
}

func TestEngine_ScanIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addGame(t, "Game [0100ABCDEF123456][v0].nsp")

	f.engine.Scan()
	f.engine.Scan()

	assert.Equal(t, 1, f.catalog.Len())
}

func TestEngine_RescanDropsVanishedFiles(t *testing.T) {
	f := newFixture(t)
	keep := f.addGame(t, "Keep [0100ABCDEF123456][v0].nsp")
	gone := f.addGame(t, "Gone [0100ABCDEF123457][v0].nsp")

	f.engine.Scan()
	require.Equal(t, 2, f.catalog.Len())

	require.NoError(t, os.Remove(gone))
	f.engine.Rescan()

	snapshot := f.catalog.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, keep, snapshot[0].Path)
}
