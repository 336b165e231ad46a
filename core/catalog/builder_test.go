package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"switchshop/core/catalog"
	"switchshop/core/metadata"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuild_BasicEntry(t *testing.T) {
	gamesDir := t.TempDir()
	dataDir := t.TempDir()

	path := filepath.Join(gamesDir, "Super Game [0100ABCDEF123456][v0].nsp")
	writeFile(t, path, "dummy")

	entry, ok := catalog.Build(path, gamesDir, dataDir, nil)
	require.True(t, ok)

	assert.Equal(t, "Super Game", entry.Name)
	assert.Equal(t, path, entry.Path)
	assert.Equal(t, "Super Game [0100ABCDEF123456][v0].nsp", entry.RelativePath)
	assert.Equal(t, uint64(5), entry.Size)
	assert.Equal(t, "nsp", entry.Format)
	assert.Equal(t, "0100ABCDEF123456", entry.TitleID)
	assert.Equal(t, "v0", entry.Version)
	assert.Equal(t, catalog.CategoryBase, entry.Category)
	assert.Empty(t, entry.ImageURL)
}

func TestBuild_Rejections(t *testing.T) {
	gamesDir := t.TempDir()
	dataDir := t.TempDir()

	t.Run("UnrecognizedExtension", func(t *testing.T) {
		path := filepath.Join(gamesDir, "notes.txt")
		writeFile(t, path, "hello")

		_, ok := catalog.Build(path, gamesDir, dataDir, nil)
		assert.False(t, ok)
	})

	t.Run("Directory", func(t *testing.T) {
		path := filepath.Join(gamesDir, "fake.nsp")
		require.NoError(t, os.MkdirAll(path, 0o755))

		_, ok := catalog.Build(path, gamesDir, dataDir, nil)
		assert.False(t, ok)
	})

	t.Run("Missing", func(t *testing.T) {
		_, ok := catalog.Build(filepath.Join(gamesDir, "gone.nsp"), gamesDir, dataDir, nil)
		assert.False(t, ok)
	})
}

func TestBuild_NestedRelativePath(t *testing.T) {
	gamesDir := t.TempDir()
	dataDir := t.TempDir()

	path := filepath.Join(gamesDir, "switch", "Game [0100ABCDEF123456].xci")
	writeFile(t, path, "x")

	entry, ok := catalog.Build(path, gamesDir, dataDir, nil)
	require.True(t, ok)
	assert.Equal(t, "switch/Game [0100ABCDEF123456].xci", entry.RelativePath)
	assert.Equal(t, "xci", entry.Format)
}

func TestBuild_ImageResolution(t *testing.T) {
	t.Run("SiblingImage", func(t *testing.T) {
		gamesDir := t.TempDir()
		dataDir := t.TempDir()

		path := filepath.Join(gamesDir, "Game [0100ABCDEF123456].nsp")
		writeFile(t, path, "x")
		writeFile(t, filepath.Join(gamesDir, "Game [0100ABCDEF123456].jpg"), "img")

		entry, ok := catalog.Build(path, gamesDir, dataDir, nil)
		require.True(t, ok)
		assert.Equal(t, "Game [0100ABCDEF123456].jpg", entry.ImageURL)
	})

	t.Run("CacheBeatsSibling", func(t *testing.T) {
		gamesDir := t.TempDir()
		dataDir := t.TempDir()

		path := filepath.Join(gamesDir, "Game [0100ABCDEF123456].nsp")
		writeFile(t, path, "x")
		writeFile(t, filepath.Join(gamesDir, "Game [0100ABCDEF123456].jpg"), "img")
		writeFile(t, filepath.Join(dataDir, "images", "0100ABCDEF123456.png"), "img")

		entry, ok := catalog.Build(path, gamesDir, dataDir, nil)
		require.True(t, ok)
		assert.Equal(t, "/images/0100ABCDEF123456.png", entry.ImageURL)
	})

	t.Run("NoTitleIDSkipsCache", func(t *testing.T) {
		gamesDir := t.TempDir()
		dataDir := t.TempDir()

		path := filepath.Join(gamesDir, "Plain.nsp")
		writeFile(t, path, "x")

		entry, ok := catalog.Build(path, gamesDir, dataDir, nil)
		require.True(t, ok)
		assert.Empty(t, entry.ImageURL)
	})
}

func TestBuild_MetadataOverlay(t *testing.T) {
	gamesDir := t.TempDir()
	dataDir := t.TempDir()

	titledb := filepath.Join(dataDir, "titledb")
	writeFile(t, filepath.Join(titledb, "US.en.json"),
		`{"0100abcdef123456":{"name":"Proper Title","publisher":"Acme Corp"}}`)
	writeFile(t, filepath.Join(titledb, "versions.json"),
		`{"0100abcdef123456":{"0":"2024-01-01","65536":"2024-02-01"}}`)

	store := metadata.NewStore(metadata.Config{Region: "US", Language: "en"}, dataDir, zap.NewNop())
	store.Load()

	path := filepath.Join(gamesDir, "Game [0100ABCDEF123456][v0].nsp")
	writeFile(t, path, "x")

	snap := store.Snapshot()
	defer snap.Release()

	entry, ok := catalog.Build(path, gamesDir, dataDir, snap)
	require.True(t, ok)

	assert.Equal(t, "Proper Title", entry.Name)
	assert.Equal(t, "Acme Corp", entry.Publisher)
	assert.Equal(t, "65536", entry.LatestVersion)
	assert.Equal(t, "v0", entry.Version)
}
