package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchshop/core/catalog"
	"switchshop/core/events"
)

func TestStore_UpsertReplacesByPath(t *testing.T) {
	store := catalog.NewStore(events.NewBus())

	store.Upsert(catalog.Entry{Path: "/games/a.nsp", Name: "First"})
	store.Upsert(catalog.Entry{Path: "/games/b.nsp", Name: "Other"})
	store.Upsert(catalog.Entry{Path: "/games/a.nsp", Name: "Second"})

	assert.Equal(t, 2, store.Len())

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "Second", snapshot[0].Name)
	assert.Equal(t, "Other", snapshot[1].Name)
}

func TestStore_Remove(t *testing.T) {
	store := catalog.NewStore(events.NewBus())
	store.Upsert(catalog.Entry{Path: "/games/a.nsp"})

	assert.True(t, store.Remove("/games/a.nsp"))
	assert.False(t, store.Remove("/games/a.nsp"))
	assert.Zero(t, store.Len())
}

func TestStore_ApplyBatch(t *testing.T) {
	store := catalog.NewStore(events.NewBus())
	store.Upsert(catalog.Entry{Path: "/games/a.nsp", Name: "Old"})

	store.ApplyBatch([]catalog.Entry{
		{Path: "/games/a.nsp", Name: "New"},
		{Path: "/games/b.nsp", Name: "B"},
		{Path: "/games/b.nsp", Name: "B2"},
	})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "New", snapshot[0].Name)
	assert.Equal(t, "B2", snapshot[1].Name)
}

func TestStore_ReplaceAll(t *testing.T) {
	store := catalog.NewStore(events.NewBus())
	store.Upsert(catalog.Entry{Path: "/games/stale.nsp"})

	store.ReplaceAll([]catalog.Entry{{Path: "/games/fresh.nsp", Name: "Fresh"}})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "/games/fresh.nsp", snapshot[0].Path)
}

func TestStore_PublishesChangeEvents(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	store := catalog.NewStore(bus)
	store.Upsert(catalog.Entry{Path: "/games/a.nsp", Name: "A"})
	store.Remove("/games/a.nsp")
	store.Remove("/games/unknown.nsp")
	store.ApplyBatch([]catalog.Entry{{Path: "/games/b.nsp"}})

	updated := <-ch
	assert.Equal(t, events.TypeScan, updated.Type)
	assert.Equal(t, events.StatusUpdate, updated.Status)

	removed := <-ch
	assert.Equal(t, events.StatusRemove, removed.Status)
	assert.Equal(t, "/games/a.nsp", removed.Path)

	// The unknown remove and the batch publish nothing.
	assert.Empty(t, ch)
}
