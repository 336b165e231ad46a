// Package metadata maintains the third-party title databases used to
// enrich catalog entries.
//
// Two JSON documents live under <data>/titledb: the regional title
// database ("<REGION>.<language>.json", mapping title identifiers to
// names, icons, publishers and the like) and "versions.json" (mapping
// title identifiers to their version release history). Both are
// replaced in full on every load; there is no incremental merge.
//
// # Snapshots
//
// Lookups go through Snapshot, a read view that pins the loaded
// datasets until released. The reconcile engine holds one snapshot
// across an entire bulk scan so that every entry built during the
// scan sees the same metadata, at the cost of delaying a concurrent
// sync until the scan completes.
//
// # Sync
//
// Sync fetches fresh documents from the configured remote source
// (blawar/titledb by default) and writes them to disk. Remote
// failures are per-resource warnings; only local filesystem failures
// fail the operation. Concurrent manual and periodic syncs are
// collapsed by a singleflight guard.
//
// The title database is indexed by uppercased identifier while the
// version history keeps the upstream lowercase keys; lookups
// normalize accordingly.
package metadata
