// Package reconcile keeps the in-memory game catalog consistent with
// the storage directory.
//
// Two long-running procedures share the catalog store:
//
// 1. Bulk scan: one full recursive walk of the games directory at
// startup (and on demand after a manual metadata sync). Entries are
// built against a single metadata snapshot held for the whole walk
// and drained into the catalog in fixed-size batches, taking the
// catalog lock only per drain. Progress and completion are published
// on the event bus.
//
// 2. Watch loop: a dedicated consumer of OS filesystem notifications
// (recursive via per-directory watches) that rebuilds, inserts, or
// removes individual entries as files change, each under a freshly
// acquired metadata snapshot.
//
// # Consistency
//
// No ordering is guaranteed between the bulk scan and concurrently
// arriving watch events for the same path: the catalog resolves such
// races last-write-wins. The result is eventual consistency: after
// the scan completes and pending watch events drain, the catalog
// holds exactly one entry per qualifying file on disk.
//
// Both procedures perform blocking system calls (tree walk, watch
// receive) and therefore run on dedicated goroutines for the process
// lifetime; neither accepts cancellation.
package reconcile
