// Package catalog holds the game catalog data model and its three
// building blocks: the filename classifier, the entry builder, and
// the shared catalog store.
//
// # Classifier
//
// Classify is a pure function turning a filename like
// "Super Game [0100ABCDEF123456][v0].nsp" into a display name, an
// optional title identifier, an optional version tag, and a category
// (Base, Update, DLC).
//
// # Builder
//
// Build combines a filesystem path, the classifier, and a metadata
// snapshot into one Entry, including image-location resolution against
// the cache directory and sibling files. Paths that are not regular
// files with a recognized container extension (nsp, nsz, xci, xcz)
// are rejected.
//
// # Store
//
// Store is the single shared collection of entries, keyed by absolute
// path, mutated by the reconcile engine and read by the HTTP features.
// Concurrent writers resolve races last-write-wins; the store is
// eventually consistent, not linearizable, with respect to an ongoing
// bulk scan.
package catalog
