// Package images maintains the on-disk image cache under
// <data>/images.
//
// The entry builder only reads the cache; this package fills it. A
// background fetcher reacts to completed scans, downloads icons for
// entries that resolved no image, and rebuilds those entries so the
// new cache file is picked up. Remote sources are community titledb
// icon mirrors; transient failures are retried with exponential
// backoff before the next source is tried.
package images
