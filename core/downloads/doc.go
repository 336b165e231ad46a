// Package downloads provides lightweight telemetry for file
// transfers served by the library feature: per-session byte counters
// and a once-per-second speed derivation published on the event bus.
package downloads
