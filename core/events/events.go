package events

// Type values carried by catalog change events.
const (
	TypeScan      = "scan"
	TypeSync      = "sync"
	TypeImage     = "image"
	TypeDownloads = "downloads"
)

// Status values carried by catalog change events.
const (
	StatusScanning = "scanning"
	StatusComplete = "complete"
	StatusUpdate   = "update"
	StatusRemove   = "remove"
)

// Event is a single catalog change notification. It serializes to the
// wire schema consumed by the live-update stream, e.g.
// {"type":"scan","status":"update","game":{...}}.
//
// Events are transient: they are never persisted, and delivery through
// the Bus is best-effort.
type Event struct {
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
	Count  *int   `json:"count,omitempty"`
	Game   any    `json:"game,omitempty"`
	Path   string `json:"path,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// Scanning reports bulk scan progress with the running total of
// discovered games.
func Scanning(count int) Event {
	return Event{Type: TypeScan, Status: StatusScanning, Count: &count}
}

// ScanComplete reports the end of a bulk scan with the final count.
func ScanComplete(count int) Event {
	return Event{Type: TypeScan, Status: StatusComplete, Count: &count}
}

// EntryUpdated reports that a catalog entry was inserted or replaced.
func EntryUpdated(game any) Event {
	return Event{Type: TypeScan, Status: StatusUpdate, Game: game}
}

// EntryRemoved reports that the entry at the given path was removed.
func EntryRemoved(path string) Event {
	return Event{Type: TypeScan, Status: StatusRemove, Path: path}
}

// SyncComplete reports a finished metadata sync.
func SyncComplete() Event {
	return Event{Type: TypeSync, Status: StatusComplete}
}

// ImageUpdated reports that a cached image was fetched for an entry
// and its catalog record rebuilt.
func ImageUpdated(game any) Event {
	return Event{Type: TypeImage, Status: StatusUpdate, Game: game}
}

// DownloadProgress carries a snapshot of the active download sessions.
func DownloadProgress(data any) Event {
	return Event{Type: TypeDownloads, Data: data}
}
