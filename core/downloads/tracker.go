package downloads

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"switchshop/core/events"
)

// State describes one in-flight file transfer.
type State struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	TotalSize uint64 `json:"total_size"`
	BytesSent uint64 `json:"bytes_sent"`
	// Speed is bytes per second, recomputed once per tick.
	Speed uint64 `json:"speed"`
}

// Tracker keeps per-transfer byte counters and derives transfer
// speeds on a fixed tick.
type Tracker struct {
	mu     sync.Mutex
	active map[string]*State
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]*State)}
}

// Begin registers a new transfer and returns its session id.
func (t *Tracker) Begin(filename string, totalSize uint64) string {
	id := uuid.NewString()
	t.mu.Lock()
	t.active[id] = &State{ID: id, Filename: filename, TotalSize: totalSize}
	t.mu.Unlock()
	return id
}

// Add records n more bytes sent for the transfer.
func (t *Tracker) Add(id string, n uint64) {
	t.mu.Lock()
	if state, ok := t.active[id]; ok {
		state.BytesSent += n
	}
	t.mu.Unlock()
}

// End removes a finished or aborted transfer.
func (t *Tracker) End(id string) {
	t.mu.Lock()
	delete(t.active, id)
	t.mu.Unlock()
}

// Snapshot returns the active transfers ordered by id.
func (t *Tracker) Snapshot() []State {
	t.mu.Lock()
	out := make([]State, 0, len(t.active))
	for _, state := range t.active {
		out = append(out, *state)
	}
	t.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RunSpeedometer recomputes transfer speeds once per second and
// publishes a downloads event while any transfer is active. The
// speed is the plain byte delta since the previous tick. It never
// returns; run it on its own goroutine.
func (t *Tracker) RunSpeedometer(bus *events.Bus) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastBytes := make(map[string]uint64)
	for range ticker.C {
		t.mu.Lock()
		for id, state := range t.active {
			last := lastBytes[id]
			if state.BytesSent >= last {
				state.Speed = state.BytesSent - last
			}
			lastBytes[id] = state.BytesSent
		}
		for id := range lastBytes {
			if _, ok := t.active[id]; !ok {
				delete(lastBytes, id)
			}
		}
		activeCount := len(t.active)
		t.mu.Unlock()

		if activeCount > 0 {
			bus.Publish(events.DownloadProgress(t.Snapshot()))
		}
	}
}
