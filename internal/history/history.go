// Package history keeps the replayable sequence of snapshots of a hand.
package history

import (
	"sync"

	"github.com/wagiedev/bisca-engine-go/internal/snapshot"
)

// History is an append-only buffer of snapshots with a replay cursor.
//
// Navigation never talks to the engine; it only moves the cursor over
// snapshots already recorded. History is safe for concurrent use.
type History struct {
	mu        sync.RWMutex
	snapshots []snapshot.Snapshot
	cursor    int
}

// New creates an empty history.
func New() *History {
	return &History{snapshots: make([]snapshot.Snapshot, 0, 64)}
}

// Append records a snapshot. With reset the buffer is replaced by the single
// snapshot (new hand); otherwise the snapshot is pushed and the cursor moves
// to it.
func (h *History) Append(snap snapshot.Snapshot, reset bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if reset {
		h.snapshots = append(h.snapshots[:0:0], snap)
		h.cursor = 0

		return
	}

	h.snapshots = append(h.snapshots, snap)
	h.cursor = len(h.snapshots) - 1
}

// Rewind moves the cursor one step back, clamped at the first snapshot.
func (h *History) Rewind() (snapshot.Snapshot, bool) {
	return h.step(-1)
}

// Forward moves the cursor one step ahead, clamped at the last snapshot.
func (h *History) Forward() (snapshot.Snapshot, bool) {
	return h.step(1)
}

func (h *History) step(delta int) (snapshot.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.snapshots) == 0 {
		return snapshot.Snapshot{}, false
	}

	h.cursor = min(max(h.cursor+delta, 0), len(h.snapshots)-1)

	return h.snapshots[h.cursor], true
}

// Current returns the snapshot under the cursor.
func (h *History) Current() (snapshot.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.snapshots) == 0 {
		return snapshot.Snapshot{}, false
	}

	return h.snapshots[h.cursor], true
}

// Latest returns the most recently appended snapshot, regardless of the cursor.
func (h *History) Latest() (snapshot.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.snapshots) == 0 {
		return snapshot.Snapshot{}, false
	}

	return h.snapshots[len(h.snapshots)-1], true
}

// Cursor returns the cursor position.
func (h *History) Cursor() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.cursor
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.snapshots)
}
