// Package history provides the bounded ring of past grid snapshots the
// engine uses for rewind.
package history

import "github.com/golcore/gol/internal/grid"

// Ring is a fixed-capacity FIFO of grid snapshots. Pushing past capacity
// evicts the oldest entry. Insertion order is preserved so rewind walks
// generations newest-first.
//
// Ring is not safe for concurrent use; the engine serializes access.
type Ring struct {
	buf   []*grid.Grid
	start int // index of oldest entry
	size  int
}

// NewRing creates an empty ring. Capacity below one is clamped to one.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]*grid.Grid, capacity)}
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Len returns the number of stored snapshots.
func (r *Ring) Len() int { return r.size }

// Push appends a snapshot, evicting the oldest entry when full.
func (r *Ring) Push(g *grid.Grid) {
	idx := (r.start + r.size) % len(r.buf)
	if r.size == len(r.buf) {
		// Full: overwrite the oldest slot and advance start.
		r.buf[r.start] = g
		r.start = (r.start + 1) % len(r.buf)
		return
	}
	r.buf[idx] = g
	r.size++
}

// Pop removes and returns the newest snapshot, or nil when empty.
func (r *Ring) Pop() *grid.Grid {
	if r.size == 0 {
		return nil
	}
	idx := (r.start + r.size - 1) % len(r.buf)
	g := r.buf[idx]
	r.buf[idx] = nil
	r.size--
	return g
}

// At returns the i-th newest snapshot (0 = most recent), or nil when i is
// out of range. Used for oscillation detection without consuming entries.
func (r *Ring) At(i int) *grid.Grid {
	if i < 0 || i >= r.size {
		return nil
	}
	idx := (r.start + r.size - 1 - i) % len(r.buf)
	return r.buf[idx]
}

// Clear discards all snapshots.
func (r *Ring) Clear() {
	for i := range r.buf {
		r.buf[i] = nil
	}
	r.start = 0
	r.size = 0
}
