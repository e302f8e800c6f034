package engine

import (
	"github.com/golcore/gol/internal/grid"
	"github.com/golcore/gol/internal/history"
)

// oscillationWindow bounds how far back the engine looks when matching
// the new grid against history to detect repeating boards.
const oscillationWindow = 16

// StepResult is the outcome of one simulation tick.
type StepResult struct {
	// Generation is the monotonically increasing tick counter. It only
	// resets on an explicit Reset.
	Generation uint64
	// Population is the number of alive cells after the tick.
	Population int
	// Stable reports that the tick did not change the board.
	Stable bool
	// Period is the detected oscillation period against recent history
	// (1 = stable, 2 = blinker-style oscillator, ...). Zero when the
	// board does not match any recent prior generation.
	Period int
	// Grid is a read-only snapshot of the board after the tick. The
	// engine never mutates it after publishing.
	Grid *grid.Grid
}

// detectPeriod matches next against the previous grid and the recent
// history ring. prev is generation-1; hist.At(0) also holds prev once the
// step has been committed, so the scan starts at the previous grid.
func detectPeriod(next, prev *grid.Grid, hist *history.Ring) int {
	nextHash := next.Hash()
	if prev != nil && prev.Hash() == nextHash && next.Equal(prev) {
		return 1
	}
	limit := hist.Len()
	if limit > oscillationWindow {
		limit = oscillationWindow
	}
	// hist.At(0) is prev, already checked; deeper entries give period i+1.
	for i := 1; i < limit; i++ {
		candidate := hist.At(i)
		if candidate == nil {
			break
		}
		if candidate.Hash() == nextHash && next.Equal(candidate) {
			return i + 1
		}
	}
	return 0
}
