package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golcore/gol/internal/grid"
)

// mark builds a 1x1 board whose single cell encodes an id via Hash
// inequality; distinct ids produce distinguishable snapshots.
func mark(t *testing.T, id int) *grid.Grid {
	t.Helper()
	g := grid.New(id+1, 1, grid.Toroidal)
	return g
}

func TestPushPopLIFO(t *testing.T) {
	r := NewRing(4)
	a, b, c := mark(t, 0), mark(t, 1), mark(t, 2)

	r.Push(a)
	r.Push(b)
	r.Push(c)
	require.Equal(t, 3, r.Len())

	assert.Same(t, c, r.Pop())
	assert.Same(t, b, r.Pop())
	assert.Same(t, a, r.Pop())
	assert.Nil(t, r.Pop())
	assert.Equal(t, 0, r.Len())
}

func TestEvictsOldestAtCapacity(t *testing.T) {
	r := NewRing(3)
	grids := make([]*grid.Grid, 5)
	for i := range grids {
		grids[i] = mark(t, i)
		r.Push(grids[i])
	}

	// Capacity 3 after 5 pushes: the two oldest are gone.
	require.Equal(t, 3, r.Len())
	assert.Same(t, grids[4], r.Pop())
	assert.Same(t, grids[3], r.Pop())
	assert.Same(t, grids[2], r.Pop())
	assert.Nil(t, r.Pop())
}

func TestAtIndexesNewestFirst(t *testing.T) {
	r := NewRing(3)
	grids := make([]*grid.Grid, 4)
	for i := range grids {
		grids[i] = mark(t, i)
		r.Push(grids[i])
	}

	assert.Same(t, grids[3], r.At(0))
	assert.Same(t, grids[2], r.At(1))
	assert.Same(t, grids[1], r.At(2))
	assert.Nil(t, r.At(3))
	assert.Nil(t, r.At(-1))
}

func TestClear(t *testing.T) {
	r := NewRing(2)
	r.Push(mark(t, 0))
	r.Push(mark(t, 1))
	r.Clear()

	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Pop())

	// Reusable after clear.
	g := mark(t, 2)
	r.Push(g)
	assert.Same(t, g, r.At(0))
}

func TestCapacityClampedToOne(t *testing.T) {
	r := NewRing(0)
	assert.Equal(t, 1, r.Cap())

	a, b := mark(t, 0), mark(t, 1)
	r.Push(a)
	r.Push(b)
	assert.Equal(t, 1, r.Len())
	assert.Same(t, b, r.Pop())
}
