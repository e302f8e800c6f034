package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetClippedBounds(t *testing.T) {
	g := New(4, 3, Clipped)

	require.NoError(t, g.Set(3, 2, Alive))
	state, err := g.Get(3, 2)
	require.NoError(t, err)
	assert.Equal(t, Alive, state)

	_, err = g.Get(4, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Get(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, g.Set(-1, 0, Alive), ErrOutOfBounds)
}

func TestGetSetToroidalWraps(t *testing.T) {
	g := New(4, 3, Toroidal)

	// (-1, -1) wraps to (3, 2); lookups never fail.
	require.NoError(t, g.Set(-1, -1, Alive))
	state, err := g.Get(3, 2)
	require.NoError(t, err)
	assert.Equal(t, Alive, state)

	state, err = g.Get(7, 5)
	require.NoError(t, err)
	assert.Equal(t, Alive, state)
}

func TestNeighborsToroidalAlwaysEight(t *testing.T) {
	g := New(4, 4, Toroidal)

	for _, c := range []Coord{{0, 0}, {3, 3}, {0, 2}, {2, 2}} {
		assert.Len(t, g.Neighbors(c.X, c.Y), 8, "cell (%d, %d)", c.X, c.Y)
	}
}

func TestNeighborsClippedEdges(t *testing.T) {
	g := New(4, 4, Clipped)

	assert.Len(t, g.Neighbors(0, 0), 3, "corner")
	assert.Len(t, g.Neighbors(1, 0), 5, "edge")
	assert.Len(t, g.Neighbors(2, 2), 8, "interior")
}

func TestLiveNeighborsMatchesNeighbors(t *testing.T) {
	g := New(5, 5, Clipped)
	require.NoError(t, g.SetAll([]Coord{{1, 1}, {2, 1}, {3, 1}, {2, 2}}))

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := 0
			for _, n := range g.Neighbors(x, y) {
				state, err := g.Get(n.X, n.Y)
				require.NoError(t, err)
				if state != Dead {
					want++
				}
			}
			assert.Equal(t, want, g.LiveNeighbors(x, y), "cell (%d, %d)", x, y)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := New(3, 3, Toroidal)
	require.NoError(t, g.Set(1, 1, Alive))

	clone := g.Clone()
	require.True(t, g.Equal(clone))

	require.NoError(t, clone.Set(0, 0, Alive))
	assert.False(t, g.Equal(clone), "mutating the clone must not touch the original")

	state, err := g.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Dead, state)
}

func TestEqualComparesDimensionsAndPolicy(t *testing.T) {
	a := New(3, 3, Toroidal)
	assert.False(t, a.Equal(New(3, 4, Toroidal)))
	assert.False(t, a.Equal(New(3, 3, Clipped)))
	assert.False(t, a.Equal(nil))
	assert.True(t, a.Equal(New(3, 3, Toroidal)))
}

func TestPopulationAndAlive(t *testing.T) {
	g := New(4, 4, Clipped)
	coords := []Coord{{0, 0}, {3, 1}, {2, 3}}
	require.NoError(t, g.SetAll(coords))

	assert.Equal(t, 3, g.Population())
	assert.ElementsMatch(t, coords, g.Alive())
}

func TestSetAllRejectsOutOfBoundsSeed(t *testing.T) {
	g := New(3, 3, Clipped)
	err := g.SetAll([]Coord{{1, 1}, {5, 5}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestHashDiffersOnContentAndDims(t *testing.T) {
	a := New(3, 3, Toroidal)
	b := New(3, 3, Toroidal)
	assert.Equal(t, a.Hash(), b.Hash())

	require.NoError(t, b.Set(1, 1, Alive))
	assert.NotEqual(t, a.Hash(), b.Hash())

	// Same flat cell data, different shape.
	c := New(9, 1, Toroidal)
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestParseEdgePolicy(t *testing.T) {
	p, err := ParseEdgePolicy("toroidal")
	require.NoError(t, err)
	assert.Equal(t, Toroidal, p)

	p, err = ParseEdgePolicy("clipped")
	require.NoError(t, err)
	assert.Equal(t, Clipped, p)

	// Empty defaults to toroidal for older save files.
	p, err = ParseEdgePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Toroidal, p)

	_, err = ParseEdgePolicy("bouncy")
	assert.Error(t, err)
}
