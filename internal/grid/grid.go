// Package grid implements the 2D cell board the simulation operates on.
//
// A Grid is a dense row-major array of binary cell states with a fixed
// edge policy. Dimensions are immutable after construction; the owning
// engine replaces the whole Grid on resize or reset.
package grid

import (
	"errors"
	"fmt"
	"hash/fnv"
)

// CellState is the state of a single cell. Zero is dead.
type CellState = uint8

const (
	// Dead marks an unoccupied cell.
	Dead CellState = 0
	// Alive marks an occupied cell.
	Alive CellState = 1
)

// EdgePolicy controls how coordinates past the board edge are treated.
type EdgePolicy int

const (
	// Toroidal wraps coordinates modulo width/height. Lookups never fail.
	Toroidal EdgePolicy = iota
	// Clipped treats the edge as a hard boundary. Out-of-range access
	// fails, and edge cells simply have fewer neighbors.
	Clipped
)

// String returns the policy name used in save files and scenarios.
func (p EdgePolicy) String() string {
	switch p {
	case Toroidal:
		return "toroidal"
	case Clipped:
		return "clipped"
	default:
		return fmt.Sprintf("EdgePolicy(%d)", int(p))
	}
}

// ParseEdgePolicy parses the textual policy names produced by String.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "toroidal", "":
		return Toroidal, nil
	case "clipped":
		return Clipped, nil
	default:
		return Toroidal, fmt.Errorf("unknown edge policy %q", s)
	}
}

// ErrOutOfBounds reports a coordinate access outside a clipped grid.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// Coord is an (x, y) cell position.
type Coord struct {
	X int
	Y int
}

// Grid is a fixed-size 2D board of cells stored in row-major order.
type Grid struct {
	width  int
	height int
	policy EdgePolicy
	cells  []CellState
}

// New allocates a dead grid with the given dimensions and edge policy.
// Dimensions must be positive; the engine validates them before calling.
func New(width, height int, policy EdgePolicy) *Grid {
	return &Grid{
		width:  width,
		height: height,
		policy: policy,
		cells:  make([]CellState, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Policy returns the edge policy.
func (g *Grid) Policy() EdgePolicy { return g.policy }

// Cells exposes the backing slice. Band workers write disjoint row ranges
// of a private output grid through this; callers must not alias a grid
// that is visible outside the engine.
func (g *Grid) Cells() []CellState { return g.cells }

// Index returns the linear slice index for in-range coordinates.
func (g *Grid) Index(x, y int) int { return y*g.width + x }

// wrap applies toroidal wrapping to the coordinates.
func (g *Grid) wrap(x, y int) (int, int) {
	x = (x%g.width + g.width) % g.width
	y = (y%g.height + g.height) % g.height
	return x, y
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the state of the cell at (x, y).
// Under a clipped policy out-of-range coordinates fail with ErrOutOfBounds;
// under a toroidal policy they wrap and the lookup never fails.
func (g *Grid) Get(x, y int) (CellState, error) {
	switch g.policy {
	case Toroidal:
		x, y = g.wrap(x, y)
	default:
		if !g.inBounds(x, y) {
			return Dead, fmt.Errorf("get (%d, %d) on %dx%d grid: %w", x, y, g.width, g.height, ErrOutOfBounds)
		}
	}
	return g.cells[g.Index(x, y)], nil
}

// Set writes the state of the cell at (x, y). Same bounds contract as Get.
func (g *Grid) Set(x, y int, state CellState) error {
	switch g.policy {
	case Toroidal:
		x, y = g.wrap(x, y)
	default:
		if !g.inBounds(x, y) {
			return fmt.Errorf("set (%d, %d) on %dx%d grid: %w", x, y, g.width, g.height, ErrOutOfBounds)
		}
	}
	g.cells[g.Index(x, y)] = state
	return nil
}

// Neighbors returns the coordinates adjacent to (x, y) under the edge
// policy. Toroidal grids always yield eight neighbors; clipped grids
// yield fewer at edges and corners.
func (g *Grid) Neighbors(x, y int) []Coord {
	out := make([]Coord, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.policy == Toroidal {
				nx, ny = g.wrap(nx, ny)
			} else if !g.inBounds(nx, ny) {
				continue
			}
			out = append(out, Coord{X: nx, Y: ny})
		}
	}
	return out
}

// LiveNeighbors counts the alive cells adjacent to (x, y). This is the
// hot path of the rule engine and avoids the Neighbors allocation.
func (g *Grid) LiveNeighbors(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.policy == Toroidal {
				nx, ny = g.wrap(nx, ny)
			} else if !g.inBounds(nx, ny) {
				continue
			}
			if g.cells[g.Index(nx, ny)] != Dead {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		width:  g.width,
		height: g.height,
		policy: g.policy,
		cells:  make([]CellState, len(g.cells)),
	}
	copy(out.cells, g.cells)
	return out
}

// Equal reports whether two grids have identical dimensions, policy and
// cell contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	if g.width != other.width || g.height != other.height || g.policy != other.policy {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Population counts the alive cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c != Dead {
			n++
		}
	}
	return n
}

// Hash returns a cheap content hash over dimensions and cells. Used by the
// engine to detect stable and oscillating boards against recent history.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	var dims [4]byte
	dims[0] = byte(g.width)
	dims[1] = byte(g.width >> 8)
	dims[2] = byte(g.height)
	dims[3] = byte(g.height >> 8)
	h.Write(dims[:])
	h.Write(g.cells)
	return h.Sum64()
}

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
}

// SetAll marks the given coordinates alive, clearing the rest of the
// board first. Coordinates follow the Set bounds contract.
func (g *Grid) SetAll(alive []Coord) error {
	g.Clear()
	for _, c := range alive {
		if err := g.Set(c.X, c.Y, Alive); err != nil {
			return err
		}
	}
	return nil
}

// Alive collects the coordinates of all alive cells in row-major order.
func (g *Grid) Alive() []Coord {
	out := make([]Coord, 0, 64)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[g.Index(x, y)] != Dead {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}
