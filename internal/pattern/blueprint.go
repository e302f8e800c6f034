package pattern

import (
	"fmt"

	"github.com/golcore/gol/internal/grid"
)

// Blueprint is a rectangular sub-pattern cut from a board. Coordinates
// are relative to the blueprint's own top-left corner.
type Blueprint struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Alive  [][2]int `json:"alive"`
}

// Clip copies the rectangle with corners (x0, y0) and (x1, y1),
// inclusive, out of the board. Corner order does not matter.
func Clip(g *grid.Grid, x0, y0, x1, y1 int) (*Blueprint, error) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	b := &Blueprint{Width: x1 - x0 + 1, Height: y1 - y0 + 1}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			state, err := g.Get(x, y)
			if err != nil {
				return nil, fmt.Errorf("clip (%d, %d): %w", x, y, err)
			}
			if state != grid.Dead {
				b.Alive = append(b.Alive, [2]int{x - x0, y - y0})
			}
		}
	}
	return b, nil
}

// Stamp overwrites the board rectangle whose top-left corner is
// (atX, atY) with the blueprint, dead cells included. On a clipped board
// a blueprint overlapping the edge fails without partial application.
func (b *Blueprint) Stamp(g *grid.Grid, atX, atY int) error {
	if g.Policy() == grid.Clipped {
		if atX < 0 || atY < 0 || atX+b.Width > g.Width() || atY+b.Height > g.Height() {
			return fmt.Errorf("stamp %dx%d at (%d, %d) on %dx%d board: %w",
				b.Width, b.Height, atX, atY, g.Width(), g.Height(), grid.ErrOutOfBounds)
		}
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if err := g.Set(atX+x, atY+y, grid.Dead); err != nil {
				return err
			}
		}
	}
	for _, c := range b.Alive {
		if err := g.Set(atX+c[0], atY+c[1], grid.Alive); err != nil {
			return err
		}
	}
	return nil
}
