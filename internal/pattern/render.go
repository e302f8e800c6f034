package pattern

import (
	"strings"

	"github.com/golcore/gol/internal/grid"
)

// Render draws the board as text, one row per line, '#' for alive and
// '.' for dead. The output is stable for a given board, which is what
// the golden-file tests compare against.
func Render(g *grid.Grid) string {
	var b strings.Builder
	b.Grow((g.Width() + 1) * g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			state, _ := g.Get(x, y)
			if state == grid.Dead {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
