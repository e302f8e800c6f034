// Package rule holds the automaton rule set and the pure step function
// that maps one grid generation to the next.
package rule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golcore/gol/internal/grid"
)

// RuleSet is an immutable birth/survival rule in the B/S notation family.
// Bit n of Birth is set when a dead cell with n live neighbors becomes
// alive; bit n of Survival is set when a live cell with n live neighbors
// stays alive. Neighbor counts range 0..8.
type RuleSet struct {
	Birth    uint16
	Survival uint16
}

// Classic returns Conway's B3/S23.
func Classic() RuleSet {
	return RuleSet{Birth: 1 << 3, Survival: 1<<2 | 1<<3}
}

// Parse reads a rulestring such as "B3/S23" or "B36/S23" (HighLife).
// The B and S parts may appear in either order; digits are 0..8.
func Parse(s string) (RuleSet, error) {
	var rs RuleSet
	seenB, seenS := false, false

	for _, part := range strings.Split(s, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			return RuleSet{}, fmt.Errorf("rulestring %q: empty part", s)
		}
		var mask uint16
		for _, r := range part[1:] {
			n, err := strconv.Atoi(string(r))
			if err != nil || n > 8 {
				return RuleSet{}, fmt.Errorf("rulestring %q: invalid neighbor count %q", s, string(r))
			}
			mask |= 1 << n
		}
		switch part[0] {
		case 'B', 'b':
			if seenB {
				return RuleSet{}, fmt.Errorf("rulestring %q: duplicate birth part", s)
			}
			rs.Birth = mask
			seenB = true
		case 'S', 's':
			if seenS {
				return RuleSet{}, fmt.Errorf("rulestring %q: duplicate survival part", s)
			}
			rs.Survival = mask
			seenS = true
		default:
			return RuleSet{}, fmt.Errorf("rulestring %q: part %q must start with B or S", s, part)
		}
	}

	if !seenB || !seenS {
		return RuleSet{}, fmt.Errorf("rulestring %q: need both a B and an S part", s)
	}
	return rs, nil
}

// String renders the canonical rulestring, digits ascending.
func (rs RuleSet) String() string {
	return "B" + maskDigits(rs.Birth) + "/S" + maskDigits(rs.Survival)
}

func maskDigits(mask uint16) string {
	digits := make([]int, 0, 9)
	for n := 0; n <= 8; n++ {
		if mask&(1<<n) != 0 {
			digits = append(digits, n)
		}
	}
	sort.Ints(digits)
	var b strings.Builder
	for _, d := range digits {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}

// Born reports whether a dead cell with n live neighbors becomes alive.
func (rs RuleSet) Born(n int) bool { return rs.Birth&(1<<n) != 0 }

// Survives reports whether a live cell with n live neighbors stays alive.
func (rs RuleSet) Survives(n int) bool { return rs.Survival&(1<<n) != 0 }

// Apply computes the next state of a single cell from its current state
// and live neighbor count.
func (rs RuleSet) Apply(state grid.CellState, liveNeighbors int) grid.CellState {
	if state == grid.Dead {
		if rs.Born(liveNeighbors) {
			return grid.Alive
		}
		return grid.Dead
	}
	if rs.Survives(liveNeighbors) {
		return grid.Alive
	}
	return grid.Dead
}

// Next computes a full new grid from src. It is a pure function: src is
// never mutated and identical inputs always produce identical output,
// which is what makes band-parallel stepping safe.
func Next(src *grid.Grid, rs RuleSet) *grid.Grid {
	dst := grid.New(src.Width(), src.Height(), src.Policy())
	NextRows(src, dst, 0, src.Height(), rs)
	return dst
}

// NextRows computes rows [y0, y1) of the next generation into dst.
// Reads only src; writes only dst rows y0..y1-1. Callers hand each band
// worker a disjoint row range of the same dst so no synchronization is
// needed beyond completion signaling.
func NextRows(src, dst *grid.Grid, y0, y1 int, rs RuleSet) {
	cells := dst.Cells()
	for y := y0; y < y1; y++ {
		for x := 0; x < src.Width(); x++ {
			state, _ := src.Get(x, y)
			cells[dst.Index(x, y)] = rs.Apply(state, src.LiveNeighbors(x, y))
		}
	}
}
