// Package scenario loads and runs CUE-defined simulation scenarios.
//
// A scenario declares a board, a rule, a seed pattern and a number of
// steps, plus optional expectations about the final board. Scenarios
// back the `gol test` command and the package's own golden-trace tests.
package scenario

import (
	"fmt"
	"sort"

	"github.com/golcore/gol/internal/engine"
	"github.com/golcore/gol/internal/grid"
	"github.com/golcore/gol/internal/rule"
)

// Scenario is one declared simulation case.
type Scenario struct {
	Name   string   `json:"name"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rule   string   `json:"rule"`
	Edge   string   `json:"edge"`
	Seed   [][2]int `json:"seed"`
	Steps  int      `json:"steps"`
	Expect Expect   `json:"expect"`
}

// Expect holds the optional assertions checked after the final step.
type Expect struct {
	// Population asserts the final alive-cell count. Nil skips the check.
	Population *int `json:"population"`
	// Alive asserts the exact final alive set, order-insensitive.
	Alive [][2]int `json:"alive"`
	// Period asserts the oscillation period reported by the final step.
	Period *int `json:"period"`
}

// TraceEvent records one step of a scenario run.
type TraceEvent struct {
	Generation uint64 `json:"generation"`
	Population int    `json:"population"`
	Period     int    `json:"period"`
}

// Result is the outcome of running a scenario.
type Result struct {
	Scenario *Scenario
	Trace    []TraceEvent
	// Failures lists expectation violations. Empty means the scenario
	// passed.
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Run executes the scenario on a real engine and checks expectations.
// Returns an error only when the scenario itself is unrunnable; failed
// expectations are reported in the Result.
func Run(s *Scenario) (*Result, error) {
	rs := rule.Classic()
	if s.Rule != "" {
		var err error
		rs, err = rule.Parse(s.Rule)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	policy, err := grid.ParseEdgePolicy(s.Edge)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	eng, err := engine.New(s.Width, s.Height, policy, rs)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	defer eng.Close()

	seed := make([]grid.Coord, len(s.Seed))
	for i, c := range s.Seed {
		seed[i] = grid.Coord{X: c[0], Y: c[1]}
	}
	if err := eng.Reset(seed); err != nil {
		return nil, fmt.Errorf("scenario %q: seed: %w", s.Name, err)
	}

	result := &Result{Scenario: s}
	var last engine.StepResult
	for i := 0; i < s.Steps; i++ {
		last, err = eng.Step()
		if err != nil {
			return nil, fmt.Errorf("scenario %q: step %d: %w", s.Name, i+1, err)
		}
		result.Trace = append(result.Trace, TraceEvent{
			Generation: last.Generation,
			Population: last.Population,
			Period:     last.Period,
		})
	}

	result.Failures = check(s, last, eng.Snapshot())
	return result, nil
}

// check evaluates the scenario expectations against the final state.
func check(s *Scenario, last engine.StepResult, final *grid.Grid) []string {
	var failures []string

	if s.Expect.Population != nil && final.Population() != *s.Expect.Population {
		failures = append(failures, fmt.Sprintf(
			"population: want %d, got %d", *s.Expect.Population, final.Population()))
	}
	if s.Expect.Period != nil && s.Steps > 0 && last.Period != *s.Expect.Period {
		failures = append(failures, fmt.Sprintf(
			"period: want %d, got %d", *s.Expect.Period, last.Period))
	}
	if s.Expect.Alive != nil {
		want := canonicalCoords(s.Expect.Alive)
		gotCoords := final.Alive()
		got := make([][2]int, len(gotCoords))
		for i, c := range gotCoords {
			got[i] = [2]int{c.X, c.Y}
		}
		if !coordsEqual(want, canonicalCoords(got)) {
			failures = append(failures, fmt.Sprintf(
				"alive cells: want %v, got %v", want, canonicalCoords(got)))
		}
	}
	return failures
}

func canonicalCoords(coords [][2]int) [][2]int {
	out := make([][2]int, len(coords))
	copy(out, coords)
	sort.Slice(out, func(i, j int) bool {
		if out[i][1] != out[j][1] {
			return out[i][1] < out[j][1]
		}
		return out[i][0] < out[j][0]
	})
	return out
}

func coordsEqual(a, b [][2]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
