package engine

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/golcore/gol/internal/grid"
	"github.com/golcore/gol/internal/history"
	"github.com/golcore/gol/internal/rule"
)

// State is the engine's control state.
type State int

const (
	// StateIdle means no simulation has been stepped since construction
	// or the last reset.
	StateIdle State = iota
	// StatePaused means the simulation holds a board and is waiting for
	// the next command.
	StatePaused
	// StateRunning means the background driver is stepping at a cadence.
	StateRunning
	// StateStepping means a single step is in flight.
	StateStepping
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	case StateStepping:
		return "stepping"
	default:
		return "unknown"
	}
}

// DefaultHistoryCapacity is the rewind depth when no option overrides it.
const DefaultHistoryCapacity = 64

// Engine owns a Grid and drives the simulation.
//
// All exported methods are safe for concurrent use. Control operations
// serialize on the internal mutex; a step in flight causes conflicting
// operations to fail with ErrEngineBusy rather than queue.
type Engine struct {
	mu         sync.Mutex
	state      State
	grid       *grid.Grid
	rs         rule.RuleSet
	generation uint64
	hist       *history.Ring

	pool    *pool
	workers int

	// Driver plumbing for Run/Stop. cancel is recreated per run.
	cancel     chan struct{}
	driverDone chan struct{}
	results    chan StepResult

	log *slog.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithWorkers sets the band worker pool size. Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithHistoryCapacity sets the rewind depth. Defaults to
// DefaultHistoryCapacity.
func WithHistoryCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.hist = history.NewRing(n)
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New constructs an Idle engine with a dead board of the given
// dimensions. Fails with ErrInvalidDimensions when width or height is
// not positive.
func New(width, height int, policy grid.EdgePolicy, rs rule.RuleSet, opts ...Option) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidDimensions(width, height)
	}

	e := &Engine{
		state:   StateIdle,
		grid:    grid.New(width, height, policy),
		rs:      rs,
		hist:    history.NewRing(DefaultHistoryCapacity),
		workers: runtime.GOMAXPROCS(0),
		results: make(chan StepResult, 64),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.pool = newPool(e.workers)

	e.log.Debug("engine created",
		"width", width,
		"height", height,
		"policy", policy.String(),
		"rule", rs.String(),
		"workers", e.workers,
		"history", e.hist.Cap(),
	)
	return e, nil
}

// Close stops the driver, if running, and shuts down the worker pool.
// The engine must not be used afterwards.
func (e *Engine) Close() {
	e.Stop()
	e.pool.close()
}

// Step advances the simulation by exactly one generation and leaves the
// engine Paused. Fails with ErrEngineBusy while another step is in
// flight or the driver is running.
func (e *Engine) Step() (StepResult, error) {
	e.mu.Lock()
	if e.state == StateStepping || e.state == StateRunning {
		state := e.state
		e.mu.Unlock()
		e.log.Debug("step rejected", "state", state.String())
		return StepResult{}, ErrEngineBusy
	}
	e.state = StateStepping
	src := e.grid
	rs := e.rs
	e.mu.Unlock()

	// Band computation runs without the lock; src is immutable for the
	// duration because only commit below replaces e.grid.
	next := e.pool.step(src, rs)

	e.mu.Lock()
	res := e.commit(src, next)
	e.state = StatePaused
	e.mu.Unlock()
	return res, nil
}

// commit publishes next as the live grid, records src in history and
// builds the StepResult. Caller holds the mutex.
func (e *Engine) commit(src, next *grid.Grid) StepResult {
	e.hist.Push(src)
	e.grid = next
	e.generation++

	period := detectPeriod(next, src, e.hist)
	res := StepResult{
		Generation: e.generation,
		Population: next.Population(),
		Stable:     period == 1,
		Period:     period,
		// A copy, never the live board: consumers must not be able to
		// write through a published result into the engine or history.
		Grid: next.Clone(),
	}
	e.log.Debug("step committed",
		"generation", res.Generation,
		"population", res.Population,
		"period", res.Period,
	)
	return res
}

// Snapshot returns a read-only deep copy of the current board. Never a
// live reference, so renders cannot tear while a step is in flight.
func (e *Engine) Snapshot() *grid.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Clone()
}

// Generation returns the current generation number.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// SetGeneration overwrites the generation counter. Used when loading a
// save that was recorded mid-simulation.
func (e *Engine) SetGeneration(generation uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation = generation
}

// CurrentState returns the control state.
func (e *Engine) CurrentState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// RuleSet returns the active rule set.
func (e *Engine) RuleSet() rule.RuleSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rs
}

// SetRuleSet swaps the rule set between steps. The rule set is an
// immutable value, so an in-flight step keeps the one it started with.
func (e *Engine) SetRuleSet(rs rule.RuleSet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rs = rs
	e.log.Debug("rule set changed", "rule", rs.String())
}

// HistoryLen returns the number of recorded snapshots.
func (e *Engine) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.Len()
}

// Reset clears the board, history and generation counter, applies the
// caller-supplied seed pattern and leaves the engine Idle. A running
// driver is stopped first; a single step in flight fails the reset with
// ErrEngineBusy, since its commit would reinstall the old board.
func (e *Engine) Reset(seed []grid.Coord) error {
	e.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateStepping {
		return ErrEngineBusy
	}

	fresh := grid.New(e.grid.Width(), e.grid.Height(), e.grid.Policy())
	if err := fresh.SetAll(seed); err != nil {
		// Seed out of bounds on a clipped grid: board stays untouched.
		return err
	}
	e.grid = fresh
	e.hist.Clear()
	e.generation = 0
	e.state = StateIdle
	e.log.Info("engine reset", "seed_cells", len(seed))
	return nil
}

// Resize reinitializes the board to a dead grid of the new dimensions
// and clears history. Fails with ErrInvalidDimensions when width or
// height is not positive, and with ErrEngineBusy while a single step is
// in flight; the board and history are untouched on failure. The
// generation counter is preserved: it only resets on an explicit Reset.
func (e *Engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return invalidDimensions(width, height)
	}

	e.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateStepping {
		return ErrEngineBusy
	}

	e.grid = grid.New(width, height, e.grid.Policy())
	e.hist.Clear()
	e.state = StateIdle
	e.log.Info("engine resized", "width", width, "height", height)
	return nil
}

// Rewind restores the board from n generations ago, consuming the n
// popped history entries and rolling the generation counter back. Fails
// with ErrHistoryExhausted when n exceeds the recorded depth, leaving
// board and history untouched. Fails with ErrEngineBusy while stepping
// or running.
func (e *Engine) Rewind(n int) (*grid.Grid, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateStepping || e.state == StateRunning {
		return nil, ErrEngineBusy
	}
	if n <= 0 || n > e.hist.Len() {
		return nil, historyExhausted(n, e.hist.Len())
	}

	var restored *grid.Grid
	for i := 0; i < n; i++ {
		restored = e.hist.Pop()
	}
	e.grid = restored
	// SetGeneration may have lowered the counter below the recorded
	// depth; clamp at zero instead of wrapping.
	if uint64(n) > e.generation {
		e.generation = 0
	} else {
		e.generation -= uint64(n)
	}
	e.state = StatePaused
	e.log.Info("rewound", "generations", n, "generation", e.generation)
	return restored.Clone(), nil
}
