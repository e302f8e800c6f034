// Package engine drives the cellular-automaton simulation.
//
// The Engine owns the live Grid and the history ring exclusively. All
// control operations (Step, Run, Stop, Reset, Resize, Rewind) serialize
// on the engine's mutex, so the grid and history are never mutated
// concurrently. Outside readers only ever see copies via Snapshot or the
// grids carried by StepResult values.
//
// Stepping is band-parallel: the grid is partitioned into horizontal row
// bands, one task per band is submitted to a fixed worker pool, and each
// task writes its rows into a private region of the next grid while
// reading only the immutable prior grid. A single aggregation point waits
// for one completion signal per band before the new grid is published.
// Because the rule function is pure and bands are assigned
// deterministically, the result is bit-identical for any worker count.
//
// Run starts a background driver that steps at a fixed cadence. The
// driver checks a cancellation signal between steps; in-flight band tasks
// always finish before the driver halts.
package engine
