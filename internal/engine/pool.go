package engine

import (
	"sync"

	"github.com/golcore/gol/internal/grid"
	"github.com/golcore/gol/internal/rule"
)

// bandTask asks a worker to compute rows [y0, y1) of dst from src.
// Each task writes a disjoint row range of the shared output grid, so
// workers never contend; done is the task's one-shot completion signal.
type bandTask struct {
	src  *grid.Grid
	dst  *grid.Grid
	y0   int
	y1   int
	rs   rule.RuleSet
	band int
	done chan<- int
}

// pool is a fixed-size set of long-lived worker goroutines that compute
// row bands. The pool holds no state between steps; all data flows
// through the task.
type pool struct {
	tasks     chan bandTask
	workers   int
	closeOnce sync.Once
}

func newPool(workers int) *pool {
	if workers < 1 {
		workers = 1
	}
	p := &pool{
		tasks:   make(chan bandTask),
		workers: workers,
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *pool) worker() {
	for t := range p.tasks {
		rule.NextRows(t.src, t.dst, t.y0, t.y1, t.rs)
		t.done <- t.band
	}
}

// step computes one full generation band-parallel and returns the new
// grid. Blocks until every band has reported completion. Band i covers
// rows [i*h/n, (i+1)*h/n), so the partition is deterministic and the
// assembled result is independent of task completion order.
func (p *pool) step(src *grid.Grid, rs rule.RuleSet) *grid.Grid {
	dst := grid.New(src.Width(), src.Height(), src.Policy())

	bands := p.workers
	if h := src.Height(); bands > h {
		bands = h
	}

	done := make(chan int, bands)
	for i := 0; i < bands; i++ {
		p.tasks <- bandTask{
			src:  src,
			dst:  dst,
			y0:   i * src.Height() / bands,
			y1:   (i + 1) * src.Height() / bands,
			rs:   rs,
			band: i,
			done: done,
		}
	}

	// Single aggregation point: wait for one signal per band.
	for i := 0; i < bands; i++ {
		<-done
	}
	return dst
}

// close stops the workers once all submitted tasks have drained.
// Safe to call more than once.
func (p *pool) close() {
	p.closeOnce.Do(func() { close(p.tasks) })
}
