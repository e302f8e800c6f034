package engine

import "time"

// Run starts the background driver, which issues steps at the given
// cadence until Stop or Reset. A rate of zero or less means uncapped.
// Fails with ErrEngineBusy when the engine is already running or a step
// is in flight. Results are published on the Results channel.
func (e *Engine) Run(rate time.Duration) error {
	e.mu.Lock()
	if e.state == StateRunning || e.state == StateStepping {
		e.mu.Unlock()
		return ErrEngineBusy
	}
	cancel := make(chan struct{})
	done := make(chan struct{})
	e.state = StateRunning
	e.cancel = cancel
	e.driverDone = done
	e.mu.Unlock()

	e.log.Info("driver started", "rate", rate)
	go e.drive(rate, cancel, done)
	return nil
}

// Stop halts the driver and leaves the engine Paused. The step in
// flight, if any, finishes first; band tasks are never interrupted
// mid-computation. No-op when the engine is not running.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state != StateRunning || e.cancel == nil {
		e.mu.Unlock()
		return
	}
	cancel := e.cancel
	done := e.driverDone
	e.cancel = nil
	e.driverDone = nil
	e.mu.Unlock()

	close(cancel)
	<-done
	e.log.Info("driver stopped")
}

// Results returns the channel the driver publishes StepResults on.
// Publishing is non-blocking: when the consumer falls behind, results
// are dropped rather than stalling the simulation.
func (e *Engine) Results() <-chan StepResult {
	return e.results
}

// drive is the driver goroutine: step, publish, wait for the next tick,
// checking the cancellation signal between steps.
func (e *Engine) drive(rate time.Duration, cancel <-chan struct{}, done chan<- struct{}) {
	defer func() {
		e.mu.Lock()
		if e.state == StateRunning {
			e.state = StatePaused
		}
		e.mu.Unlock()
		close(done)
	}()

	var ticker *time.Ticker
	if rate > 0 {
		ticker = time.NewTicker(rate)
		defer ticker.Stop()
	}

	for {
		select {
		case <-cancel:
			return
		default:
		}

		if ticker != nil {
			select {
			case <-cancel:
				return
			case <-ticker.C:
			}
		}

		e.mu.Lock()
		src := e.grid
		rs := e.rs
		e.mu.Unlock()

		next := e.pool.step(src, rs)

		e.mu.Lock()
		res := e.commit(src, next)
		e.mu.Unlock()

		select {
		case e.results <- res:
		default:
		}
	}
}
