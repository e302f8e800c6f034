package engine

import (
	"errors"
	"fmt"
)

// All engine errors are recoverable: they are reported to the caller and
// never terminate the engine. Consumers match them with errors.Is.
var (
	// ErrEngineBusy is returned for control operations that arrive while
	// a step is already in flight. Requests are rejected rather than
	// queued to keep the state machine simple.
	ErrEngineBusy = errors.New("engine busy")

	// ErrInvalidDimensions is returned when a resize or construction
	// requests a zero or negative width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrHistoryExhausted is returned when a rewind asks for more
	// generations than the history buffer holds.
	ErrHistoryExhausted = errors.New("history exhausted")
)

func invalidDimensions(width, height int) error {
	return fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
}

func historyExhausted(requested, available int) error {
	return fmt.Errorf("rewind %d with %d recorded: %w", requested, available, ErrHistoryExhausted)
}
