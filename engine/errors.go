package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when there are no binding energies to plot.
	ErrNoData = errors.New("no data to plot")

	// ErrInvalidBinWidth is returned when the bin width is not a positive
	// finite number.
	ErrInvalidBinWidth = errors.New("bin width must be positive and finite")

	// ErrUnknownColumn is returned when a column key cannot be resolved.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownCommand is returned for a command kind the session does not
	// handle.
	ErrUnknownCommand = errors.New("unknown command")
)

// NonFiniteValueError indicates a NaN or infinite histogram input.
type NonFiniteValueError struct {
	Index int
	Value float64
}

func (e *NonFiniteValueError) Error() string {
	return fmt.Sprintf("non-finite value %v at index %d", e.Value, e.Index)
}
