package domain

import (
	"errors"
	"fmt"
)

// ErrUndefinedTransition is returned when no rule matches the current state and cell.
var ErrUndefinedTransition = errors.New("undefined transition")

// ErrHeadOutOfBounds is returned when a head index does not address a tape cell.
var ErrHeadOutOfBounds = errors.New("head index out of bounds")

// ErrMachineNotFound is returned when a machine name is not registered in a catalog.
var ErrMachineNotFound = errors.New("machine not found")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrInvalidRunID is returned when a run ID cannot name a stored run.
var ErrInvalidRunID = errors.New("invalid run ID")

// UndefinedTransitionError carries the offending state and cell.
// It matches ErrUndefinedTransition with errors.Is.
type UndefinedTransitionError[Q comparable, S Symbol] struct {
	State Q
	Read  Cell[S]
}

func (e *UndefinedTransitionError[Q, S]) Error() string {
	read := "blank"
	if s, ok := e.Read.Symbol(); ok {
		read = fmt.Sprintf("%q", s.String())
	}
	return fmt.Sprintf("%s: no rule for state %v reading %s", ErrUndefinedTransition, e.State, read)
}

func (e *UndefinedTransitionError[Q, S]) Is(target error) bool {
	return target == ErrUndefinedTransition
}
