package combo

import (
	"errors"
	"fmt"
)

// ErrInvalidState is the sentinel for operations illegal in the attack's current state
var ErrInvalidState = errors.New("invalid attack state")

// InvalidStateError describes an operation rejected by an attack's state
type InvalidStateError struct {
	Attack string
	Op     string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Attack, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidState)
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
