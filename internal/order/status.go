package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition indicates a status change that is not allowed
// from the order's current state.
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions is the allowed status transition set. Delivered, cancelled
// and refunded are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusConfirmed, StatusCancelled},
	StatusProcessing: {StatusConfirmed, StatusShipped, StatusCancelled, StatusRefunded},
	StatusConfirmed:  {StatusShipped, StatusCancelled, StatusRefunded},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition when the move is not allowed.
func CheckTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
