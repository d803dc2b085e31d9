// Package lifecycle defines the order-status state machine:
// pending → preparing → ready → delivered. Transitions advance one step at a
// time; delivered is terminal.
package lifecycle

import (
	"fmt"

	"tableside/internal/models"
)

// statusOrder is the authoritative progression of an order
var statusOrder = []models.OrderStatus{
	models.StatusPending,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusDelivered,
}

// All returns every recognized status in lifecycle order.
func All() []models.OrderStatus {
	out := make([]models.OrderStatus, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// Valid reports whether s is one of the recognized status labels.
func Valid(s models.OrderStatus) bool {
	for _, st := range statusOrder {
		if st == s {
			return true
		}
	}
	return false
}

// Next returns the status that follows s. ok is false when s is terminal or
// unrecognized.
func Next(s models.OrderStatus) (models.OrderStatus, bool) {
	for i, st := range statusOrder {
		if st == s && i+1 < len(statusOrder) {
			return statusOrder[i+1], true
		}
	}
	return "", false
}

// CanTransition checks that to is the single forward step from from.
func CanTransition(from, to models.OrderStatus) error {
	if !Valid(to) {
		return fmt.Errorf("unknown status %q", to)
	}
	next, ok := Next(from)
	if !ok {
		return fmt.Errorf("order is already %s (terminal state)", from)
	}
	if to != next {
		return fmt.Errorf("cannot move from %s to %s, next allowed status is %s", from, to, next)
	}
	return nil
}
