// Package confirm implements the arm-then-confirm state machine used
// before destructive actions.
package confirm

import (
	"context"
	"errors"
)

// ErrNotArmed is returned by Confirm or Cancel when nothing is armed.
var ErrNotArmed = errors.New("no action is pending confirmation")

// Ticket identifies the destructive action awaiting confirmation.
type Ticket struct {
	TargetID string
	Label    string
}

// Action executes the armed destructive call.
type Action func(ctx context.Context, targetID string) error

// Controller is a single-slot state machine: Idle -> Armed -> Idle.
// At most one destructive action may be pending at a time; arming again
// overwrites the previous ticket.
type Controller struct {
	ticket *Ticket
}

// New returns a controller in the Idle state.
func New() *Controller {
	return &Controller{}
}

// Arm stages a destructive action, replacing any existing ticket.
func (c *Controller) Arm(targetID, label string) {
	c.ticket = &Ticket{TargetID: targetID, Label: label}
}

// Armed returns the pending ticket, if any.
func (c *Controller) Armed() (Ticket, bool) {
	if c.ticket == nil {
		return Ticket{}, false
	}
	return *c.ticket, true
}

// Confirm executes the armed action. Whatever the action's outcome, the
// controller returns to Idle: a failed delete is reported, never left
// armed for an accidental retry.
func (c *Controller) Confirm(ctx context.Context, action Action) error {
	if c.ticket == nil {
		return ErrNotArmed
	}
	ticket := *c.ticket
	c.ticket = nil
	return action(ctx, ticket.TargetID)
}

// Cancel discards the armed ticket without side effects.
func (c *Controller) Cancel() error {
	if c.ticket == nil {
		return ErrNotArmed
	}
	c.ticket = nil
	return nil
}
