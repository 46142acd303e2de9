package domain

import (
	"fmt"
	"time"
)

// transitions lists the forward moves of the approval workflow. Statuses
// absent from the map are terminal.
var transitions = map[Status][]Status{
	StatusDraft: {StatusSent},
	StatusSent:  {StatusApproved, StatusRejected},
}

// CanTransition reports whether from -> to is a legal workflow move.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no workflow move leaves s.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// IsExpired reports whether now's calendar day is after the expiration date.
func (q *Quotation) IsExpired(now time.Time) bool {
	if q.ExpirationDate.IsZero() {
		return false
	}
	return DateOf(now).After(DateOf(q.ExpirationDate))
}

// EffectiveStatus is the status to display at now: any quotation read after
// its expiration date shows as expired. Expiry is evaluated lazily and never
// written back.
func (q *Quotation) EffectiveStatus(now time.Time) Status {
	if q.IsExpired(now) {
		return StatusExpired
	}
	return q.Status
}

// Transition moves the quotation to status to, stamping UpdatedAt in the
// same step. Expired quotations accept no moves.
func (q *Quotation) Transition(to Status, now time.Time) error {
	from := q.EffectiveStatus(now)
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	q.Status = to
	q.UpdatedAt = now
	return nil
}
