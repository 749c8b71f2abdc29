package parcel

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// ErrStatusChangeIsNotConstructed is returned when a StatusChange was not
// created through NewStatusChange.
var ErrStatusChangeIsNotConstructed = errors.New("StatusChange must be created via NewStatusChange constructor")

// StatusChange is one immutable row of a parcel's status history: who moved
// the parcel from which status to which, why, and when. History rows are
// append-only and never rewritten or deleted.
type StatusChange struct {
	id       kernel.UUID
	parcelID kernel.UUID
	from     Status
	to       Status
	reason   string
	actor    string
	at       time.Time

	guard kernel.ConstructorGuard
}

// NewStatusChange records one accepted transition. The actor is required so
// the audit trail always names who acted; the reason may be empty.
func NewStatusChange(id kernel.UUID, parcelID kernel.UUID, from, to Status, reason, actor string, at time.Time) (StatusChange, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), from.Validate(), to.Validate()); err != nil {
		return StatusChange{}, err
	}
	if actor == "" {
		return StatusChange{}, errs.NewValueIsRequiredError("actor")
	}

	return StatusChange{
		id:       id,
		parcelID: parcelID,
		from:     from,
		to:       to,
		reason:   reason,
		actor:    actor,
		at:       at,
		guard:    kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the row was constructed through NewStatusChange.
func (c StatusChange) Validate() error {
	return c.guard.Validate(ErrStatusChangeIsNotConstructed)
}

// ID returns the history row's identifier.
func (c StatusChange) ID() kernel.UUID { return c.id }

// ParcelID returns the parcel the row belongs to.
func (c StatusChange) ParcelID() kernel.UUID { return c.parcelID }

// From returns the status the parcel left.
func (c StatusChange) From() Status { return c.from }

// To returns the status the parcel entered.
func (c StatusChange) To() Status { return c.to }

// Reason returns the free-form transition reason.
func (c StatusChange) Reason() string { return c.reason }

// Actor returns who performed the transition.
func (c StatusChange) Actor() string { return c.actor }

// At returns when the transition happened.
func (c StatusChange) At() time.Time { return c.at }
