package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrChangeParcelStatusCommandIsNotConstructed = errors.New(
		"ChangeParcelStatusCommand must be created via NewChangeParcelStatusCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// ChangeParcelStatusCommand represents an operational status change on a
// parcel: receiving, making ready, holding, marking missing or damaged,
// returning or disposing. The actor is mandatory for the audit trail.
type ChangeParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	to       parcel.Status
	reason   string
	actor    string

	guard guard.ConstructorGuard
}

// NewChangeParcelStatusCommand creates a command to move a parcel to a new
// status.
func NewChangeParcelStatusCommand(parcelID kernel.UUID, to parcel.Status, reason, actor string) (ChangeParcelStatusCommand, error) {
	cmd := ChangeParcelStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setTo(to),
		cmd.setActor(actor),
	); err != nil {
		return ChangeParcelStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the parcel to move.
func (c ChangeParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// To returns the target status.
func (c ChangeParcelStatusCommand) To() parcel.Status {
	return c.to
}

// Reason returns the free-form reason, possibly empty.
func (c ChangeParcelStatusCommand) Reason() string {
	return c.reason
}

// Actor returns who requested the change.
func (c ChangeParcelStatusCommand) Actor() string {
	return c.actor
}

func (c *ChangeParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ChangeParcelStatusCommand) setTo(to parcel.Status) error {
	if err := to.Validate(); err != nil {
		return err
	}

	c.to = to
	return nil
}

func (c *ChangeParcelStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
