package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrScanItemCommandIsNotConstructed = errors.New(
		"ScanItemCommand must be created via NewScanItemCommand constructor",
	)
	ErrTrackingNumberIsRequired = errors.New("trackingNumber is required")
)

// ScanItemCommand represents one tracking number read off a label during a
// scan session.
type ScanItemCommand struct { //nolint:recvcheck //using for validation
	batchID        kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewScanItemCommand creates a command to record a scanned tracking number.
func NewScanItemCommand(batchID kernel.UUID, trackingNumber string) (ScanItemCommand, error) {
	cmd := ScanItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchID(batchID),
		cmd.setTrackingNumber(trackingNumber),
	); err != nil {
		return ScanItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScanItemCommand) Validate() error {
	return c.guard.Validate(ErrScanItemCommandIsNotConstructed)
}

// BatchID returns the scan session the item belongs to.
func (c ScanItemCommand) BatchID() kernel.UUID {
	return c.batchID
}

// TrackingNumber returns the scanned tracking number.
func (c ScanItemCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *ScanItemCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *ScanItemCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	c.trackingNumber = trackingNumber
	return nil
}
