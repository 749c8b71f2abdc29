package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrCreateBatchCommandIsNotConstructed = errors.New(
		"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
	)
	ErrExpectedPiecesIsInvalid = errors.New("expectedPieces must be greater than 0")
)

// CreateBatchCommand represents a request to open a scan session for one
// courier delivery.
//
// Example:
//
//	batchID := kernel.NewUUID()
//	cmd, err := NewCreateBatchCommand(batchID, courierID, 12)
//	if err != nil {
//	    return fmt.Errorf("invalid batch data: %w", err)
//	}
//
//	handler := NewCreateBatchCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to open batch: %w", err)
//	}
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID        kernel.UUID
	courierID      kernel.UUID
	expectedPieces int

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand creates a command to open a scan session.
// The expected piece count comes from the courier manifest.
func NewCreateBatchCommand(batchID, courierID kernel.UUID, expectedPieces int) (CreateBatchCommand, error) {
	cmd := CreateBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchID(batchID),
		cmd.setCourierID(courierID),
		cmd.setExpectedPieces(expectedPieces),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

// BatchID returns the identifier for the new batch.
func (c CreateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// CourierID returns the delivering courier's identifier.
func (c CreateBatchCommand) CourierID() kernel.UUID {
	return c.courierID
}

// ExpectedPieces returns the piece count announced by the courier.
func (c CreateBatchCommand) ExpectedPieces() int {
	return c.expectedPieces
}

func (c *CreateBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *CreateBatchCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CreateBatchCommand) setExpectedPieces(expectedPieces int) error {
	if expectedPieces <= 0 {
		return ErrExpectedPiecesIsInvalid
	}

	c.expectedPieces = expectedPieces
	return nil
}
