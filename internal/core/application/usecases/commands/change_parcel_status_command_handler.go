package commands

import (
	"context"
	"time"
)

// ChangeParcelStatusCommandHandler applies operational parcel transitions.
// The adjacency check and the history append live on the aggregate; the
// handler only supplies the transaction.
type ChangeParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewChangeParcelStatusCommandHandler creates a handler for parcel status
// changes.
func NewChangeParcelStatusCommandHandler(uowFactory ParcelUoWFactory) ChangeParcelStatusCommandHandler {
	return ChangeParcelStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
func (h *ChangeParcelStatusCommandHandler) Handle(ctx context.Context, cmd ChangeParcelStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(cmd.To(), cmd.Reason(), cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
