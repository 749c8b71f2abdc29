package commands

import (
	"context"
)

// AttachDocumentCommandHandler records document references on parcels.
type AttachDocumentCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewAttachDocumentCommandHandler creates a handler for document attachment.
func NewAttachDocumentCommandHandler(uowFactory ParcelUoWFactory) AttachDocumentCommandHandler {
	return AttachDocumentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the attachment command.
func (h *AttachDocumentCommandHandler) Handle(ctx context.Context, cmd AttachDocumentCommand) error {
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

	if err = aggregate.AttachDocument(cmd.DocumentID()); err != nil {
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
