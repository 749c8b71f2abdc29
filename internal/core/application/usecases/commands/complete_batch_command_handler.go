package commands

import (
	"context"
)

// CompleteBatchCommandHandler closes scan sessions. A batch completes with
// at least one live item; items do not need to be assigned first, assignment
// continues after completion.
type CompleteBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewCompleteBatchCommandHandler creates a handler for batch completion.
func NewCompleteBatchCommandHandler(uowFactory BatchUoWFactory) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch completion command.
func (h *CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) error {
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

	batchRepo := uow.BatchRepository()
	batch, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	if err = batch.Complete(); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, batch); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
