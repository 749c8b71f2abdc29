package commands

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/intake"
	"forwarding/internal/core/domain/model/kernel"
)

// AssignItemsCommandHandler assigns scanned items to customers. The whole
// set is validated under row locks before any item is written: if any item
// is a duplicate marker or already assigned, nothing is assigned and the
// error names every offending item.
type AssignItemsCommandHandler struct {
	uowFactory IntakeUoWFactory
}

// NewAssignItemsCommandHandler creates a handler for item assignment.
func NewAssignItemsCommandHandler(uowFactory IntakeUoWFactory) AssignItemsCommandHandler {
	return AssignItemsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command all-or-nothing.
func (h *AssignItemsCommandHandler) Handle(ctx context.Context, cmd AssignItemsCommand) error {
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

	itemRepo := uow.ScannedItemRepository()
	items, err := itemRepo.GetMany(ctx, cmd.ItemIDs())
	if err != nil {
		return err
	}

	var blocked []kernel.UUID
	for _, item := range items {
		if !item.CanAssign() {
			blocked = append(blocked, item.ID())
		}
	}
	if len(blocked) > 0 {
		return &intake.AlreadyAssignedError{ItemIDs: blocked}
	}

	assignedAt := time.Now().UTC()
	for _, item := range items {
		if err = item.Assign(cmd.CustomerID(), assignedAt); err != nil {
			return err
		}
		if err = itemRepo.Update(ctx, item); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
