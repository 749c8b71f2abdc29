package commands

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
)

// ScanItemResult reports the outcome of a scan back to the scanning station.
// Duplicate tells the operator the label was already scanned in this batch;
// the scan is recorded either way.
type ScanItemResult struct {
	ItemID    kernel.UUID
	Duplicate bool
}

// ScanItemCommandHandler records tracking numbers scanned during a batch
// session. The duplicate decision is made here against the authoritative
// batch state, not on the scanning device: two stations scanning the same
// label concurrently race on the batch row, and the second one loses.
type ScanItemCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewScanItemCommandHandler creates a handler for scan recording.
func NewScanItemCommandHandler(uowFactory BatchUoWFactory) ScanItemCommandHandler {
	return ScanItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records one scan and reports whether it was a duplicate.
func (h *ScanItemCommandHandler) Handle(ctx context.Context, cmd ScanItemCommand) (ScanItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return ScanItemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ScanItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	batch, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return ScanItemResult{}, err
	}

	item, err := batch.Scan(cmd.TrackingNumber(), time.Now().UTC())
	if err != nil {
		return ScanItemResult{}, err
	}

	if err = batchRepo.Update(ctx, batch); err != nil {
		return ScanItemResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ScanItemResult{}, err
	}

	return ScanItemResult{ItemID: item.ID(), Duplicate: item.IsDuplicate()}, nil
}
