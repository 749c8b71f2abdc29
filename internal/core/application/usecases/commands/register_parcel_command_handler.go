package commands

import (
	"context"

	"forwarding/internal/core/domain/model/intake"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/ports"
)

// RegisterParcelCommandHandler converts assigned scanned items into parcels.
// The item must be assigned and not yet converted; an item converts into
// exactly one parcel, enforced under the item's row lock. Volumetric and
// chargeable weights are derived here using the warehouse's divisor.
type RegisterParcelCommandHandler struct {
	uowFactory IntakeUoWFactory
	warehouses ports.WarehouseRepository
}

// NewRegisterParcelCommandHandler creates a handler for parcel registration.
func NewRegisterParcelCommandHandler(uowFactory IntakeUoWFactory, warehouses ports.WarehouseRepository) RegisterParcelCommandHandler {
	return RegisterParcelCommandHandler{
		uowFactory: uowFactory,
		warehouses: warehouses,
	}
}

// Handle processes the registration command: the parcel insert and the
// item's conversion mark commit together or not at all.
func (h *RegisterParcelCommandHandler) Handle(ctx context.Context, cmd RegisterParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	wh, err := h.warehouses.Get(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ScannedItemRepository()
	item, err := itemRepo.Get(ctx, cmd.ScannedItemID())
	if err != nil {
		return err
	}
	if item.Customer() == nil {
		return intake.ErrItemNotAssigned
	}

	receivedAt := item.ScannedAt()
	scannedItemID := item.ID()
	aggregate, err := parcel.NewParcel(
		cmd.ParcelID(),
		*item.Customer(),
		cmd.WarehouseID(),
		item.TrackingNumber(),
		cmd.DeclaredValue(),
		cmd.Flags(),
		&scannedItemID,
		&receivedAt,
		parcel.Received,
	)
	if err != nil {
		return err
	}

	if err = aggregate.RecordMeasurements(cmd.Weight(), cmd.Dimensions(), wh.VolumetricDivisor()); err != nil {
		return err
	}
	if err = item.MarkConverted(aggregate.ID()); err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, aggregate); err != nil {
		return err
	}
	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
