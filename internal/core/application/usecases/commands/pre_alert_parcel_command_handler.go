package commands

import (
	"context"

	"forwarding/internal/core/domain/model/parcel"
)

// PreAlertParcelCommandHandler registers customer-announced inbound parcels
// in Expected status. Measurements are recorded later, once the parcel
// physically arrives and is put on the scale.
type PreAlertParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewPreAlertParcelCommandHandler creates a handler for parcel pre-alerts.
func NewPreAlertParcelCommandHandler(uowFactory ParcelUoWFactory) PreAlertParcelCommandHandler {
	return PreAlertParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pre-alert command.
func (h *PreAlertParcelCommandHandler) Handle(ctx context.Context, cmd PreAlertParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := parcel.NewParcel(
		cmd.ParcelID(),
		cmd.CustomerID(),
		cmd.WarehouseID(),
		cmd.InboundTracking(),
		cmd.DeclaredValue(),
		cmd.Flags(),
		nil,
		nil,
		parcel.Expected,
	)
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

	if err = uow.ParcelRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
