package commands

import (
	"context"
	"fmt"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrParcelsSpanWarehouses indicates a consolidation attempt over parcels
	// held in different warehouses. A shipment departs from one warehouse.
	ErrParcelsSpanWarehouses = fmt.Errorf("parcels must all be held in one warehouse")
)

// ParcelsNotReadyError reports a consolidation over parcels that are not in
// ReadyToShip status, naming every offender.
type ParcelsNotReadyError struct {
	ParcelIDs []kernel.UUID
}

func (e *ParcelsNotReadyError) Error() string {
	return fmt.Sprintf("parcels are not ready to ship: %v", formatIDs(e.ParcelIDs))
}

// ParcelsAlreadyLinkedError reports a consolidation over parcels that are
// already members of an active shipment, naming every offender.
type ParcelsAlreadyLinkedError struct {
	ParcelIDs []kernel.UUID
}

func (e *ParcelsAlreadyLinkedError) Error() string {
	return fmt.Sprintf("parcels already belong to an active shipment: %v", formatIDs(e.ParcelIDs))
}

func formatIDs(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// CreateShipmentCommandHandler consolidates ready parcels into shipments.
// Membership rules are enforced under the parcels' row locks: every parcel
// must be ReadyToShip, owned by the requesting customer, held in one
// warehouse and not linked to another active shipment. Total weight and
// declared value are aggregated from the parcels here, never taken from the
// request.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipment creation command.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
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

	parcels, err := uow.ParcelRepository().GetMany(ctx, cmd.ParcelIDs())
	if err != nil {
		return err
	}

	shipmentRepo := uow.ShipmentRepository()

	var notReady, linked []kernel.UUID
	warehouseID := parcels[0].Warehouse()
	var totalWeight kernel.Weight
	var declaredValue kernel.Money
	seeded := false
	for _, p := range parcels {
		// Foreign parcels are reported as not found, not as forbidden.
		if !p.Customer().IsEqual(cmd.CustomerID()) {
			return errs.NewObjectNotFoundError("parcelID", p.ID())
		}
		if !p.Warehouse().IsEqual(warehouseID) {
			return ErrParcelsSpanWarehouses
		}
		if p.Status() != parcel.ReadyToShip || p.ChargeableWeight() == nil {
			notReady = append(notReady, p.ID())
			continue
		}

		active, linkErr := shipmentRepo.HasActiveLink(ctx, p.ID())
		if linkErr != nil {
			return linkErr
		}
		if active {
			linked = append(linked, p.ID())
			continue
		}

		if !seeded {
			totalWeight = *p.ChargeableWeight()
			declaredValue = p.DeclaredValue()
			seeded = true
			continue
		}
		totalWeight = totalWeight.Add(*p.ChargeableWeight())
		if declaredValue, err = declaredValue.Add(p.DeclaredValue()); err != nil {
			return err
		}
	}
	if len(notReady) > 0 {
		return &ParcelsNotReadyError{ParcelIDs: notReady}
	}
	if len(linked) > 0 {
		return &ParcelsAlreadyLinkedError{ParcelIDs: linked}
	}

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(),
		shipmentNumber(cmd.ShipmentID()),
		cmd.CustomerID(),
		warehouseID,
		cmd.DestinationZoneID(),
		cmd.ServiceType(),
		cmd.ParcelIDs(),
		totalWeight,
		declaredValue,
	)
	if err != nil {
		return err
	}

	if err = shipmentRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// shipmentNumber derives the human-facing number from the shipment id.
func shipmentNumber(id kernel.UUID) string {
	return "SHP-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}
