package commands

import (
	"context"
	"log/slog"
	"time"

	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
)

// RecordShipmentProgressCommandHandler advances paid shipments through their
// operational lifecycle. On dispatch, the carrier tracking number is copied
// onto the member parcels; on delivery, the parcels move to Delivered with
// the shipment. Every accepted transition is published as an integration
// event, best-effort.
type RecordShipmentProgressCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRecordShipmentProgressCommandHandler creates a handler for shipment
// progress events.
func NewRecordShipmentProgressCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RecordShipmentProgressCommandHandler {
	return RecordShipmentProgressCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "shipment_progress"),
	}
}

// Handle processes the progress command.
func (h *RecordShipmentProgressCommandHandler) Handle(ctx context.Context, cmd RecordShipmentProgressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = aggregate.RecordProgress(cmd.To(), now); err != nil {
		return err
	}

	switch cmd.To() {
	case shipment.Dispatched:
		if cmd.OutboundTracking() != "" {
			if err = h.stampOutboundTracking(ctx, uow, aggregate, cmd.OutboundTracking()); err != nil {
				return err
			}
		}
	case shipment.Delivered:
		if err = h.deliverParcels(ctx, uow, aggregate, now); err != nil {
			return err
		}
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.ShipmentStatusChanged{
		ShipmentID:     aggregate.ID().String(),
		ShipmentNumber: aggregate.Number(),
		Status:         aggregate.Status().String(),
		OccurredAt:     now,
	}
	if err = h.publisher.PublishShipmentStatusChanged(ctx, event); err != nil {
		h.logger.Warn("failed to publish shipment status event",
			"shipment_id", event.ShipmentID, "error", err)
	}

	return nil
}

func (h *RecordShipmentProgressCommandHandler) stampOutboundTracking(
	ctx context.Context,
	uow ShipmentUoW,
	aggregate *shipment.Shipment,
	trackingNumber string,
) error {
	parcelRepo := uow.ParcelRepository()
	parcels, err := parcelRepo.GetMany(ctx, aggregate.Parcels())
	if err != nil {
		return err
	}
	for _, p := range parcels {
		if err = p.SetOutboundTracking(trackingNumber); err != nil {
			return err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (h *RecordShipmentProgressCommandHandler) deliverParcels(
	ctx context.Context,
	uow ShipmentUoW,
	aggregate *shipment.Shipment,
	now time.Time,
) error {
	parcelRepo := uow.ParcelRepository()
	parcels, err := parcelRepo.GetMany(ctx, aggregate.Parcels())
	if err != nil {
		return err
	}
	for _, p := range parcels {
		if err = p.TransitionTo(parcel.Delivered, "shipment "+aggregate.Number()+" delivered", "system", now); err != nil {
			return err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
