package commands

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/model/warehouse"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// QuoteShipmentCommandHandler prices shipments. The shipping component comes
// from the rate calculator; insurance, handling and storage come from the
// warehouse fee schedule. The priced quote is stamped with an expiry and the
// calculation trace is stored alongside the breakdown.
type QuoteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	rates      ports.RateRepository
	warehouses ports.WarehouseRepository
	calculator services.RateCalculator
	quoteTTL   time.Duration
}

// NewQuoteShipmentCommandHandler creates a handler for shipment quoting.
// quoteTTL is how long a quote stays payable; it comes from configuration.
func NewQuoteShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	rates ports.RateRepository,
	warehouses ports.WarehouseRepository,
	calculator services.RateCalculator,
	quoteTTL time.Duration,
) QuoteShipmentCommandHandler {
	return QuoteShipmentCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
		warehouses: warehouses,
		calculator: calculator,
		quoteTTL:   quoteTTL,
	}
}

// Handle processes the quote command.
func (h *QuoteShipmentCommandHandler) Handle(ctx context.Context, cmd QuoteShipmentCommand) error {
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
	if !aggregate.Customer().IsEqual(cmd.CustomerID()) {
		return errs.NewObjectNotFoundError("shipmentID", cmd.ShipmentID())
	}

	effectiveRate, err := h.rates.GetEffective(ctx,
		aggregate.Warehouse(), aggregate.DestinationZone(), aggregate.ServiceType(), now)
	if err != nil {
		return err
	}

	quote, err := h.calculator.Quote(effectiveRate, aggregate.TotalWeight())
	if err != nil {
		return err
	}

	wh, err := h.warehouses.Get(ctx, aggregate.Warehouse())
	if err != nil {
		return err
	}

	parcels, err := uow.ParcelRepository().GetMany(ctx, aggregate.Parcels())
	if err != nil {
		return err
	}

	currency := effectiveRate.Currency()
	insurance, err := kernel.MoneyFromDecimal(
		aggregate.DeclaredValue().Decimal()*wh.InsurancePercent()/100, currency)
	if err != nil {
		return err
	}
	handling, err := kernel.MoneyFromDecimal(
		wh.HandlingFeePerParcel()*float64(len(parcels)), currency)
	if err != nil {
		return err
	}
	storage, err := kernel.MoneyFromDecimal(
		wh.StorageFeePerDay()*float64(billableStorageDays(parcels, wh, now)), currency)
	if err != nil {
		return err
	}

	costs, err := shipment.NewCostBreakdown(quote.FinalAmount, insurance, handling, storage)
	if err != nil {
		return err
	}
	trace, err := shipment.NewRateTrace(
		aggregate.DestinationZone(), quote.BaseRate, quote.WeightCharge, quote.MinChargeApplied)
	if err != nil {
		return err
	}

	if err = aggregate.ApplyQuote(costs, trace, now.Add(h.quoteTTL)); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// billableStorageDays sums, over the parcels, the whole days in storage
// beyond the warehouse's free period.
func billableStorageDays(parcels []*parcel.Parcel, wh *warehouse.Warehouse, now time.Time) int {
	days := 0
	for _, p := range parcels {
		if p.ReceivedAt() == nil {
			continue
		}
		stored := int(now.Sub(*p.ReceivedAt()).Hours() / 24)
		if billable := stored - wh.FreeStorageDays(); billable > 0 {
			days += billable
		}
	}
	return days
}
