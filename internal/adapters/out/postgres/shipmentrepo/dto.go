// Package shipmentrepo persists shipment aggregates and their parcel
// membership rows. A membership row counts as active while its shipment is
// neither cancelled nor refunded; that predicate is what keeps a parcel in
// at most one live shipment.
package shipmentrepo

import (
	"time"

	"github.com/google/uuid"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
)

// ShipmentDTO represents the database structure for shipments. Quote
// columns are nullable and filled together when a quote is applied; the
// expiry sweep nulls them together as well.
type ShipmentDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number            string    `gorm:"uniqueIndex"`
	CustomerID        uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID       uuid.UUID `gorm:"type:uuid"`
	DestinationZoneID uuid.UUID `gorm:"type:uuid"`
	ServiceType       int       `gorm:""`
	Status            int       `gorm:"index"`

	TotalWeightKg      float64 `gorm:""`
	DeclaredValueMinor int64   `gorm:""`
	DeclaredCurrency   string  `gorm:""`

	ShippingMinor  *int64  `gorm:""`
	InsuranceMinor *int64  `gorm:""`
	HandlingMinor  *int64  `gorm:""`
	StorageMinor   *int64  `gorm:""`
	TotalMinor     *int64  `gorm:""`
	Currency       *string `gorm:""`

	TraceZoneID           *uuid.UUID `gorm:"type:uuid"`
	TraceBaseRate         *float64   `gorm:""`
	TraceWeightCharge     *float64   `gorm:""`
	TraceMinChargeApplied *bool      `gorm:""`

	QuoteExpiresAt   *time.Time `gorm:"index"`
	PaymentReference *string    `gorm:""`
	PaidAt           *time.Time `gorm:""`
	DispatchedAt     *time.Time `gorm:""`
	DeliveredAt      *time.Time `gorm:""`

	Parcels []ShipmentParcelDTO `gorm:"foreignKey:ShipmentID"`
}

// TableName overrides GORM's default naming to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ShipmentParcelDTO is one parcel membership row of a shipment.
type ShipmentParcelDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName overrides GORM's default naming to use "shipment_parcels".
func (ShipmentParcelDTO) TableName() string {
	return "shipment_parcels"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:                 aggregate.ID().Bytes(),
		Number:             aggregate.Number(),
		CustomerID:         aggregate.Customer().Bytes(),
		WarehouseID:        aggregate.Warehouse().Bytes(),
		DestinationZoneID:  aggregate.DestinationZone().Bytes(),
		ServiceType:        int(aggregate.ServiceType()),
		Status:             int(aggregate.Status()),
		TotalWeightKg:      aggregate.TotalWeight().Kg(),
		DeclaredValueMinor: aggregate.DeclaredValue().AmountMinor(),
		DeclaredCurrency:   aggregate.DeclaredValue().Currency().Code(),
		QuoteExpiresAt:     aggregate.QuoteExpiresAt(),
		PaidAt:             aggregate.PaidAt(),
		DispatchedAt:       aggregate.DispatchedAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
	}

	if costs := aggregate.Costs(); costs != nil {
		shipping := costs.Shipping().AmountMinor()
		insurance := costs.Insurance().AmountMinor()
		handling := costs.Handling().AmountMinor()
		storage := costs.Storage().AmountMinor()
		total := costs.Total().AmountMinor()
		currency := costs.Currency().Code()
		dto.ShippingMinor = &shipping
		dto.InsuranceMinor = &insurance
		dto.HandlingMinor = &handling
		dto.StorageMinor = &storage
		dto.TotalMinor = &total
		dto.Currency = &currency
	}

	if trace := aggregate.Trace(); trace != nil {
		zoneID := trace.Zone().Bytes()
		baseRate := trace.BaseRate()
		weightCharge := trace.WeightCharge()
		minApplied := trace.MinChargeApplied()
		dto.TraceZoneID = &zoneID
		dto.TraceBaseRate = &baseRate
		dto.TraceWeightCharge = &weightCharge
		dto.TraceMinChargeApplied = &minApplied
	}

	if ref := aggregate.PaymentReference(); ref != "" {
		dto.PaymentReference = &ref
	}

	for _, parcelID := range aggregate.Parcels() {
		dto.Parcels = append(dto.Parcels, ShipmentParcelDTO{
			ShipmentID: aggregate.ID().Bytes(),
			ParcelID:   parcelID.Bytes(),
		})
	}

	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.DestinationZoneID[:])
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.Parcels))
	for _, memberDTO := range dto.Parcels {
		parcelID, memberErr := kernel.UUIDFromBytes(memberDTO.ParcelID[:])
		if memberErr != nil {
			return nil, memberErr
		}
		parcelIDs = append(parcelIDs, parcelID)
	}

	totalWeight, err := kernel.NewWeight(dto.TotalWeightKg)
	if err != nil {
		return nil, err
	}
	declaredCurrency, err := kernel.CurrencyFromCode(dto.DeclaredCurrency)
	if err != nil {
		return nil, err
	}
	declaredValue, err := kernel.NewMoney(dto.DeclaredValueMinor, declaredCurrency)
	if err != nil {
		return nil, err
	}

	var costs *shipment.CostBreakdown
	if dto.Currency != nil && dto.ShippingMinor != nil {
		currency, costErr := kernel.CurrencyFromCode(*dto.Currency)
		if costErr != nil {
			return nil, costErr
		}
		breakdown, costErr := restoreCosts(dto, currency)
		if costErr != nil {
			return nil, costErr
		}
		costs = &breakdown
	}

	var trace *shipment.RateTrace
	if dto.TraceZoneID != nil {
		traceZone, traceErr := kernel.UUIDFromBytes((*dto.TraceZoneID)[:])
		if traceErr != nil {
			return nil, traceErr
		}
		t, traceErr := shipment.NewRateTrace(traceZone, *dto.TraceBaseRate, *dto.TraceWeightCharge, *dto.TraceMinChargeApplied)
		if traceErr != nil {
			return nil, traceErr
		}
		trace = &t
	}

	paymentReference := ""
	if dto.PaymentReference != nil {
		paymentReference = *dto.PaymentReference
	}

	return shipment.RestoreShipment(
		id, dto.Number, customerID, warehouseID, zoneID,
		shipment.ServiceType(dto.ServiceType),
		shipment.Status(dto.Status),
		parcelIDs,
		totalWeight, declaredValue,
		costs, trace,
		dto.QuoteExpiresAt,
		paymentReference,
		dto.PaidAt, dto.DispatchedAt, dto.DeliveredAt,
	)
}

func restoreCosts(dto ShipmentDTO, currency kernel.Currency) (shipment.CostBreakdown, error) {
	shipping, err := kernel.NewMoney(*dto.ShippingMinor, currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	insurance, err := kernel.NewMoney(*dto.InsuranceMinor, currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	handling, err := kernel.NewMoney(*dto.HandlingMinor, currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	storage, err := kernel.NewMoney(*dto.StorageMinor, currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}

	return shipment.NewCostBreakdown(shipping, insurance, handling, storage)
}
