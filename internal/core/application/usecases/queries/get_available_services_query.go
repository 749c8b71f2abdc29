// Package queries contains read-side operations. Database-backed queries
// bypass the aggregates and read projections with raw SQL; the
// available-services query prices against reference data instead and touches
// no state at all.
package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrGetAvailableServicesQueryIsNotConstructed = errors.New(
	"GetAvailableServicesQuery must be created via NewGetAvailableServicesQuery constructor",
)

// GetAvailableServicesQuery asks which service levels can carry a chargeable
// weight from a warehouse to a zone, and at what price.
type GetAvailableServicesQuery struct { //nolint:recvcheck //using for validation
	warehouseID      kernel.UUID
	zoneID           kernel.UUID
	chargeableWeight kernel.Weight

	guard guard.ConstructorGuard
}

// NewGetAvailableServicesQuery creates an available-services query.
func NewGetAvailableServicesQuery(warehouseID, zoneID kernel.UUID, chargeableWeight kernel.Weight) (GetAvailableServicesQuery, error) {
	q := GetAvailableServicesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setWarehouseID(warehouseID),
		q.setZoneID(zoneID),
		q.setChargeableWeight(chargeableWeight),
	); err != nil {
		return GetAvailableServicesQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableServicesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableServicesQueryIsNotConstructed)
}

// WarehouseID returns the origin warehouse.
func (q GetAvailableServicesQuery) WarehouseID() kernel.UUID {
	return q.warehouseID
}

// ZoneID returns the destination zone.
func (q GetAvailableServicesQuery) ZoneID() kernel.UUID {
	return q.zoneID
}

// ChargeableWeight returns the weight to price.
func (q GetAvailableServicesQuery) ChargeableWeight() kernel.Weight {
	return q.chargeableWeight
}

func (q *GetAvailableServicesQuery) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	q.warehouseID = warehouseID
	return nil
}

func (q *GetAvailableServicesQuery) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}

	q.zoneID = zoneID
	return nil
}

func (q *GetAvailableServicesQuery) setChargeableWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}

	q.chargeableWeight = weight
	return nil
}
