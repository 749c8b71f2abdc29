// Package raterepo reads shipping rate and warehouse reference data. Both
// tables are administered by master-data tooling outside this service, so
// the repositories here are read-only and run outside the unit of work.
package raterepo

import (
	"time"

	"github.com/google/uuid"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/rate"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/model/warehouse"
)

// RateDTO represents the database structure for rates.
type RateDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID `gorm:"type:uuid;index:idx_rates_lookup"`
	ZoneID      uuid.UUID `gorm:"type:uuid;index:idx_rates_lookup"`
	ServiceType int       `gorm:"index:idx_rates_lookup"`
	BaseRate    float64   `gorm:""`
	PerKgRate   float64   `gorm:""`
	MinCharge   float64   `gorm:""`
	MaxWeightKg float64   `gorm:""`
	Currency    string    `gorm:""`
	ActiveFrom  time.Time `gorm:""`
	ActiveUntil time.Time `gorm:""`
	IsActive    bool      `gorm:""`
}

// TableName overrides GORM's default naming to use "rates".
func (RateDTO) TableName() string {
	return "rates"
}

// WarehouseDTO represents the database structure for warehouses.
type WarehouseDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code                 string    `gorm:"uniqueIndex"`
	VolumetricDivisor    float64   `gorm:""`
	HandlingFeePerParcel float64   `gorm:""`
	StorageFeePerDay     float64   `gorm:""`
	FreeStorageDays      int       `gorm:""`
	InsurancePercent     float64   `gorm:""`
}

// TableName overrides GORM's default naming to use "warehouses".
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

func rateToDomain(dto RateDTO) (*rate.Rate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}
	currency, err := kernel.CurrencyFromCode(dto.Currency)
	if err != nil {
		return nil, err
	}

	return rate.NewRate(
		id, warehouseID, zoneID,
		shipment.ServiceType(dto.ServiceType),
		dto.BaseRate, dto.PerKgRate, dto.MinCharge, dto.MaxWeightKg,
		currency,
		dto.ActiveFrom, dto.ActiveUntil,
		dto.IsActive,
	)
}

func warehouseToDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return warehouse.NewWarehouse(
		id, dto.Code, dto.VolumetricDivisor,
		dto.HandlingFeePerParcel, dto.StorageFeePerDay,
		dto.FreeStorageDays, dto.InsurancePercent,
	)
}
