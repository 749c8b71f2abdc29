// Package warehouse holds the read-only warehouse configuration the engine
// consumes, most importantly the volumetric divisor used to derive
// dimensional weight. Warehouse master data is administered elsewhere.
package warehouse

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// ErrWarehouseIsNotConstructed is returned when a Warehouse was not created
// through NewWarehouse.
var ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse constructor")

// Warehouse is a read-only reference record of a receiving warehouse,
// carrying the volumetric divisor and the ancillary fee schedule applied to
// parcels it holds.
type Warehouse struct {
	id                kernel.UUID
	code              string
	volumetricDivisor float64

	handlingFeePerParcel float64
	storageFeePerDay     float64
	freeStorageDays      int
	insurancePercent     float64

	guard kernel.ConstructorGuard
}

// NewWarehouse creates a warehouse record from reference data.
// The volumetric divisor is configuration, never a hardcoded constant.
// Fee fields are decimal major-unit amounts in the warehouse's billing
// currency; insurancePercent is a percentage of declared value.
func NewWarehouse(
	id kernel.UUID,
	code string,
	volumetricDivisor float64,
	handlingFeePerParcel float64,
	storageFeePerDay float64,
	freeStorageDays int,
	insurancePercent float64,
) (*Warehouse, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if volumetricDivisor <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("volumetricDivisor",
			fmt.Errorf("%v is not greater than 0", volumetricDivisor))
	}
	if handlingFeePerParcel < 0 || storageFeePerDay < 0 || insurancePercent < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("fees",
			errors.New("fee rates must not be negative"))
	}
	if freeStorageDays < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("freeStorageDays",
			fmt.Errorf("%v is not greater than or equal to 0", freeStorageDays))
	}

	return &Warehouse{
		id:                   id,
		code:                 code,
		volumetricDivisor:    volumetricDivisor,
		handlingFeePerParcel: handlingFeePerParcel,
		storageFeePerDay:     storageFeePerDay,
		freeStorageDays:      freeStorageDays,
		insurancePercent:     insurancePercent,
		guard:                kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the warehouse was constructed through NewWarehouse.
func (w *Warehouse) Validate() error {
	if w == nil {
		return ErrWarehouseIsNotConstructed
	}
	return w.guard.Validate(ErrWarehouseIsNotConstructed)
}

// ID returns the warehouse's identifier.
func (w *Warehouse) ID() kernel.UUID { return w.id }

// Code returns the short warehouse code.
func (w *Warehouse) Code() string { return w.code }

// VolumetricDivisor returns the divisor for dimensional-weight computation.
func (w *Warehouse) VolumetricDivisor() float64 { return w.volumetricDivisor }

// HandlingFeePerParcel returns the flat handling fee charged per parcel on a
// shipment quote.
func (w *Warehouse) HandlingFeePerParcel() float64 { return w.handlingFeePerParcel }

// StorageFeePerDay returns the per-parcel daily storage fee charged beyond
// the free storage period.
func (w *Warehouse) StorageFeePerDay() float64 { return w.storageFeePerDay }

// FreeStorageDays returns the number of storage days free of charge.
func (w *Warehouse) FreeStorageDays() int { return w.freeStorageDays }

// InsurancePercent returns the insurance charge as a percentage of the
// shipment's declared value.
func (w *Warehouse) InsurancePercent() float64 { return w.insurancePercent }
