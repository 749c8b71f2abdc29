// Package rate holds the read-only shipping reference data the engine
// consumes: rates per (warehouse, zone, service type) and the warehouse
// configuration needed to compute volumetric weights. This data is owned by
// master-data administration and never mutated here.
package rate

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrRateIsNotConstructed is returned when a Rate was not created through
	// NewRate.
	ErrRateIsNotConstructed = errors.New("Rate must be created via NewRate constructor")

	// ErrRateNotFound indicates that no active rate matches a
	// (warehouse, zone, service type) triple.
	ErrRateNotFound = errors.New("no active rate matches warehouse, zone and service type")
)

// WeightExceedsLimitError indicates a chargeable weight beyond the selected
// rate's maximum.
type WeightExceedsLimitError struct {
	WeightKg    float64
	MaxWeightKg float64
}

func (e *WeightExceedsLimitError) Error() string {
	return fmt.Sprintf("chargeable weight %.3f kg exceeds rate limit of %.3f kg", e.WeightKg, e.MaxWeightKg)
}

// Rate maps (warehouse, zone, service type) to a price formula. Monetary
// terms are kept as unrounded decimals: rounding happens once, on the final
// quoted amount, never on intermediate terms.
type Rate struct {
	id          kernel.UUID
	warehouseID kernel.UUID
	zoneID      kernel.UUID
	serviceType shipment.ServiceType
	baseRate    float64
	perKgRate   float64
	minCharge   float64
	maxWeightKg float64
	currency    kernel.Currency
	activeFrom  time.Time
	activeUntil time.Time
	isActive    bool

	guard kernel.ConstructorGuard
}

// NewRate creates a rate record, typically when loading reference data from
// storage. All monetary terms must be non-negative and the weight limit
// positive.
func NewRate(
	id kernel.UUID,
	warehouseID kernel.UUID,
	zoneID kernel.UUID,
	serviceType shipment.ServiceType,
	baseRate, perKgRate, minCharge, maxWeightKg float64,
	currency kernel.Currency,
	activeFrom, activeUntil time.Time,
	isActive bool,
) (*Rate, error) {
	if err := errors.Join(
		id.Validate(),
		warehouseID.Validate(),
		zoneID.Validate(),
		serviceType.Validate(),
		currency.Validate(),
	); err != nil {
		return nil, err
	}
	if baseRate < 0 || perKgRate < 0 || minCharge < 0 {
		return nil, errs.NewValueIsInvalidError("rate terms must not be negative")
	}
	if maxWeightKg <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("maxWeightKg",
			fmt.Errorf("%v is not greater than 0", maxWeightKg))
	}

	return &Rate{
		id:          id,
		warehouseID: warehouseID,
		zoneID:      zoneID,
		serviceType: serviceType,
		baseRate:    baseRate,
		perKgRate:   perKgRate,
		minCharge:   minCharge,
		maxWeightKg: maxWeightKg,
		currency:    currency,
		activeFrom:  activeFrom,
		activeUntil: activeUntil,
		isActive:    isActive,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the rate was constructed through NewRate.
func (r *Rate) Validate() error {
	if r == nil {
		return ErrRateIsNotConstructed
	}
	return r.guard.Validate(ErrRateIsNotConstructed)
}

// ID returns the rate's identifier.
func (r *Rate) ID() kernel.UUID { return r.id }

// Warehouse returns the origin warehouse the rate applies to.
func (r *Rate) Warehouse() kernel.UUID { return r.warehouseID }

// Zone returns the destination zone the rate applies to.
func (r *Rate) Zone() kernel.UUID { return r.zoneID }

// ServiceType returns the service level the rate prices.
func (r *Rate) ServiceType() shipment.ServiceType { return r.serviceType }

// BaseRate returns the flat base term.
func (r *Rate) BaseRate() float64 { return r.baseRate }

// PerKgRate returns the per-kilogram term.
func (r *Rate) PerKgRate() float64 { return r.perKgRate }

// MinCharge returns the minimum charge floor.
func (r *Rate) MinCharge() float64 { return r.minCharge }

// MaxWeightKg returns the heaviest chargeable weight the rate covers.
func (r *Rate) MaxWeightKg() float64 { return r.maxWeightKg }

// Currency returns the currency of the rate's terms.
func (r *Rate) Currency() kernel.Currency { return r.currency }

// ActiveFrom returns the start of the effective window.
func (r *Rate) ActiveFrom() time.Time { return r.activeFrom }

// ActiveUntil returns the end of the effective window.
func (r *Rate) ActiveUntil() time.Time { return r.activeUntil }

// IsEffectiveAt reports whether the rate is active and its effective window
// contains the given time. The calculator only ever picks effective rates.
func (r *Rate) IsEffectiveAt(now time.Time) bool {
	return r.isActive && !now.Before(r.activeFrom) && !now.After(r.activeUntil)
}
