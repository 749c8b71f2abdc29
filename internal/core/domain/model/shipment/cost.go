package shipment

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
)

var (
	// ErrCostBreakdownIsNotConstructed is returned when a CostBreakdown was
	// not created through NewCostBreakdown.
	ErrCostBreakdownIsNotConstructed = errors.New("CostBreakdown must be created via NewCostBreakdown constructor")

	// ErrRateTraceIsNotConstructed is returned when a RateTrace was not
	// created through NewRateTrace.
	ErrRateTraceIsNotConstructed = errors.New("RateTrace must be created via NewRateTrace constructor")
)

// CostBreakdown itemizes a shipment's price: shipping, insurance, handling
// and storage in one currency. The total is always the exact sum of the
// components; it is computed here, never supplied.
type CostBreakdown struct {
	shipping  kernel.Money
	insurance kernel.Money
	handling  kernel.Money
	storage   kernel.Money
	total     kernel.Money

	guard kernel.ConstructorGuard
}

// NewCostBreakdown builds a breakdown from the four cost components.
// All components must share one currency.
func NewCostBreakdown(shipping, insurance, handling, storage kernel.Money) (CostBreakdown, error) {
	if err := errors.Join(
		shipping.Validate(),
		insurance.Validate(),
		handling.Validate(),
		storage.Validate(),
	); err != nil {
		return CostBreakdown{}, err
	}

	total := shipping
	var err error
	for _, component := range []kernel.Money{insurance, handling, storage} {
		if total, err = total.Add(component); err != nil {
			return CostBreakdown{}, err
		}
	}

	return CostBreakdown{
		shipping:  shipping,
		insurance: insurance,
		handling:  handling,
		storage:   storage,
		total:     total,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the breakdown was constructed through NewCostBreakdown.
func (c CostBreakdown) Validate() error {
	return c.guard.Validate(ErrCostBreakdownIsNotConstructed)
}

// Shipping returns the shipping component.
func (c CostBreakdown) Shipping() kernel.Money { return c.shipping }

// Insurance returns the insurance component.
func (c CostBreakdown) Insurance() kernel.Money { return c.insurance }

// Handling returns the handling component.
func (c CostBreakdown) Handling() kernel.Money { return c.handling }

// Storage returns the storage component.
func (c CostBreakdown) Storage() kernel.Money { return c.storage }

// Total returns the exact sum of the components.
func (c CostBreakdown) Total() kernel.Money { return c.total }

// Currency returns the shared currency of the breakdown.
func (c CostBreakdown) Currency() kernel.Currency { return c.total.Currency() }

// RateTrace records how a quote was derived: the zone the rate was selected
// for, the base rate and weight charge as unrounded decimals, and whether the
// minimum charge kicked in. Stored as named fields, not a free-form map, so
// the calculator's contract stays statically checkable.
type RateTrace struct {
	zoneID           kernel.UUID
	baseRate         float64
	weightCharge     float64
	minChargeApplied bool

	guard kernel.ConstructorGuard
}

// NewRateTrace builds a calculation trace for a quoted shipment.
func NewRateTrace(zoneID kernel.UUID, baseRate, weightCharge float64, minChargeApplied bool) (RateTrace, error) {
	if err := zoneID.Validate(); err != nil {
		return RateTrace{}, err
	}

	return RateTrace{
		zoneID:           zoneID,
		baseRate:         baseRate,
		weightCharge:     weightCharge,
		minChargeApplied: minChargeApplied,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the trace was constructed through NewRateTrace.
func (t RateTrace) Validate() error {
	return t.guard.Validate(ErrRateTraceIsNotConstructed)
}

// Zone returns the destination zone the rate was selected for.
func (t RateTrace) Zone() kernel.UUID { return t.zoneID }

// BaseRate returns the unrounded base rate term.
func (t RateTrace) BaseRate() float64 { return t.baseRate }

// WeightCharge returns the unrounded per-kg weight charge term.
func (t RateTrace) WeightCharge() float64 { return t.weightCharge }

// MinChargeApplied reports whether the minimum charge replaced the computed
// amount.
func (t RateTrace) MinChargeApplied() bool { return t.minChargeApplied }
