package services

import (
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/rate"
	"forwarding/internal/core/domain/model/shipment"
)

// Quote is a priced offer for shipping a chargeable weight under one rate.
// BaseRate and WeightCharge are the unrounded intermediate terms; FinalAmount
// carries the single rounding of the calculation.
type Quote struct {
	ServiceType      shipment.ServiceType
	BaseRate         float64
	WeightCharge     float64
	MinChargeApplied bool
	FinalAmount      kernel.Money
}

// RateCalculator prices shipments from reference rate data. It is a pure
// domain service: no side effects, no clock, no storage — just arithmetic
// over the rate it is handed.
type RateCalculator struct{}

// NewRateCalculator creates a rate calculator.
func NewRateCalculator() RateCalculator {
	return RateCalculator{}
}

// Quote prices a chargeable weight under the given rate:
//
//	weightCharge = perKgRate * weight
//	computed     = baseRate + weightCharge
//	finalAmount  = max(computed, minCharge)
//
// Money rounding (half-up, to the rate currency's decimal places) is applied
// exactly once, on the final amount — never on the intermediate terms, so
// quotes for different services stay comparable without compounded rounding
// error. Fails with WeightExceedsLimitError when the weight is beyond the
// rate's maximum.
func (c RateCalculator) Quote(r *rate.Rate, chargeableWeight kernel.Weight) (Quote, error) {
	if err := r.Validate(); err != nil {
		return Quote{}, err
	}
	if err := chargeableWeight.Validate(); err != nil {
		return Quote{}, err
	}

	weightKg := chargeableWeight.Kg()
	if weightKg > r.MaxWeightKg() {
		return Quote{}, &rate.WeightExceedsLimitError{WeightKg: weightKg, MaxWeightKg: r.MaxWeightKg()}
	}

	weightCharge := r.PerKgRate() * weightKg
	computed := r.BaseRate() + weightCharge

	minChargeApplied := computed < r.MinCharge()
	final := computed
	if minChargeApplied {
		final = r.MinCharge()
	}

	amount, err := kernel.MoneyFromDecimal(final, r.Currency())
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		ServiceType:      r.ServiceType(),
		BaseRate:         r.BaseRate(),
		WeightCharge:     weightCharge,
		MinChargeApplied: minChargeApplied,
		FinalAmount:      amount,
	}, nil
}
