package queries

import (
	"context"
	"errors"
	"sort"
	"time"

	"forwarding/internal/core/domain/model/rate"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

// AvailableServiceResponse is one priced service option.
type AvailableServiceResponse struct {
	ServiceType      string `json:"service_type"`
	AmountMinor      int64  `json:"amount_minor"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	MinChargeApplied bool   `json:"min_charge_applied"`
}

// GetAvailableServicesQueryHandler prices every effective service level for
// a lane and ranks the options by price. Services whose rate cannot carry
// the weight are dropped from the result rather than failing the whole
// query.
type GetAvailableServicesQueryHandler struct {
	rates      ports.RateRepository
	calculator services.RateCalculator
}

// NewGetAvailableServicesQueryHandler creates a handler for service ranking.
func NewGetAvailableServicesQueryHandler(rates ports.RateRepository, calculator services.RateCalculator) GetAvailableServicesQueryHandler {
	return GetAvailableServicesQueryHandler{
		rates:      rates,
		calculator: calculator,
	}
}

// Handle executes the ranking, cheapest option first.
func (h GetAvailableServicesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableServicesQuery,
) ([]AvailableServiceResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	effective, err := h.rates.GetAllEffective(ctx, query.WarehouseID(), query.ZoneID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	options := make([]AvailableServiceResponse, 0, len(effective))
	for _, r := range effective {
		quote, quoteErr := h.calculator.Quote(r, query.ChargeableWeight())
		if quoteErr != nil {
			var limit *rate.WeightExceedsLimitError
			if errors.As(quoteErr, &limit) {
				continue
			}
			return nil, quoteErr
		}

		options = append(options, AvailableServiceResponse{
			ServiceType:      quote.ServiceType.String(),
			AmountMinor:      quote.FinalAmount.AmountMinor(),
			Amount:           quote.FinalAmount.String(),
			Currency:         quote.FinalAmount.Currency().Code(),
			MinChargeApplied: quote.MinChargeApplied,
		})
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].AmountMinor < options[j].AmountMinor
	})

	return options, nil
}
