package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/rate"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/services"
)

func testRate(t *testing.T, baseRate, perKgRate, minCharge, maxWeightKg float64) *rate.Rate {
	t.Helper()
	currency, err := kernel.CurrencyFromCode("USD")
	require.NoError(t, err)

	r, err := rate.NewRate(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		shipment.Standard,
		baseRate, perKgRate, minCharge, maxWeightKg,
		currency,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour),
		true,
	)
	require.NoError(t, err)
	return r
}

func TestRateCalculator_Quote(t *testing.T) {
	calculator := services.NewRateCalculator()

	tests := []struct {
		name             string
		baseRate         float64
		perKgRate        float64
		minCharge        float64
		weightKg         float64
		wantMinor        int64
		wantMinApplied   bool
		wantWeightCharge float64
	}{
		{
			name:     "computed above minimum",
			baseRate: 10.00, perKgRate: 2.50, minCharge: 12.00,
			weightKg:  2.0,
			wantMinor: 1500, wantMinApplied: false, wantWeightCharge: 5.00,
		},
		{
			name:     "minimum charge floor applies",
			baseRate: 10.00, perKgRate: 0.50, minCharge: 12.00,
			weightKg:  2.0,
			wantMinor: 1200, wantMinApplied: true, wantWeightCharge: 1.00,
		},
		{
			name:     "computed exactly at minimum is not flagged",
			baseRate: 10.00, perKgRate: 1.00, minCharge: 12.00,
			weightKg:  2.0,
			wantMinor: 1200, wantMinApplied: false, wantWeightCharge: 2.00,
		},
		{
			name:     "fractional result rounds half up once",
			baseRate: 10.00, perKgRate: 2.53, minCharge: 0,
			weightKg: 1.5,
			// 10 + 3.795 = 13.795 -> 13.80
			wantMinor: 1380, wantMinApplied: false, wantWeightCharge: 3.795,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRate(t, tt.baseRate, tt.perKgRate, tt.minCharge, 30)
			weight, err := kernel.NewWeight(tt.weightKg)
			require.NoError(t, err)

			quote, err := calculator.Quote(r, weight)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMinor, quote.FinalAmount.AmountMinor())
			assert.Equal(t, tt.wantMinApplied, quote.MinChargeApplied)
			assert.Equal(t, tt.baseRate, quote.BaseRate)
			assert.InDelta(t, tt.wantWeightCharge, quote.WeightCharge, 1e-9)
			assert.Equal(t, shipment.Standard, quote.ServiceType)
		})
	}
}

func TestRateCalculator_Quote_WeightExceedsLimit(t *testing.T) {
	calculator := services.NewRateCalculator()
	r := testRate(t, 10.00, 2.50, 12.00, 30)

	weight, err := kernel.NewWeight(30.5)
	require.NoError(t, err)

	_, err = calculator.Quote(r, weight)
	require.Error(t, err)

	var limitErr *rate.WeightExceedsLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 30.5, limitErr.WeightKg)
	assert.Equal(t, 30.0, limitErr.MaxWeightKg)
}

func TestRateCalculator_Quote_WeightAtLimitIsAccepted(t *testing.T) {
	calculator := services.NewRateCalculator()
	r := testRate(t, 10.00, 2.50, 0, 30)

	weight, err := kernel.NewWeight(30)
	require.NoError(t, err)

	quote, err := calculator.Quote(r, weight)
	require.NoError(t, err)
	assert.Equal(t, int64(8500), quote.FinalAmount.AmountMinor())
}

func TestRateCalculator_Quote_UnconstructedRate(t *testing.T) {
	calculator := services.NewRateCalculator()

	weight, err := kernel.NewWeight(1)
	require.NoError(t, err)

	_, err = calculator.Quote(&rate.Rate{}, weight)
	require.ErrorIs(t, err, rate.ErrRateIsNotConstructed)
}
