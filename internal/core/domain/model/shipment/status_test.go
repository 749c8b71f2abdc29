package shipment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forwarding/internal/core/domain/model/shipment"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    shipment.Status
		to      shipment.Status
		allowed bool
	}{
		{name: "quote requested to quoted", from: shipment.QuoteRequested, to: shipment.Quoted, allowed: true},
		{name: "quoted to paid", from: shipment.Quoted, to: shipment.Paid, allowed: true},
		{name: "quoted back to quote requested on expiry", from: shipment.Quoted, to: shipment.QuoteRequested, allowed: true},
		{name: "paid to processing", from: shipment.Paid, to: shipment.Processing, allowed: true},
		{name: "processing to dispatched", from: shipment.Processing, to: shipment.Dispatched, allowed: true},
		{name: "dispatched to in transit", from: shipment.Dispatched, to: shipment.InTransit, allowed: true},
		{name: "in transit to out for delivery", from: shipment.InTransit, to: shipment.OutForDelivery, allowed: true},
		{name: "out for delivery to delivered", from: shipment.OutForDelivery, to: shipment.Delivered, allowed: true},
		{name: "failed delivery retried", from: shipment.DeliveryFailed, to: shipment.OutForDelivery, allowed: true},
		{name: "returned to refunded", from: shipment.Returned, to: shipment.Refunded, allowed: true},
		{name: "cancel before payment", from: shipment.QuoteRequested, to: shipment.Cancelled, allowed: true},
		{name: "cancel quoted", from: shipment.Quoted, to: shipment.Cancelled, allowed: true},
		{name: "refund after payment", from: shipment.Paid, to: shipment.Refunded, allowed: true},

		{name: "cannot pay without quote", from: shipment.QuoteRequested, to: shipment.Paid, allowed: false},
		{name: "cannot cancel after payment", from: shipment.Paid, to: shipment.Cancelled, allowed: false},
		{name: "cannot refund before payment", from: shipment.Quoted, to: shipment.Refunded, allowed: false},
		{name: "cannot skip dispatch", from: shipment.Processing, to: shipment.InTransit, allowed: false},
		{name: "delivered is terminal", from: shipment.Delivered, to: shipment.Returned, allowed: false},
		{name: "cancelled is terminal", from: shipment.Cancelled, to: shipment.QuoteRequested, allowed: false},
		{name: "refunded is terminal", from: shipment.Refunded, to: shipment.Paid, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))

			got, err := tt.from.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
				return
			}

			var transitionErr *shipment.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
		})
	}
}

func TestStatusFromString(t *testing.T) {
	status, err := shipment.StatusFromString("OutForDelivery")
	require.NoError(t, err)
	assert.Equal(t, shipment.OutForDelivery, status)

	_, err = shipment.StatusFromString("bogus")
	assert.Error(t, err)
}

func TestServiceTypeFromString(t *testing.T) {
	serviceType, err := shipment.ServiceTypeFromString("Express")
	require.NoError(t, err)
	assert.Equal(t, shipment.Express, serviceType)

	_, err = shipment.ServiceTypeFromString("Unknown")
	assert.Error(t, err)
}

func TestAllServiceTypes(t *testing.T) {
	assert.Equal(t, []shipment.ServiceType{shipment.Economy, shipment.Standard, shipment.Express}, shipment.AllServiceTypes())
	for _, serviceType := range shipment.AllServiceTypes() {
		assert.NoError(t, serviceType.Validate())
	}
}
