package parcel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forwarding/internal/core/domain/model/parcel"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    parcel.Status
		to      parcel.Status
		allowed bool
	}{
		{name: "expected to received", from: parcel.Expected, to: parcel.Received, allowed: true},
		{name: "received to ready", from: parcel.Received, to: parcel.ReadyToShip, allowed: true},
		{name: "ready to shipped", from: parcel.ReadyToShip, to: parcel.Shipped, allowed: true},
		{name: "shipped to delivered", from: parcel.Shipped, to: parcel.Delivered, allowed: true},
		{name: "received to held", from: parcel.Received, to: parcel.Held, allowed: true},
		{name: "held released back to ready", from: parcel.Held, to: parcel.ReadyToShip, allowed: true},
		{name: "missing found back to received", from: parcel.Missing, to: parcel.Received, allowed: true},
		{name: "damaged to disposed", from: parcel.Damaged, to: parcel.Disposed, allowed: true},

		{name: "expected cannot skip to ready", from: parcel.Expected, to: parcel.ReadyToShip, allowed: false},
		{name: "expected cannot skip to shipped", from: parcel.Expected, to: parcel.Shipped, allowed: false},
		{name: "received cannot skip to shipped", from: parcel.Received, to: parcel.Shipped, allowed: false},
		{name: "shipped cannot go back", from: parcel.Shipped, to: parcel.ReadyToShip, allowed: false},
		{name: "delivered is terminal", from: parcel.Delivered, to: parcel.Returned, allowed: false},
		{name: "returned is terminal", from: parcel.Returned, to: parcel.Received, allowed: false},
		{name: "disposed is terminal", from: parcel.Disposed, to: parcel.Received, allowed: false},
		{name: "damaged cannot recover to ready", from: parcel.Damaged, to: parcel.ReadyToShip, allowed: false},
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

			var transitionErr *parcel.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, tt.to, transitionErr.To)
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, parcel.Delivered.IsTerminal())
	assert.True(t, parcel.Returned.IsTerminal())
	assert.True(t, parcel.Disposed.IsTerminal())
	assert.False(t, parcel.Received.IsTerminal())
	assert.False(t, parcel.Held.IsTerminal())
}

func TestStatusFromString(t *testing.T) {
	status, err := parcel.StatusFromString("ReadyToShip")
	require.NoError(t, err)
	assert.Equal(t, parcel.ReadyToShip, status)

	_, err = parcel.StatusFromString("Unknown")
	assert.Error(t, err)

	_, err = parcel.StatusFromString("nonsense")
	assert.Error(t, err)
}

func TestStatusValidate(t *testing.T) {
	assert.NoError(t, parcel.Received.Validate())
	assert.Error(t, parcel.StatusUnknown.Validate())
	assert.Error(t, parcel.Status(99).Validate())
}
