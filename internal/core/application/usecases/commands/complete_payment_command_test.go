package commands_test

import (
	"testing"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletePaymentCommand_ValidInput(t *testing.T) {
	shipmentID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	cmd, err := commands.NewCompletePaymentCommand(shipmentID, customerID, "pi_3Nx7f2")
	require.NoError(t, err)
	assert.Equal(t, shipmentID, cmd.ShipmentID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, "pi_3Nx7f2", cmd.PaymentReference())
}

func TestNewCompletePaymentCommand_EmptyReference(t *testing.T) {
	_, err := commands.NewCompletePaymentCommand(kernel.NewUUID(), kernel.NewUUID(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPaymentReferenceIsRequired)
}

func TestCompletePaymentCommand_NotConstructed(t *testing.T) {
	var cmd commands.CompletePaymentCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCompletePaymentCommandIsNotConstructed)
}
