package commands_test

import (
	"testing"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func lapsedQuote(t *testing.T) *shipment.Shipment {
	t.Helper()
	customerID := kernel.NewUUID()
	p := readyParcel(t, customerID, kernel.NewUUID(), 2.0, 3000)
	return quotedShipmentWithParcels(t, customerID, []*parcel.Parcel{p}, time.Now().UTC().Add(-time.Minute))
}

func TestExpireQuotesCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	first := lapsedQuote(t)
	second := lapsedQuote(t)

	cmd, err := commands.NewExpireQuotesCommand()
	require.NoError(t, err)

	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetQuotedExpiredBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*shipment.Shipment{first, second}, nil).Once(),
		shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewExpireQuotesCommandHandler(factory)
	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, expired)

	// Lapsed quotes are cleared so the shipments must be re-quoted.
	assert.Equal(t, shipment.QuoteRequested, first.Status())
	assert.Nil(t, first.Costs())
	assert.Nil(t, first.QuoteExpiresAt())
	assert.Equal(t, shipment.QuoteRequested, second.Status())

	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestExpireQuotesCommandHandler_Handle_NothingToExpire(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewExpireQuotesCommand()
	require.NoError(t, err)

	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetQuotedExpiredBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*shipment.Shipment{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewExpireQuotesCommandHandler(factory)
	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	shipmentRepo.AssertNotCalled(t, "Update")
}
