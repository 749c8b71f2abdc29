package commands_test

import (
	"context"
	"testing"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConsolidationParcelRepository struct{ mock.Mock }

func (m *MockConsolidationParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsolidationParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsolidationParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockConsolidationParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockConsolidationShipmentRepository struct{ mock.Mock }

func (m *MockConsolidationShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsolidationShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsolidationShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockConsolidationShipmentRepository) HasActiveLink(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	args := m.Called(ctx, parcelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsolidationShipmentRepository) GetQuotedExpiredBefore(ctx context.Context, now time.Time) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockShipmentUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

func usdMoney(t *testing.T, minor int64) kernel.Money {
	t.Helper()
	currency, err := kernel.CurrencyFromCode("USD")
	require.NoError(t, err)
	m, err := kernel.NewMoney(minor, currency)
	require.NoError(t, err)
	return m
}

func readyParcel(t *testing.T, customerID, warehouseID kernel.UUID, weightKg float64, declaredMinor int64) *parcel.Parcel {
	t.Helper()
	receivedAt := time.Now().UTC()
	p, err := parcel.NewParcel(
		kernel.NewUUID(), customerID, warehouseID,
		"TRACK-"+kernel.NewUUID().String()[:8],
		usdMoney(t, declaredMinor),
		parcel.Flags{}, nil, &receivedAt, parcel.Received,
	)
	require.NoError(t, err)

	weight, err := kernel.NewWeight(weightKg)
	require.NoError(t, err)
	dims, err := kernel.NewDimensions(10, 10, 10)
	require.NoError(t, err)
	require.NoError(t, p.RecordMeasurements(weight, dims, 5000))
	require.NoError(t, p.TransitionTo(parcel.ReadyToShip, "shelved", "ops", receivedAt))
	return p
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	first := readyParcel(t, customerID, warehouseID, 2.0, 5000)
	second := readyParcel(t, customerID, warehouseID, 1.5, 3000)
	parcelIDs := []kernel.UUID{first.ID(), second.ID()}

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), customerID, kernel.NewUUID(), shipment.Standard, parcelIDs,
	)
	require.NoError(t, err)

	parcelRepo := new(MockConsolidationParcelRepository)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetMany", ctx, parcelIDs).Return([]*parcel.Parcel{first, second}, nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("HasActiveLink", ctx, first.ID()).Return(false, nil).Once(),
		shipmentRepo.On("HasActiveLink", ctx, second.ID()).Return(false, nil).Once(),
		shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	// Weight and declared value are aggregated from the parcels.
	addCall := shipmentRepo.Calls[2]
	created := addCall.Arguments[1].(*shipment.Shipment)
	assert.Equal(t, shipment.QuoteRequested, created.Status())
	assert.Equal(t, warehouseID, created.Warehouse())
	assert.InDelta(t, 3.5, created.TotalWeight().Kg(), 1e-9)
	assert.Equal(t, int64(8000), created.DeclaredValue().AmountMinor())

	parcelRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_ParcelsNotReady(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	ready := readyParcel(t, customerID, warehouseID, 2.0, 5000)
	receivedAt := time.Now().UTC()
	notReady, err := parcel.NewParcel(
		kernel.NewUUID(), customerID, warehouseID, "TRACK-2",
		usdMoney(t, 1000), parcel.Flags{}, nil, &receivedAt, parcel.Received,
	)
	require.NoError(t, err)
	parcelIDs := []kernel.UUID{ready.ID(), notReady.ID()}

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), customerID, kernel.NewUUID(), shipment.Standard, parcelIDs,
	)
	require.NoError(t, err)

	parcelRepo := new(MockConsolidationParcelRepository)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetMany", ctx, parcelIDs).Return([]*parcel.Parcel{ready, notReady}, nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("HasActiveLink", ctx, ready.ID()).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	var notReadyErr *commands.ParcelsNotReadyError
	require.ErrorAs(t, err, &notReadyErr)
	assert.Equal(t, []kernel.UUID{notReady.ID()}, notReadyErr.ParcelIDs)
	shipmentRepo.AssertNotCalled(t, "Add")
	uow.AssertNotCalled(t, "Commit")
}

func TestCreateShipmentCommandHandler_Handle_ParcelsSpanWarehouses(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()

	first := readyParcel(t, customerID, kernel.NewUUID(), 2.0, 5000)
	second := readyParcel(t, customerID, kernel.NewUUID(), 1.5, 3000)
	parcelIDs := []kernel.UUID{first.ID(), second.ID()}

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), customerID, kernel.NewUUID(), shipment.Standard, parcelIDs,
	)
	require.NoError(t, err)

	parcelRepo := new(MockConsolidationParcelRepository)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetMany", ctx, parcelIDs).Return([]*parcel.Parcel{first, second}, nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("HasActiveLink", ctx, first.ID()).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrParcelsSpanWarehouses)
	uow.AssertNotCalled(t, "Commit")
}

func TestCreateShipmentCommandHandler_Handle_ParcelsAlreadyLinked(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	linked := readyParcel(t, customerID, warehouseID, 2.0, 5000)
	parcelIDs := []kernel.UUID{linked.ID()}

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), customerID, kernel.NewUUID(), shipment.Standard, parcelIDs,
	)
	require.NoError(t, err)

	parcelRepo := new(MockConsolidationParcelRepository)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetMany", ctx, parcelIDs).Return([]*parcel.Parcel{linked}, nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("HasActiveLink", ctx, linked.ID()).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	var linkedErr *commands.ParcelsAlreadyLinkedError
	require.ErrorAs(t, err, &linkedErr)
	assert.Equal(t, []kernel.UUID{linked.ID()}, linkedErr.ParcelIDs)
	uow.AssertNotCalled(t, "Commit")
}

func TestCreateShipmentCommandHandler_Handle_ForeignParcelReportedAsNotFound(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	foreign := readyParcel(t, kernel.NewUUID(), kernel.NewUUID(), 2.0, 5000)
	parcelIDs := []kernel.UUID{foreign.ID()}

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), customerID, kernel.NewUUID(), shipment.Standard, parcelIDs,
	)
	require.NoError(t, err)

	parcelRepo := new(MockConsolidationParcelRepository)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetMany", ctx, parcelIDs).Return([]*parcel.Parcel{foreign}, nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateShipmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var notFoundErr *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateShipmentCommand{} // not constructed properly

	factory := new(MockShipmentUoWFactory)
	handler := commands.NewCreateShipmentCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
