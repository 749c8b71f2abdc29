package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/invoice"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentVerifier struct{ mock.Mock }

func (m *MockPaymentVerifier) Verify(ctx context.Context, reference string) (ports.PaymentVerification, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(ports.PaymentVerification), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishShipmentStatusChanged(ctx context.Context, event ports.ShipmentStatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockBillingInvoiceRepository struct{ mock.Mock }

func (m *MockBillingInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBillingInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockBillingInvoiceRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

type MockBillingUoW struct{ mock.Mock }

func (m *MockBillingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillingUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockBillingUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockBillingUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

type MockBillingUoWFactory struct{ mock.Mock }

func (m *MockBillingUoWFactory) Create() commands.BillingUoW {
	args := m.Called()
	return args.Get(0).(commands.BillingUoW)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// quotedShipmentWithParcels builds a Quoted shipment over the given ready
// parcels, priced at 1500+240+600+0 = 2340 minor units USD.
func quotedShipmentWithParcels(t *testing.T, customerID kernel.UUID, parcels []*parcel.Parcel, expiresAt time.Time) *shipment.Shipment {
	t.Helper()

	parcelIDs := make([]kernel.UUID, 0, len(parcels))
	totalWeight, err := kernel.NewWeight(0.001)
	require.NoError(t, err)
	for _, p := range parcels {
		parcelIDs = append(parcelIDs, p.ID())
		totalWeight = totalWeight.Add(*p.ChargeableWeight())
	}

	aggregate, err := shipment.NewShipment(
		kernel.NewUUID(), "SHP-TEST-0001", customerID,
		parcels[0].Warehouse(), kernel.NewUUID(),
		shipment.Standard, parcelIDs, totalWeight, usdMoney(t, 5000),
	)
	require.NoError(t, err)

	costs, err := shipment.NewCostBreakdown(
		usdMoney(t, 1500), usdMoney(t, 240), usdMoney(t, 600), usdMoney(t, 0),
	)
	require.NoError(t, err)
	trace, err := shipment.NewRateTrace(aggregate.DestinationZone(), 10.00, 5.00, false)
	require.NoError(t, err)
	require.NoError(t, aggregate.ApplyQuote(costs, trace, expiresAt))
	return aggregate
}

func TestCompletePaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	first := readyParcel(t, customerID, warehouseID, 2.0, 3000)
	second := readyParcel(t, customerID, warehouseID, 1.0, 2000)
	parcels := []*parcel.Parcel{first, second}
	aggregate := quotedShipmentWithParcels(t, customerID, parcels, time.Now().UTC().Add(time.Hour))

	cmd, err := commands.NewCompletePaymentCommand(aggregate.ID(), customerID, "pay_abc123")
	require.NoError(t, err)

	verifier := new(MockPaymentVerifier)
	publisher := new(MockEventPublisher)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	parcelRepo := new(MockConsolidationParcelRepository)
	invoiceRepo := new(MockBillingInvoiceRepository)
	uow := new(MockBillingUoW)

	mock.InOrder(
		verifier.On("Verify", ctx, "pay_abc123").Return(ports.PaymentVerification{
			Reference: "pay_abc123", Succeeded: true, AmountMinor: 2340, CurrencyCode: "USD",
		}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetMany", ctx, aggregate.Parcels()).Return(parcels, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Twice(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("Add", ctx, mock.AnythingOfType("*invoice.Invoice")).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishShipmentStatusChanged", ctx, mock.AnythingOfType("ports.ShipmentStatusChanged")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompletePaymentCommandHandler(factory, verifier, publisher, testLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.AlreadyProcessed)
	assert.NotEmpty(t, result.InvoiceNumber)

	assert.Equal(t, shipment.Paid, aggregate.Status())
	assert.Equal(t, "pay_abc123", aggregate.PaymentReference())
	assert.Equal(t, parcel.Shipped, first.Status())
	assert.Equal(t, parcel.Shipped, second.Status())

	// The committed invoice totals exactly the quoted amount.
	addCall := invoiceRepo.Calls[0]
	record := addCall.Arguments[1].(*invoice.Invoice)
	assert.Equal(t, int64(2340), record.Total().AmountMinor())
	var lineSum int64
	for _, line := range record.Lines() {
		lineSum += line.LineTotal().AmountMinor()
	}
	assert.Equal(t, record.Total().AmountMinor(), lineSum)

	verifier.AssertExpectations(t)
	publisher.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	parcelRepo.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCompletePaymentCommandHandler_Handle_ReplayReturnsExistingInvoice(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	p := readyParcel(t, customerID, warehouseID, 2.0, 3000)
	aggregate := quotedShipmentWithParcels(t, customerID, []*parcel.Parcel{p}, time.Now().UTC().Add(time.Hour))
	require.NoError(t, aggregate.MarkPaid("pay_abc123", time.Now().UTC()))

	existing, err := invoice.ForPaidShipment(
		kernel.NewUUID(), "INV-EXISTING", aggregate.ID(), customerID,
		usdMoney(t, 1500), usdMoney(t, 240), usdMoney(t, 600), usdMoney(t, 0),
		1, "pay_abc123", time.Now().UTC(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewCompletePaymentCommand(aggregate.ID(), customerID, "pay_abc123")
	require.NoError(t, err)

	verifier := new(MockPaymentVerifier)
	publisher := new(MockEventPublisher)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	invoiceRepo := new(MockBillingInvoiceRepository)
	uow := new(MockBillingUoW)

	mock.InOrder(
		verifier.On("Verify", ctx, "pay_abc123").Return(ports.PaymentVerification{
			Reference: "pay_abc123", Succeeded: true, AmountMinor: 2340, CurrencyCode: "USD",
		}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("GetByShipment", ctx, aggregate.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompletePaymentCommandHandler(factory, verifier, publisher, testLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.AlreadyProcessed)
	assert.Equal(t, existing.ID(), result.InvoiceID)
	assert.Equal(t, "INV-EXISTING", result.InvoiceNumber)

	invoiceRepo.AssertNotCalled(t, "Add")
	uow.AssertNotCalled(t, "Commit")
	publisher.AssertNotCalled(t, "PublishShipmentStatusChanged")
}

func TestCompletePaymentCommandHandler_Handle_PaymentNotSucceeded(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	p := readyParcel(t, customerID, kernel.NewUUID(), 2.0, 3000)
	aggregate := quotedShipmentWithParcels(t, customerID, []*parcel.Parcel{p}, time.Now().UTC().Add(time.Hour))

	cmd, err := commands.NewCompletePaymentCommand(aggregate.ID(), customerID, "pay_failed")
	require.NoError(t, err)

	verifier := new(MockPaymentVerifier)
	publisher := new(MockEventPublisher)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockBillingUoW)

	mock.InOrder(
		verifier.On("Verify", ctx, "pay_failed").Return(ports.PaymentVerification{
			Reference: "pay_failed", Succeeded: false,
		}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompletePaymentCommandHandler(factory, verifier, publisher, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrPaymentNotSucceeded)
	assert.Equal(t, shipment.Quoted, aggregate.Status())
	uow.AssertNotCalled(t, "Commit")
}

func TestCompletePaymentCommandHandler_Handle_AmountMismatch(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	p := readyParcel(t, customerID, kernel.NewUUID(), 2.0, 3000)
	aggregate := quotedShipmentWithParcels(t, customerID, []*parcel.Parcel{p}, time.Now().UTC().Add(time.Hour))

	cmd, err := commands.NewCompletePaymentCommand(aggregate.ID(), customerID, "pay_short")
	require.NoError(t, err)

	verifier := new(MockPaymentVerifier)
	publisher := new(MockEventPublisher)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockBillingUoW)

	mock.InOrder(
		verifier.On("Verify", ctx, "pay_short").Return(ports.PaymentVerification{
			Reference: "pay_short", Succeeded: true, AmountMinor: 2000, CurrencyCode: "USD",
		}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompletePaymentCommandHandler(factory, verifier, publisher, testLogger())
	_, err = handler.Handle(ctx, cmd)

	var mismatchErr *commands.AmountMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, int64(2340), mismatchErr.ExpectedMinor)
	assert.Equal(t, int64(2000), mismatchErr.ActualMinor)
	assert.Equal(t, "USD", mismatchErr.CurrencyCode)
	assert.Equal(t, shipment.Quoted, aggregate.Status())
}

func TestCompletePaymentCommandHandler_Handle_ExpiredQuote(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	p := readyParcel(t, customerID, kernel.NewUUID(), 2.0, 3000)
	aggregate := quotedShipmentWithParcels(t, customerID, []*parcel.Parcel{p}, time.Now().UTC().Add(-time.Minute))

	cmd, err := commands.NewCompletePaymentCommand(aggregate.ID(), customerID, "pay_late")
	require.NoError(t, err)

	verifier := new(MockPaymentVerifier)
	publisher := new(MockEventPublisher)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockBillingUoW)

	mock.InOrder(
		verifier.On("Verify", ctx, "pay_late").Return(ports.PaymentVerification{
			Reference: "pay_late", Succeeded: true, AmountMinor: 2340, CurrencyCode: "USD",
		}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompletePaymentCommandHandler(factory, verifier, publisher, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, shipment.ErrQuoteExpired)
	assert.Equal(t, shipment.Quoted, aggregate.Status())
	uow.AssertNotCalled(t, "Commit")
}

func TestCompletePaymentCommandHandler_Handle_ForeignShipmentReportedAsNotFound(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	owner := kernel.NewUUID()
	p := readyParcel(t, owner, kernel.NewUUID(), 2.0, 3000)
	aggregate := quotedShipmentWithParcels(t, owner, []*parcel.Parcel{p}, time.Now().UTC().Add(time.Hour))

	cmd, err := commands.NewCompletePaymentCommand(aggregate.ID(), customerID, "pay_1")
	require.NoError(t, err)

	verifier := new(MockPaymentVerifier)
	publisher := new(MockEventPublisher)
	shipmentRepo := new(MockConsolidationShipmentRepository)
	uow := new(MockBillingUoW)

	mock.InOrder(
		verifier.On("Verify", ctx, "pay_1").Return(ports.PaymentVerification{
			Reference: "pay_1", Succeeded: true, AmountMinor: 2340, CurrencyCode: "USD",
		}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompletePaymentCommandHandler(factory, verifier, publisher, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
