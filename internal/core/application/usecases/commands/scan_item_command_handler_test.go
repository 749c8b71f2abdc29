package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/intake"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockScanBatchRepository struct{ mock.Mock }

func (m *MockScanBatchRepository) Add(ctx context.Context, batch *intake.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockScanBatchRepository) Update(ctx context.Context, batch *intake.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockScanBatchRepository) Get(ctx context.Context, id kernel.UUID) (*intake.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.Batch), args.Error(1)
}

type MockScanUoW struct{ mock.Mock }

func (m *MockScanUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScanUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScanUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScanUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

type MockScanUoWFactory struct{ mock.Mock }

func (m *MockScanUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

func scanTestBatch(t *testing.T) *intake.Batch {
	t.Helper()
	batch, err := intake.NewBatch(kernel.NewUUID(), kernel.NewUUID(), 5, time.Now().UTC())
	require.NoError(t, err)
	return batch
}

func TestScanItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	batch := scanTestBatch(t)

	cmd, err := commands.NewScanItemCommand(batch.ID(), "1Z999AA10123456784")
	require.NoError(t, err)

	batchRepo := new(MockScanBatchRepository)
	uow := new(MockScanUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, batch.ID()).Return(batch, nil).Once(),
		batchRepo.On("Update", ctx, mock.AnythingOfType("*intake.Batch")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewScanItemCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.Equal(t, intake.BatchScanning, batch.Status())
	require.Len(t, batch.Items(), 1)
	assert.Equal(t, batch.Items()[0].ID(), result.ItemID)

	batchRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestScanItemCommandHandler_Handle_DuplicateIsRecordedAndCommitted(t *testing.T) {
	ctx := t.Context()
	batch := scanTestBatch(t)
	_, err := batch.Scan("TRACK-1", time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewScanItemCommand(batch.ID(), "TRACK-1")
	require.NoError(t, err)

	batchRepo := new(MockScanBatchRepository)
	uow := new(MockScanUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, batch.ID()).Return(batch, nil).Once(),
		batchRepo.On("Update", ctx, mock.AnythingOfType("*intake.Batch")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewScanItemCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Len(t, batch.Items(), 2)
	assert.Len(t, batch.LiveItems(), 1)

	batchRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestScanItemCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ScanItemCommand{} // not constructed properly

	factory := new(MockScanUoWFactory)
	handler := commands.NewScanItemCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestScanItemCommandHandler_Handle_CompletedBatchRejectsScans(t *testing.T) {
	ctx := t.Context()
	batch := scanTestBatch(t)
	_, err := batch.Scan("TRACK-1", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, batch.Complete())

	cmd, err := commands.NewScanItemCommand(batch.ID(), "TRACK-2")
	require.NoError(t, err)

	batchRepo := new(MockScanBatchRepository)
	uow := new(MockScanUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, batch.ID()).Return(batch, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewScanItemCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, intake.ErrBatchAlreadyScanned)
	batchRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestScanItemCommandHandler_Handle_GetBatchError(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()

	cmd, err := commands.NewScanItemCommand(batchID, "TRACK-1")
	require.NoError(t, err)

	batchRepo := new(MockScanBatchRepository)
	uow := new(MockScanUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, batchID).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewScanItemCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "database error")
}
