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

type MockAssignItemRepository struct{ mock.Mock }

func (m *MockAssignItemRepository) Get(ctx context.Context, id kernel.UUID) (*intake.ScannedItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.ScannedItem), args.Error(1)
}

func (m *MockAssignItemRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*intake.ScannedItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*intake.ScannedItem), args.Error(1)
}

func (m *MockAssignItemRepository) Update(ctx context.Context, item *intake.ScannedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type MockIntakeUoW struct{ mock.Mock }

func (m *MockIntakeUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIntakeUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIntakeUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIntakeUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockIntakeUoW) ScannedItemRepository() ports.ScannedItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ScannedItemRepository)
}

func (m *MockIntakeUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

func assignableItem(t *testing.T) *intake.ScannedItem {
	t.Helper()
	item, err := intake.NewScannedItem(kernel.NewUUID(), kernel.NewUUID(), "TRACK-"+kernel.NewUUID().String()[:8], time.Now().UTC(), false)
	require.NoError(t, err)
	return item
}

func TestAssignItemsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	first := assignableItem(t)
	second := assignableItem(t)
	itemIDs := []kernel.UUID{first.ID(), second.ID()}

	cmd, err := commands.NewAssignItemsCommand(itemIDs, customerID)
	require.NoError(t, err)

	itemRepo := new(MockAssignItemRepository)
	uow := new(MockIntakeUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ScannedItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetMany", ctx, itemIDs).Return([]*intake.ScannedItem{first, second}, nil).Once(),
		itemRepo.On("Update", ctx, mock.AnythingOfType("*intake.ScannedItem")).Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignItemsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, intake.Assigned, first.Status())
	assert.Equal(t, intake.Assigned, second.Status())
	require.NotNil(t, first.Customer())
	assert.Equal(t, customerID, *first.Customer())

	itemRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignItemsCommandHandler_Handle_AllOrNothing(t *testing.T) {
	ctx := t.Context()
	assignable := assignableItem(t)
	taken := assignableItem(t)
	require.NoError(t, taken.Assign(kernel.NewUUID(), time.Now().UTC()))
	itemIDs := []kernel.UUID{assignable.ID(), taken.ID()}

	cmd, err := commands.NewAssignItemsCommand(itemIDs, kernel.NewUUID())
	require.NoError(t, err)

	itemRepo := new(MockAssignItemRepository)
	uow := new(MockIntakeUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ScannedItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetMany", ctx, itemIDs).Return([]*intake.ScannedItem{assignable, taken}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignItemsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	var assignedErr *intake.AlreadyAssignedError
	require.ErrorAs(t, err, &assignedErr)
	assert.Equal(t, []kernel.UUID{taken.ID()}, assignedErr.ItemIDs)

	// The assignable item must stay untouched when any sibling is blocked.
	assert.Equal(t, intake.Unassigned, assignable.Status())
	itemRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestAssignItemsCommandHandler_Handle_DuplicateMarkerBlocksAssignment(t *testing.T) {
	ctx := t.Context()
	duplicate, err := intake.NewScannedItem(kernel.NewUUID(), kernel.NewUUID(), "TRACK-1", time.Now().UTC(), true)
	require.NoError(t, err)
	itemIDs := []kernel.UUID{duplicate.ID()}

	cmd, err := commands.NewAssignItemsCommand(itemIDs, kernel.NewUUID())
	require.NoError(t, err)

	itemRepo := new(MockAssignItemRepository)
	uow := new(MockIntakeUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ScannedItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetMany", ctx, itemIDs).Return([]*intake.ScannedItem{duplicate}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignItemsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	var assignedErr *intake.AlreadyAssignedError
	require.ErrorAs(t, err, &assignedErr)
	assert.Equal(t, []kernel.UUID{duplicate.ID()}, assignedErr.ItemIDs)
}

func TestAssignItemsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignItemsCommand{} // not constructed properly

	factory := new(MockIntakeUoWFactory)
	handler := commands.NewAssignItemsCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignItemsCommandHandler_Handle_GetManyError(t *testing.T) {
	ctx := t.Context()
	itemIDs := []kernel.UUID{kernel.NewUUID()}

	cmd, err := commands.NewAssignItemsCommand(itemIDs, kernel.NewUUID())
	require.NoError(t, err)

	itemRepo := new(MockAssignItemRepository)
	uow := new(MockIntakeUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ScannedItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetMany", ctx, itemIDs).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignItemsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "database error")
}
