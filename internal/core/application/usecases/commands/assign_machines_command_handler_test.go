package commands_test

import (
	"testing"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssignCommand(t *testing.T, processID int64) commands.AssignMachinesCommand {
	t.Helper()
	cmd, err := commands.NewAssignMachinesCommand(mustID(11), mustID(processID), []commands.MachineInput{
		{MachineID: mustID(4), AssignedQuantity: 25},
		{MachineID: mustID(5), AssignedQuantity: 25},
	})
	require.NoError(t, err)
	return cmd
}

func TestAssignMachinesCommandHandler_Handle_AddsAndOverwritesStatus(t *testing.T) {
	ctx := t.Context()
	order := storedOrder(50, 50, workorder.StepCompleted)

	repo := new(MockWorkOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkOrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, mustID(11)).Return(order, nil).Once(),
		repo.On("Update", ctx, order).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockWorkOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignMachinesCommandHandler(factory)
	err := h.Handle(ctx, newAssignCommand(t, 7))

	require.NoError(t, err)
	step, _ := order.StepByProcess(mustID(7))
	assert.Equal(t, workorder.StepAssigned, step.Status())
	assert.False(t, step.AssignmentsReplaced())
	assignments := step.Assignments()
	require.Len(t, assignments, 3)
	assert.False(t, assignments[0].IsNew())
	assert.True(t, assignments[1].IsNew())
	assert.True(t, assignments[2].IsNew())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignMachinesCommandHandler_Handle_StepNotFound(t *testing.T) {
	ctx := t.Context()
	order := storedOrder(50, 0, workorder.StepPending)

	repo := new(MockWorkOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkOrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, mustID(11)).Return(order, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockWorkOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignMachinesCommandHandler(factory)
	err := h.Handle(ctx, newAssignCommand(t, 8))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, notFound.Cause, commands.ErrStepNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestAssignMachinesCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	repo := new(MockWorkOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkOrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, mustID(11)).Return(nil, errs.NewObjectNotFoundError("orderId", 11)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockWorkOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignMachinesCommandHandler(factory)
	err := h.Handle(ctx, newAssignCommand(t, 7))

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, notFound.Cause, commands.ErrStepNotFound)
}
