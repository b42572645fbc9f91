package http

import (
	"context"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/mock"
)

type MockCreateWorkOrderHandler struct{ mock.Mock }

func (m *MockCreateWorkOrderHandler) Handle(ctx context.Context, cmd commands.CreateWorkOrderCommand) (*workorder.Order, error) {
	args := m.Called(ctx, cmd)
	order, _ := args.Get(0).(*workorder.Order)
	return order, args.Error(1)
}

type MockUpdateWorkOrderHandler struct{ mock.Mock }

func (m *MockUpdateWorkOrderHandler) Handle(ctx context.Context, cmd commands.UpdateWorkOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAssignMachinesHandler struct{ mock.Mock }

func (m *MockAssignMachinesHandler) Handle(ctx context.Context, cmd commands.AssignMachinesCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockListWorkOrdersHandler struct{ mock.Mock }

func (m *MockListWorkOrdersHandler) Handle(
	ctx context.Context, query queries.ListWorkOrdersQuery,
) ([]queries.WorkOrderSummary, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.WorkOrderSummary)
	return orders, args.Error(1)
}

type MockGetWorkOrderHandler struct{ mock.Mock }

func (m *MockGetWorkOrderHandler) Handle(
	ctx context.Context, query queries.GetWorkOrderQuery,
) (queries.WorkOrderDetail, error) {
	args := m.Called(ctx, query)
	detail, _ := args.Get(0).(queries.WorkOrderDetail)
	return detail, args.Error(1)
}

type MockGetProgressHandler struct{ mock.Mock }

func (m *MockGetProgressHandler) Handle(ctx context.Context, query queries.GetProgressQuery) ([]queries.ProgressRow, error) {
	args := m.Called(ctx, query)
	rows, _ := args.Get(0).([]queries.ProgressRow)
	return rows, args.Error(1)
}

type MockGetInventoryHandler struct{ mock.Mock }

func (m *MockGetInventoryHandler) Handle(
	ctx context.Context, query queries.GetInventoryQuery,
) (queries.InventoryBalance, error) {
	args := m.Called(ctx, query)
	balance, _ := args.Get(0).(queries.InventoryBalance)
	return balance, args.Error(1)
}
