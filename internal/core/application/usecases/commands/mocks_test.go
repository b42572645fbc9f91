package commands_test

import (
	"context"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Add(ctx context.Context, o *workorder.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Update(ctx context.Context, o *workorder.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Get(ctx context.Context, id kernel.ID) (*workorder.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*workorder.Order)
	return o, args.Error(1)
}

func (m *MockWorkOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*workorder.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*workorder.Order)
	return o, args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Consume(ctx context.Context, key inventory.Key, amount int) error {
	args := m.Called(ctx, key, amount)
	return args.Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, key inventory.Key) (inventory.Record, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(inventory.Record), args.Bool(1), args.Error(2)
}

func (m *MockInventoryRepository) AddIfAbsent(ctx context.Context, r inventory.Record) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) SaveProduct(ctx context.Context, p ports.CatalogProduct) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCatalogRepository) SaveProcess(ctx context.Context, p ports.CatalogProcess) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCatalogRepository) SaveMachine(ctx context.Context, mc ports.CatalogMachine) error {
	return m.Called(ctx, mc).Error(0)
}

// MockUoW satisfies every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkOrderRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

type MockWorkOrderUoWFactory struct{ mock.Mock }

func (m *MockWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkOrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogUoW)
}

func mustID(v int64) kernel.ID {
	id, err := kernel.NewID(v)
	if err != nil {
		panic(err)
	}
	return id
}

func intPtr(v int) *int { return &v }

// storedOrder builds an order as the repository would return it: product 1,
// one step for process 7 with 50 released and nothing completed.
func storedOrder(available, completed int, status workorder.StepStatus) *workorder.Order {
	prior, err := workorder.RestoreMachineAssignment(mustID(300), mustID(3), 10, 0)
	if err != nil {
		panic(err)
	}
	step, err := workorder.RestoreProcessStep(
		mustID(100), mustID(7), 1, available, completed, status, []*workorder.MachineAssignment{prior},
	)
	if err != nil {
		panic(err)
	}
	o, err := workorder.RestoreOrder(
		mustID(11), "Acme", mustID(1), 100, nil, "Pending", time.Now(), []*workorder.ProcessStep{step},
	)
	if err != nil {
		panic(err)
	}
	return o
}
