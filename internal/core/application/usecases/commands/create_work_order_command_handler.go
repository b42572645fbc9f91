package commands

import (
	"context"

	"workorders/internal/core/domain/model/workorder"
)

// CreateWorkOrderCommandHandler opens a work order. The order row, its steps
// and their machine assignments are written in one transaction.
type CreateWorkOrderCommandHandler struct {
	uowFactory WorkOrderUoWFactory
}

func NewCreateWorkOrderCommandHandler(uowFactory WorkOrderUoWFactory) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the persisted order with its identity attached.
func (h *CreateWorkOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateWorkOrderCommand,
) (*workorder.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	steps, err := buildSteps(cmd.Steps())
	if err != nil {
		return nil, err
	}

	order, err := workorder.NewOrder(cmd.CustomerName(), cmd.ProductID(), cmd.Quantity(), cmd.DueDate(), steps)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WorkOrderRepository().Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
