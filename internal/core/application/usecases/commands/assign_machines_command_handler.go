package commands

import (
	"context"
	"errors"

	"workorders/internal/pkg/errs"
)

// ErrStepNotFound is returned when the order has no step for the requested process.
var ErrStepNotFound = errors.New("process step not found")

// AssignMachinesCommandHandler inserts the new assignments and marks the step
// Assigned in the same transaction. Prior assignments are kept and the step
// becomes Assigned whatever its previous status was, Completed included.
type AssignMachinesCommandHandler struct {
	uowFactory WorkOrderUoWFactory
}

func NewAssignMachinesCommandHandler(uowFactory WorkOrderUoWFactory) AssignMachinesCommandHandler {
	return AssignMachinesCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AssignMachinesCommandHandler) Handle(ctx context.Context, cmd AssignMachinesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	assignments, err := buildAssignments(cmd.Assignments())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.WorkOrderRepository()
	order, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewObjectNotFoundErrorWithCause("processId", cmd.ProcessID(), ErrStepNotFound)
	}
	if err != nil {
		return err
	}

	if _, ok := order.StepByProcess(cmd.ProcessID()); !ok {
		return errs.NewObjectNotFoundErrorWithCause("processId", cmd.ProcessID(), ErrStepNotFound)
	}

	if err = order.AssignMachines(cmd.ProcessID(), assignments); err != nil {
		return err
	}

	if err = orders.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
