package commands

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

// UpdateWorkOrderCommandHandler applies a progress report to an order.
//
// Everything happens in one transaction: the order is locked, each reported
// step draws its inventory through the ledger's guarded decrement, then the
// step quantities, status and assignments are rewritten. An insufficient
// balance on any step rolls back the whole report. Steps for processes that
// are not part of the order are skipped; updates never add steps.
//
// Steps are applied in ascending process id so that concurrent reports lock
// inventory rows in the same order.
type UpdateWorkOrderCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewUpdateWorkOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) UpdateWorkOrderCommandHandler {
	return UpdateWorkOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "update-work-order"),
	}
}

func (h *UpdateWorkOrderCommandHandler) Handle(ctx context.Context, cmd UpdateWorkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.WorkOrderRepository()
	order, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = order.Revise(cmd.Details()); err != nil {
		return err
	}

	ledger := uow.InventoryRepository()
	for _, in := range byProcess(cmd.Steps()) {
		if _, ok := order.StepByProcess(in.ProcessID); !ok {
			h.logger.DebugContext(ctx, "skipping step not on order",
				"order_id", order.ID().Int64(), "process_id", in.ProcessID.Int64())
			continue
		}

		if err = h.applyStep(ctx, ledger, order, in); err != nil {
			return err
		}
	}

	if err = orders.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateWorkOrderCommandHandler) applyStep(
	ctx context.Context,
	ledger ports.InventoryRepository,
	order *workorder.Order,
	in StepUpdateInput,
) error {
	if in.InventoryUsed > 0 {
		key, err := inventory.NewKey(order.ProductID(), in.ProcessID)
		if err != nil {
			return err
		}
		if err = ledger.Consume(ctx, key, in.InventoryUsed); err != nil {
			return err
		}
	}

	err := order.ReviseStep(in.ProcessID, workorder.StepRevision{
		AvailableQuantity: in.AvailableQuantity,
		Status:            in.Status,
		InventoryUsed:     in.InventoryUsed,
	})
	if err != nil {
		return err
	}

	if in.Machines == nil {
		return nil
	}
	assignments, err := buildAssignments(in.Machines)
	if err != nil {
		return err
	}
	return order.ReplaceStepAssignments(in.ProcessID, assignments)
}

func byProcess(steps []StepUpdateInput) []StepUpdateInput {
	sorted := slices.Clone(steps)
	slices.SortStableFunc(sorted, func(a, b StepUpdateInput) int {
		return cmp.Compare(a.ProcessID.Int64(), b.ProcessID.Int64())
	})
	return sorted
}
