package commands

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrUpdateWorkOrderCommandIsNotConstructed = errors.New(
	"UpdateWorkOrderCommand must be created via NewUpdateWorkOrderCommand constructor",
)

// StepUpdateInput is the progress report for one step of an existing order.
// Nil AvailableQuantity and Status keep the stored values. A nil Machines
// slice leaves assignments alone; a non-nil one, empty included, replaces them.
type StepUpdateInput struct {
	ProcessID         kernel.ID
	AvailableQuantity *int
	Status            *workorder.StepStatus
	InventoryUsed     int
	Machines          []MachineInput
}

// UpdateWorkOrderCommand reports progress on an order: revised scalar fields,
// inventory drawn per step and replacement machine assignments.
type UpdateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	details workorder.OrderDetails
	steps   []StepUpdateInput

	guard guard.ConstructorGuard
}

func NewUpdateWorkOrderCommand(
	orderID kernel.ID,
	details workorder.OrderDetails,
	steps []StepUpdateInput,
) (UpdateWorkOrderCommand, error) {
	cmd := UpdateWorkOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSteps(steps),
	); err != nil {
		return UpdateWorkOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWorkOrderCommandIsNotConstructed)
}

func (c UpdateWorkOrderCommand) OrderID() kernel.ID { return c.orderID }

func (c UpdateWorkOrderCommand) Details() workorder.OrderDetails { return c.details }

func (c UpdateWorkOrderCommand) Steps() []StepUpdateInput {
	return append([]StepUpdateInput(nil), c.steps...)
}

func (c *UpdateWorkOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return fmt.Errorf("orderId: %w", err)
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateWorkOrderCommand) setSteps(steps []StepUpdateInput) error {
	if len(steps) == 0 {
		return ErrProcessesAreRequired
	}
	for _, s := range steps {
		if s.InventoryUsed < 0 || s.InventoryUsed > kernel.MaxQuantity {
			return errs.NewValueIsOutOfRangeError("inventoryUsed", s.InventoryUsed, 0, kernel.MaxQuantity)
		}
	}
	c.steps = append([]StepUpdateInput(nil), steps...)
	return nil
}
