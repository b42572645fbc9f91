package commands

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/guard"
)

var ErrAssignMachinesCommandIsNotConstructed = errors.New(
	"AssignMachinesCommand must be created via NewAssignMachinesCommand constructor",
)

// AssignMachinesCommand adds machines to one step of an order.
//
// Example:
//
//	cmd, err := NewAssignMachinesCommand(orderID, processID, []MachineInput{
//	    {MachineID: pressID, AssignedQuantity: 25},
//	    {MachineID: latheID, AssignedQuantity: 25},
//	})
//	if errors.Is(err, workorder.ErrAssignmentsRequired) {
//	    // nothing to assign
//	}
type AssignMachinesCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.ID
	processID   kernel.ID
	assignments []MachineInput

	guard guard.ConstructorGuard
}

func NewAssignMachinesCommand(
	orderID, processID kernel.ID,
	assignments []MachineInput,
) (AssignMachinesCommand, error) {
	cmd := AssignMachinesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProcessID(processID),
		cmd.setAssignments(assignments),
	); err != nil {
		return AssignMachinesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignMachinesCommand) Validate() error {
	return c.guard.Validate(ErrAssignMachinesCommandIsNotConstructed)
}

func (c AssignMachinesCommand) OrderID() kernel.ID { return c.orderID }

func (c AssignMachinesCommand) ProcessID() kernel.ID { return c.processID }

func (c AssignMachinesCommand) Assignments() []MachineInput {
	return append([]MachineInput(nil), c.assignments...)
}

func (c *AssignMachinesCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return fmt.Errorf("orderId: %w", err)
	}
	c.orderID = orderID
	return nil
}

func (c *AssignMachinesCommand) setProcessID(processID kernel.ID) error {
	if err := processID.Validate(); err != nil {
		return fmt.Errorf("processId: %w", err)
	}
	c.processID = processID
	return nil
}

func (c *AssignMachinesCommand) setAssignments(assignments []MachineInput) error {
	if len(assignments) == 0 {
		return workorder.ErrAssignmentsRequired
	}
	c.assignments = append([]MachineInput(nil), assignments...)
	return nil
}
