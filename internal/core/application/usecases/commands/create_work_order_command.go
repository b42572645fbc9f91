package commands

import (
	"errors"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var (
	ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
		"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
	)
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customerName")
	ErrQuantityIsInvalid      = errors.New("quantity must be greater than 0")
	ErrProcessesAreRequired   = errs.NewValueIsRequiredError("processes")
)

// MachineInput is one requested machine assignment.
type MachineInput struct {
	MachineID        kernel.ID
	AssignedQuantity int
}

// StepInput describes a process step of a new order.
type StepInput struct {
	ProcessID         kernel.ID
	Sequence          int
	AvailableQuantity int
	CompletedQuantity int
	Status            workorder.StepStatus
	Machines          []MachineInput
}

// CreateWorkOrderCommand represents a request to open a work order together
// with its ordered process steps and initial machine assignments.
//
// Example:
//
//	cmd, err := NewCreateWorkOrderCommand("Acme", productID, 100, &due, []StepInput{{
//	    ProcessID:         processID,
//	    Sequence:          1,
//	    AvailableQuantity: 50,
//	    Status:            workorder.StepPending,
//	    Machines:          []MachineInput{{MachineID: machineID, AssignedQuantity: 50}},
//	}})
//	if err != nil {
//	    return fmt.Errorf("invalid work order: %w", err)
//	}
//
//	order, err := handler.Handle(ctx, cmd)
type CreateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	customerName string
	productID    kernel.ID
	quantity     int
	dueDate      *time.Time
	steps        []StepInput

	guard guard.ConstructorGuard
}

// NewCreateWorkOrderCommand validates the request shape. Business rules on
// the steps are enforced by the Order aggregate.
func NewCreateWorkOrderCommand(
	customerName string,
	productID kernel.ID,
	quantity int,
	dueDate *time.Time,
	steps []StepInput,
) (CreateWorkOrderCommand, error) {
	cmd := CreateWorkOrderCommand{
		dueDate: dueDate,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerName(customerName),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
		cmd.setSteps(steps),
	); err != nil {
		return CreateWorkOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

func (c CreateWorkOrderCommand) CustomerName() string { return c.customerName }

func (c CreateWorkOrderCommand) ProductID() kernel.ID { return c.productID }

func (c CreateWorkOrderCommand) Quantity() int { return c.quantity }

func (c CreateWorkOrderCommand) DueDate() *time.Time { return c.dueDate }

func (c CreateWorkOrderCommand) Steps() []StepInput {
	return append([]StepInput(nil), c.steps...)
}

func (c *CreateWorkOrderCommand) setCustomerName(name string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	c.customerName = name
	return nil
}

func (c *CreateWorkOrderCommand) setProductID(productID kernel.ID) error {
	if err := productID.Validate(); err != nil {
		return fmt.Errorf("productId: %w", err)
	}
	c.productID = productID
	return nil
}

func (c *CreateWorkOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", ErrQuantityIsInvalid)
	}
	c.quantity = quantity
	return nil
}

func (c *CreateWorkOrderCommand) setSteps(steps []StepInput) error {
	if len(steps) == 0 {
		return ErrProcessesAreRequired
	}
	c.steps = append([]StepInput(nil), steps...)
	return nil
}

// buildSteps turns the inputs into domain steps with unsaved assignments.
func buildSteps(inputs []StepInput) ([]*workorder.ProcessStep, error) {
	steps := make([]*workorder.ProcessStep, 0, len(inputs))
	for _, in := range inputs {
		machines, err := buildAssignments(in.Machines)
		if err != nil {
			return nil, err
		}

		step, err := workorder.NewProcessStep(
			in.ProcessID, in.Sequence, in.AvailableQuantity, in.CompletedQuantity, in.Status, machines,
		)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func buildAssignments(inputs []MachineInput) ([]*workorder.MachineAssignment, error) {
	assignments := make([]*workorder.MachineAssignment, 0, len(inputs))
	for _, in := range inputs {
		a, err := workorder.NewMachineAssignment(in.MachineID, in.AssignedQuantity)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}
