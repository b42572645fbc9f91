package queries

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrGetWorkOrderQueryIsNotConstructed = errors.New(
	"GetWorkOrderQuery must be created via NewGetWorkOrderQuery constructor",
)

// GetWorkOrderQuery returns one order with its steps and their machines.
type GetWorkOrderQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetWorkOrderQuery(orderID kernel.ID) (GetWorkOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetWorkOrderQuery{}, fmt.Errorf("orderId: %w", err)
	}
	return GetWorkOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWorkOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderQueryIsNotConstructed)
}

func (q GetWorkOrderQuery) OrderID() kernel.ID { return q.orderID }

// WorkOrderDetail is an order with its steps in sequence order.
type WorkOrderDetail struct {
	WorkOrderSummary
	Processes []ProcessStepView
}

// ProcessStepView is one step with the name of its process.
type ProcessStepView struct {
	ProcessID         kernel.ID
	ProcessName       string
	AvailableQuantity int
	CompletedQuantity int
	Status            string
	Sequence          int
	Machines          []MachineView
}

// MachineView is one machine assignment with the machine name.
type MachineView struct {
	MachineID         kernel.ID
	MachineName       string
	AssignedQuantity  int
	CompletedQuantity int
}
