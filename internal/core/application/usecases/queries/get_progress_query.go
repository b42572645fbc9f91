package queries

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrGetProgressQueryIsNotConstructed = errors.New(
	"GetProgressQuery must be created via NewGetProgressQuery constructor",
)

// GetProgressQuery flattens an order into one row per machine assignment.
type GetProgressQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetProgressQuery(orderID kernel.ID) (GetProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetProgressQuery{}, fmt.Errorf("orderId: %w", err)
	}
	return GetProgressQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetProgressQueryIsNotConstructed)
}

func (q GetProgressQuery) OrderID() kernel.ID { return q.orderID }

// ProgressRow is one (step, machine) pair. A step without machines yields a
// single row whose machine fields are nil.
type ProgressRow struct {
	ProcessID         kernel.ID
	ProcessName       string
	Sequence          int
	AvailableQuantity int
	CompletedQuantity int
	Status            string

	MachineID                *kernel.ID
	MachineName              *string
	AssignedQuantity         *int
	MachineCompletedQuantity *int
}
