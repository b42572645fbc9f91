package queries

import (
	"errors"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrListWorkOrdersQueryIsNotConstructed = errors.New(
	"ListWorkOrdersQuery must be created via NewListWorkOrdersQuery constructor",
)

// ListWorkOrdersQuery returns every order without steps or assignments.
type ListWorkOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListWorkOrdersQuery() ListWorkOrdersQuery {
	return ListWorkOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListWorkOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkOrdersQueryIsNotConstructed)
}

// WorkOrderSummary is the scalar view of an order.
type WorkOrderSummary struct {
	ID           kernel.ID
	CustomerName string
	ProductID    kernel.ID
	Quantity     int
	DueDate      *time.Time
	Status       string
	CreatedAt    time.Time
}
