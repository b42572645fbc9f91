package ports

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
)

// WorkOrderRepository persists Order aggregates together with their process
// steps and machine assignments.
type WorkOrderRepository interface {
	// Add inserts a new order with all of its steps and assignments and
	// attaches the store identities to the aggregate.
	// Unknown product, process or machine references yield errs.ErrObjectNotFound.
	Add(ctx context.Context, aggregate *workorder.Order) error

	// Update writes the scalar fields of the order and the quantities and
	// status of every step. Steps whose assignments were replaced have their
	// stored rows deleted first; new assignments are inserted.
	Update(ctx context.Context, aggregate *workorder.Order) error

	// Get loads an order. Returns errs.ErrObjectNotFound when it does not exist.
	Get(ctx context.Context, id kernel.ID) (*workorder.Order, error)

	// GetForUpdate loads an order and locks its row and its step rows until
	// the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.ID) (*workorder.Order, error)
}
