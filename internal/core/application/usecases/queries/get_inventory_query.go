package queries

import (
	"errors"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrGetInventoryQueryIsNotConstructed = errors.New(
	"GetInventoryQuery must be created via NewGetInventoryQuery constructor",
)

// GetInventoryQuery reads the balance of a (product, process) pair.
type GetInventoryQuery struct {
	key inventory.Key

	guard guard.ConstructorGuard
}

func NewGetInventoryQuery(productID, processID kernel.ID) (GetInventoryQuery, error) {
	key, err := inventory.NewKey(productID, processID)
	if err != nil {
		return GetInventoryQuery{}, err
	}
	return GetInventoryQuery{key: key, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryQueryIsNotConstructed)
}

func (q GetInventoryQuery) Key() inventory.Key { return q.key }

// InventoryBalance is the current available quantity; zero when no record exists.
type InventoryBalance struct {
	AvailableQuantity int
}
