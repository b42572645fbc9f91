package ports

import (
	"context"

	"workorders/internal/core/domain/model/inventory"
)

// InventoryRepository is the inventory ledger.
type InventoryRepository interface {
	// Consume lowers the balance of key by amount in one guarded statement.
	// It fails with inventory.ErrInsufficientInventory when the record is
	// missing or holds less than amount; the balance is then unchanged.
	Consume(ctx context.Context, key inventory.Key, amount int) error

	// Get returns the balance of key. The bool is false when no record exists.
	Get(ctx context.Context, key inventory.Key) (inventory.Record, bool, error)

	// AddIfAbsent creates the record unless one already exists for its key.
	// Reports whether a record was created.
	AddIfAbsent(ctx context.Context, record inventory.Record) (bool, error)
}
