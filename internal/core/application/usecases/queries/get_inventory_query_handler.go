package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetInventoryQueryHandler reads a balance. A missing record is not an error.
type GetInventoryQueryHandler struct {
	db *gorm.DB
}

func NewGetInventoryQueryHandler(db *gorm.DB) GetInventoryQueryHandler {
	return GetInventoryQueryHandler{db: db}
}

func (h GetInventoryQueryHandler) Handle(ctx context.Context, query GetInventoryQuery) (InventoryBalance, error) {
	if err := query.Validate(); err != nil {
		return InventoryBalance{}, err
	}

	var balance InventoryBalance
	err := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE((
			SELECT available_quantity
			FROM product_process_inventory
			WHERE product_id = ? AND process_id = ?
		), 0)
	`, query.Key().ProductID.Int64(), query.Key().ProcessID.Int64()).Row().Scan(&balance.AvailableQuantity)
	if err != nil {
		return InventoryBalance{}, err
	}

	return balance, nil
}
