// Package inventoryrepo is the PostgreSQL inventory ledger.
package inventoryrepo

import (
	"workorders/internal/adapters/out/postgres/catalogrepo"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
)

// InventoryDTO is one balance per (product, process) pair. The check
// constraint backs the non-negative invariant at the storage level.
type InventoryDTO struct {
	ID                int64                   `gorm:"primaryKey"`
	ProductID         int64                   `gorm:"not null;uniqueIndex:idx_inventory_product_process"`
	ProcessID         int64                   `gorm:"not null;uniqueIndex:idx_inventory_product_process"`
	AvailableQuantity int                     `gorm:"type:int;not null;default:0;check:chk_inventory_non_negative,available_quantity >= 0"`
	Product           *catalogrepo.ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Process           *catalogrepo.ProcessDTO `gorm:"foreignKey:ProcessID;constraint:OnDelete:CASCADE"`
}

func (InventoryDTO) TableName() string {
	return "product_process_inventory"
}

func fromDomain(r inventory.Record) InventoryDTO {
	return InventoryDTO{
		ProductID:         r.Key.ProductID.Int64(),
		ProcessID:         r.Key.ProcessID.Int64(),
		AvailableQuantity: r.AvailableQuantity,
	}
}

func toDomain(dto InventoryDTO) (inventory.Record, error) {
	productID, err := kernel.NewID(dto.ProductID)
	if err != nil {
		return inventory.Record{}, err
	}
	processID, err := kernel.NewID(dto.ProcessID)
	if err != nil {
		return inventory.Record{}, err
	}
	key, err := inventory.NewKey(productID, processID)
	if err != nil {
		return inventory.Record{}, err
	}
	return inventory.NewRecord(key, dto.AvailableQuantity)
}
