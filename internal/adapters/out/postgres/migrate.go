package postgres

import (
	"workorders/internal/adapters/out/postgres/catalogrepo"
	"workorders/internal/adapters/out/postgres/inventoryrepo"
	"workorders/internal/adapters/out/postgres/workorderrepo"

	"gorm.io/gorm"
)

// Models returns every persisted model with referenced tables first.
func Models() []any {
	models := catalogrepo.Models()
	models = append(models, &inventoryrepo.InventoryDTO{})
	return append(models, workorderrepo.Models()...)
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
