package inventoryrepo

import (
	"context"
	"errors"

	"workorders/internal/adapters/out/postgres/pgerr"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Consume draws amount from the balance with a single conditional UPDATE.
// The row lock taken by the UPDATE serializes concurrent consumers of the same
// key; whoever comes second re-evaluates the guard against the new balance.
func (r *GormInventoryRepository) Consume(ctx context.Context, key inventory.Key, amount int) error {
	if err := inventory.ValidateConsumption(amount); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&InventoryDTO{}).
		Where("product_id = ? AND process_id = ? AND available_quantity >= ?",
			key.ProductID.Int64(), key.ProcessID.Int64(), amount).
		Update("available_quantity", gorm.Expr("available_quantity - ?", amount))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return inventory.NewInsufficientInventoryError(key, amount)
	}
	return nil
}

// Get returns the balance for key, reporting false when there is none.
func (r *GormInventoryRepository) Get(ctx context.Context, key inventory.Key) (inventory.Record, bool, error) {
	var dto InventoryDTO
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND process_id = ?", key.ProductID.Int64(), key.ProcessID.Int64()).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventory.Record{}, false, nil
	}
	if err != nil {
		return inventory.Record{}, false, err
	}

	record, err := toDomain(dto)
	if err != nil {
		return inventory.Record{}, false, err
	}
	return record, true, nil
}

// AddIfAbsent inserts the balance unless the key already has one.
func (r *GormInventoryRepository) AddIfAbsent(ctx context.Context, record inventory.Record) (bool, error) {
	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "process_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if pgerr.IsForeignKeyViolation(result.Error) {
		return false, errs.NewObjectNotFoundErrorWithCause("inventory", record.Key.String(), ports.ErrReferenceNotFound)
	}
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
