package catalogrepo

import (
	"context"
	"fmt"

	"workorders/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository upserts reference rows by their explicit ids.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// SaveProduct inserts the product or renames the existing one.
func (r *GormCatalogRepository) SaveProduct(ctx context.Context, p ports.CatalogProduct) error {
	dto := ProductDTO{ID: p.ID.Int64(), Name: p.Name}
	if err := r.upsert(ctx, &dto); err != nil {
		return err
	}
	return r.syncSequence(ctx, dto.TableName())
}

// SaveProcess upserts the process and adds the product mappings it lists.
func (r *GormCatalogRepository) SaveProcess(ctx context.Context, p ports.CatalogProcess) error {
	dto := ProcessDTO{ID: p.ID.Int64(), Name: p.Name}
	if err := r.upsert(ctx, &dto); err != nil {
		return err
	}

	for _, productID := range p.ProductIDs {
		link := ProductProcessDTO{ProductID: productID.Int64(), ProcessID: dto.ID}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return fmt.Errorf("map process %d to product %d: %w", dto.ID, link.ProductID, err)
		}
	}
	return r.syncSequence(ctx, dto.TableName())
}

// SaveMachine upserts the machine and adds the process mappings it lists.
func (r *GormCatalogRepository) SaveMachine(ctx context.Context, m ports.CatalogMachine) error {
	dto := MachineDTO{ID: m.ID.Int64(), Name: m.Name}
	if err := r.upsert(ctx, &dto); err != nil {
		return err
	}

	for _, processID := range m.ProcessIDs {
		link := MachineProcessDTO{MachineID: dto.ID, ProcessID: processID.Int64()}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return fmt.Errorf("map machine %d to process %d: %w", dto.ID, link.ProcessID, err)
		}
	}
	return r.syncSequence(ctx, dto.TableName())
}

func (r *GormCatalogRepository) upsert(ctx context.Context, dto any) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(dto).Error
}

// syncSequence moves the id sequence past explicitly inserted ids so rows
// created later by the CRUD layer do not collide with seeded ones.
func (r *GormCatalogRepository) syncSequence(ctx context.Context, table string) error {
	return r.db.WithContext(ctx).Exec(
		fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), GREATEST((SELECT MAX(id) FROM %[1]s), 1))",
			table,
		),
	).Error
}
