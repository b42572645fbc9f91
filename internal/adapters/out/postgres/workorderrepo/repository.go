package workorderrepo

import (
	"context"
	"errors"
	"fmt"

	"workorders/internal/adapters/out/postgres/pgerr"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkOrderRepository implements ports.WorkOrderRepository using GORM.
type GormWorkOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects aggregates whose events are published on commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormWorkOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order graph and attaches the generated ids to the aggregate.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err)
	}

	if err := attachIDs(aggregate, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes scalar fields, step state and assignment changes.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Int64()).
		Updates(map[string]any{
			"customer_name": aggregate.CustomerName(),
			"product_id":    aggregate.ProductID().Int64(),
			"quantity":      aggregate.Quantity(),
			"due_date":      aggregate.DueDate(),
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}

	for _, step := range aggregate.Steps() {
		if err := r.updateStep(db, step); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormWorkOrderRepository) updateStep(db *gorm.DB, step *workorder.ProcessStep) error {
	err := db.Model(&OrderProcessDTO{}).
		Where("id = ?", step.ID().Int64()).
		Updates(map[string]any{
			"available_quantity": step.AvailableQuantity(),
			"completed_quantity": step.CompletedQuantity(),
			"status":             step.Status().String(),
		}).Error
	if err != nil {
		return err
	}

	if step.AssignmentsReplaced() {
		err = db.Where("order_process_id = ?", step.ID().Int64()).Delete(&OrderProcessMachineDTO{}).Error
		if err != nil {
			return err
		}
	}

	for _, a := range step.Assignments() {
		if !a.IsNew() {
			continue
		}
		dto := assignmentFromDomain(step.ID(), a)
		if err = db.Create(&dto).Error; err != nil {
			return translate(err)
		}
		if err = attach(dto.ID, a.AttachID); err != nil {
			return err
		}
	}
	return nil
}

// Get loads an order graph without locking.
func (r *GormWorkOrderRepository) Get(ctx context.Context, id kernel.ID) (*workorder.Order, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate loads an order graph holding row locks on the order and its steps.
func (r *GormWorkOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*workorder.Order, error) {
	return r.load(ctx, id, true)
}

func (r *GormWorkOrderRepository) load(ctx context.Context, id kernel.ID, lock bool) (*workorder.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := func() *gorm.DB {
		db := r.db.WithContext(ctx)
		if lock {
			return db.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		return db
	}

	var dto OrderDTO
	if err := query().First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	if err := query().Where("order_id = ?", dto.ID).Order("sequence").Find(&dto.Processes).Error; err != nil {
		return nil, err
	}
	if len(dto.Processes) == 0 {
		return toDomain(dto)
	}

	stepIDs := make([]int64, 0, len(dto.Processes))
	for _, p := range dto.Processes {
		stepIDs = append(stepIDs, p.ID)
	}

	var machines []OrderProcessMachineDTO
	if err := r.db.WithContext(ctx).
		Where("order_process_id IN ?", stepIDs).
		Order("id").
		Find(&machines).Error; err != nil {
		return nil, err
	}

	byStep := make(map[int64][]OrderProcessMachineDTO, len(dto.Processes))
	for _, m := range machines {
		byStep[m.OrderProcessID] = append(byStep[m.OrderProcessID], m)
	}
	for i := range dto.Processes {
		dto.Processes[i].Machines = byStep[dto.Processes[i].ID]
	}

	return toDomain(dto)
}

// attachIDs copies the ids generated on insert back into the aggregate. The
// insert graph mirrors the aggregate's step and assignment order.
func attachIDs(aggregate *workorder.Order, dto OrderDTO) error {
	orderID, err := kernel.NewID(dto.ID)
	if err != nil {
		return err
	}
	if err = aggregate.AttachID(orderID, dto.CreatedAt); err != nil {
		return err
	}

	for i, step := range aggregate.Steps() {
		p := dto.Processes[i]
		if err = attach(p.ID, step.AttachID); err != nil {
			return err
		}
		for j, a := range step.Assignments() {
			if err = attach(p.Machines[j].ID, a.AttachID); err != nil {
				return err
			}
		}
	}
	return nil
}

func attach(raw int64, attachID func(kernel.ID) error) error {
	id, err := kernel.NewID(raw)
	if err != nil {
		return err
	}
	return attachID(id)
}

// translate maps constraint violations to domain errors.
func translate(err error) error {
	switch {
	case pgerr.IsForeignKeyViolation(err):
		return errs.NewObjectNotFoundErrorWithCause("reference", pgerr.Constraint(err), ports.ErrReferenceNotFound)
	case pgerr.IsNumericValueOutOfRange(err):
		return errs.NewValueIsInvalidErrorWithCause("quantity", err)
	case pgerr.IsUniqueViolation(err):
		return errs.NewValueIsInvalidErrorWithCause(
			"processes", fmt.Errorf("duplicate step (%s): %w", pgerr.Constraint(err), err),
		)
	default:
		return err
	}
}
