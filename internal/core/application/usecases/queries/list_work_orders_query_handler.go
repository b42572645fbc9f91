package queries

import (
	"context"
	"database/sql"
	"time"

	"workorders/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListWorkOrdersQueryHandler reads order summaries ordered by id.
type ListWorkOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListWorkOrdersQueryHandler(db *gorm.DB) ListWorkOrdersQueryHandler {
	return ListWorkOrdersQueryHandler{db: db}
}

func (h ListWorkOrdersQueryHandler) Handle(ctx context.Context, query ListWorkOrdersQuery) ([]WorkOrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]WorkOrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			product_id,
			quantity,
			due_date,
			status,
			created_at
		FROM orders
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		summary, scanErr := scanSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (WorkOrderSummary, error) {
	var (
		s             WorkOrderSummary
		id, productID int64
		dueDate       sql.NullTime
		createdAt     time.Time
	)
	if err := row.Scan(&id, &s.CustomerName, &productID, &s.Quantity, &dueDate, &s.Status, &createdAt); err != nil {
		return WorkOrderSummary{}, err
	}

	var err error
	if s.ID, err = kernel.NewID(id); err != nil {
		return WorkOrderSummary{}, err
	}
	if s.ProductID, err = kernel.NewID(productID); err != nil {
		return WorkOrderSummary{}, err
	}
	if dueDate.Valid {
		d := dueDate.Time
		s.DueDate = &d
	}
	s.CreatedAt = createdAt
	return s, nil
}
