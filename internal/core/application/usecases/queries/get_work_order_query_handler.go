package queries

import (
	"context"
	"database/sql"
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetWorkOrderQueryHandler assembles the detail view in three reads: the
// order, its steps joined to process names, and the machines of those steps.
type GetWorkOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetWorkOrderQueryHandler(db *gorm.DB) GetWorkOrderQueryHandler {
	return GetWorkOrderQueryHandler{db: db}
}

func (h GetWorkOrderQueryHandler) Handle(ctx context.Context, query GetWorkOrderQuery) (WorkOrderDetail, error) {
	if err := query.Validate(); err != nil {
		return WorkOrderDetail{}, err
	}

	db := h.db.WithContext(ctx)
	row := db.Raw(`
		SELECT id, customer_name, product_id, quantity, due_date, status, created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Int64()).Row()

	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return WorkOrderDetail{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return WorkOrderDetail{}, err
	}

	detail := WorkOrderDetail{WorkOrderSummary: summary, Processes: make([]ProcessStepView, 0)}

	stepIDs, err := h.loadSteps(db, &detail)
	if err != nil {
		return WorkOrderDetail{}, err
	}
	if len(stepIDs) == 0 {
		return detail, nil
	}

	if err = h.loadMachines(db, &detail, stepIDs); err != nil {
		return WorkOrderDetail{}, err
	}
	return detail, nil
}

func (h GetWorkOrderQueryHandler) loadSteps(db *gorm.DB, detail *WorkOrderDetail) ([]int64, error) {
	rows, err := db.Raw(`
		SELECT
			op.id,
			op.process_id,
			p.name,
			op.available_quantity,
			op.completed_quantity,
			op.status,
			op.sequence
		FROM order_processes op
		INNER JOIN processes p ON p.id = op.process_id
		WHERE op.order_id = ?
		ORDER BY op.sequence
	`, detail.ID.Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stepIDs []int64
	for rows.Next() {
		var (
			stepID, processID int64
			view              ProcessStepView
		)
		if err = rows.Scan(&stepID, &processID, &view.ProcessName, &view.AvailableQuantity,
			&view.CompletedQuantity, &view.Status, &view.Sequence); err != nil {
			return nil, err
		}
		if view.ProcessID, err = kernel.NewID(processID); err != nil {
			return nil, err
		}
		view.Machines = make([]MachineView, 0)
		detail.Processes = append(detail.Processes, view)
		stepIDs = append(stepIDs, stepID)
	}
	return stepIDs, rows.Err()
}

func (h GetWorkOrderQueryHandler) loadMachines(db *gorm.DB, detail *WorkOrderDetail, stepIDs []int64) error {
	rows, err := db.Raw(`
		SELECT
			opm.order_process_id,
			m.id,
			m.name,
			opm.assigned_quantity,
			opm.completed_quantity
		FROM order_process_machines opm
		INNER JOIN machines m ON m.id = opm.machine_id
		WHERE opm.order_process_id IN ?
		ORDER BY opm.id
	`, stepIDs).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	index := make(map[int64]int, len(stepIDs))
	for i, id := range stepIDs {
		index[id] = i
	}

	for rows.Next() {
		var (
			stepID, machineID int64
			view              MachineView
		)
		if err = rows.Scan(&stepID, &machineID, &view.MachineName,
			&view.AssignedQuantity, &view.CompletedQuantity); err != nil {
			return err
		}
		if view.MachineID, err = kernel.NewID(machineID); err != nil {
			return err
		}
		i := index[stepID]
		detail.Processes[i].Machines = append(detail.Processes[i].Machines, view)
	}
	return rows.Err()
}
