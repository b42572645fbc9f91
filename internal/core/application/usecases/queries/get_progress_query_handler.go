package queries

import (
	"context"
	"database/sql"

	"workorders/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetProgressQueryHandler reads the progress view. An unknown order yields no rows.
type GetProgressQueryHandler struct {
	db *gorm.DB
}

func NewGetProgressQueryHandler(db *gorm.DB) GetProgressQueryHandler {
	return GetProgressQueryHandler{db: db}
}

func (h GetProgressQueryHandler) Handle(ctx context.Context, query GetProgressQuery) ([]ProgressRow, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := make([]ProgressRow, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			op.process_id,
			COALESCE(p.name, ''),
			op.sequence,
			op.available_quantity,
			op.completed_quantity,
			op.status,
			m.id,
			m.name,
			opm.assigned_quantity,
			opm.completed_quantity
		FROM order_processes op
		LEFT JOIN processes p ON p.id = op.process_id
		LEFT JOIN order_process_machines opm ON opm.order_process_id = op.id
		LEFT JOIN machines m ON m.id = opm.machine_id
		WHERE op.order_id = ?
		ORDER BY op.sequence, opm.id
	`, query.OrderID().Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row                 ProgressRow
			processID           int64
			machineID           sql.NullInt64
			machineName         sql.NullString
			assigned, completed sql.NullInt32
		)
		if err = rows.Scan(&processID, &row.ProcessName, &row.Sequence, &row.AvailableQuantity,
			&row.CompletedQuantity, &row.Status, &machineID, &machineName, &assigned, &completed); err != nil {
			return nil, err
		}

		if row.ProcessID, err = kernel.NewID(processID); err != nil {
			return nil, err
		}
		if machineID.Valid {
			id, idErr := kernel.NewID(machineID.Int64)
			if idErr != nil {
				return nil, idErr
			}
			row.MachineID = &id
		}
		if machineName.Valid {
			row.MachineName = &machineName.String
		}
		if assigned.Valid {
			v := int(assigned.Int32)
			row.AssignedQuantity = &v
		}
		if completed.Valid {
			v := int(completed.Int32)
			row.MachineCompletedQuantity = &v
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
