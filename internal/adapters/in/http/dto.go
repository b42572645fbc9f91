package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
)

// DueDate accepts either a calendar date ("2006-01-02") or an RFC 3339 timestamp.
type DueDate struct {
	time.Time
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("dueDate", err)
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("dueDate", fmt.Errorf("%q is neither a date nor an RFC 3339 timestamp", raw))
	}
	d.Time = t
	return nil
}

func (d *DueDate) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

type MachineRequest struct {
	MachineID        int64 `json:"machineId"`
	AssignedQuantity int   `json:"assignedQuantity"`
}

type NewProcessStepRequest struct {
	ProcessID         int64            `json:"processId"`
	Sequence          int              `json:"sequence"`
	AvailableQuantity int              `json:"availableQuantity"`
	CompletedQuantity int              `json:"completedQuantity"`
	Status            string           `json:"status"`
	Machines          []MachineRequest `json:"machines"`
}

type NewWorkOrderRequest struct {
	CustomerName string                  `json:"customerName"`
	ProductID    int64                   `json:"productId"`
	Quantity     int                     `json:"quantity"`
	DueDate      *DueDate                `json:"dueDate"`
	Processes    []NewProcessStepRequest `json:"processes"`
}

// ProcessStepUpdateRequest reports progress on one step. Omitted fields keep
// their stored values; "machines", when present, replaces the assignments.
type ProcessStepUpdateRequest struct {
	ProcessID         int64            `json:"processId"`
	AvailableQuantity *int             `json:"availableQuantity"`
	Status            *string          `json:"status"`
	InventoryUsed     int              `json:"inventoryUsed"`
	Machines          []MachineRequest `json:"machines"`
}

type WorkOrderUpdateRequest struct {
	CustomerName *string                    `json:"customerName"`
	ProductID    *int64                     `json:"productId"`
	Quantity     *int                       `json:"quantity"`
	DueDate      *DueDate                   `json:"dueDate"`
	Processes    []ProcessStepUpdateRequest `json:"processes"`
}

type MachineAssignmentRequest struct {
	Assignments []MachineRequest `json:"assignments"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type WorkOrderResponse struct {
	ID           int64      `json:"id"`
	CustomerName string     `json:"customerName"`
	ProductID    int64      `json:"productId"`
	Quantity     int        `json:"quantity"`
	DueDate      *time.Time `json:"dueDate"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type MachineResponse struct {
	MachineID         int64  `json:"machineId"`
	MachineName       string `json:"machineName"`
	AssignedQuantity  int    `json:"assignedQuantity"`
	CompletedQuantity int    `json:"completedQuantity"`
}

type ProcessStepResponse struct {
	ProcessID         int64             `json:"processId"`
	ProcessName       string            `json:"processName"`
	AvailableQuantity int               `json:"availableQuantity"`
	CompletedQuantity int               `json:"completedQuantity"`
	Status            string            `json:"status"`
	Sequence          int               `json:"sequence"`
	Machines          []MachineResponse `json:"machines"`
}

type WorkOrderDetailResponse struct {
	WorkOrderResponse
	Processes []ProcessStepResponse `json:"processes"`
}

type ProgressRowResponse struct {
	ProcessID                int64   `json:"processId"`
	ProcessName              string  `json:"processName"`
	Sequence                 int     `json:"sequence"`
	AvailableQuantity        int     `json:"availableQuantity"`
	CompletedQuantity        int     `json:"completedQuantity"`
	Status                   string  `json:"status"`
	MachineID                *int64  `json:"machineId"`
	MachineName              *string `json:"machineName"`
	AssignedQuantity         *int    `json:"assignedQuantity"`
	MachineCompletedQuantity *int    `json:"machineCompletedQuantity"`
}

type InventoryResponse struct {
	AvailableQuantity int `json:"availableQuantity"`
}

func toCreateCommand(req NewWorkOrderRequest) (commands.CreateWorkOrderCommand, error) {
	productID, err := kernel.NewID(req.ProductID)
	if err != nil {
		return commands.CreateWorkOrderCommand{}, fmt.Errorf("productId: %w", err)
	}

	steps := make([]commands.StepInput, 0, len(req.Processes))
	for _, p := range req.Processes {
		step, stepErr := toStepInput(p)
		if stepErr != nil {
			return commands.CreateWorkOrderCommand{}, stepErr
		}
		steps = append(steps, step)
	}

	return commands.NewCreateWorkOrderCommand(req.CustomerName, productID, req.Quantity, req.DueDate.ptr(), steps)
}

func toStepInput(p NewProcessStepRequest) (commands.StepInput, error) {
	processID, idErr := kernel.NewID(p.ProcessID)
	status := workorder.StepPending
	var statusErr error
	if p.Status != "" {
		status, statusErr = workorder.ParseStepStatus(p.Status)
	}
	machines, machinesErr := toMachineInputs(p.Machines)

	if err := errors.Join(idErr, statusErr, machinesErr); err != nil {
		return commands.StepInput{}, err
	}
	return commands.StepInput{
		ProcessID:         processID,
		Sequence:          p.Sequence,
		AvailableQuantity: p.AvailableQuantity,
		CompletedQuantity: p.CompletedQuantity,
		Status:            status,
		Machines:          machines,
	}, nil
}

// toMachineInputs keeps nil apart from empty: only a present list replaces
// assignments on update.
func toMachineInputs(reqs []MachineRequest) ([]commands.MachineInput, error) {
	if reqs == nil {
		return nil, nil
	}
	inputs := make([]commands.MachineInput, 0, len(reqs))
	for _, m := range reqs {
		machineID, err := kernel.NewID(m.MachineID)
		if err != nil {
			return nil, fmt.Errorf("machineId: %w", err)
		}
		inputs = append(inputs, commands.MachineInput{MachineID: machineID, AssignedQuantity: m.AssignedQuantity})
	}
	return inputs, nil
}

func toUpdateCommand(orderID int64, req WorkOrderUpdateRequest) (commands.UpdateWorkOrderCommand, error) {
	id, err := kernel.NewID(orderID)
	if err != nil {
		return commands.UpdateWorkOrderCommand{}, fmt.Errorf("orderId: %w", err)
	}

	details := workorder.OrderDetails{
		CustomerName: req.CustomerName,
		Quantity:     req.Quantity,
		DueDate:      req.DueDate.ptr(),
	}
	if req.ProductID != nil {
		productID, idErr := kernel.NewID(*req.ProductID)
		if idErr != nil {
			return commands.UpdateWorkOrderCommand{}, fmt.Errorf("productId: %w", idErr)
		}
		details.ProductID = &productID
	}

	steps := make([]commands.StepUpdateInput, 0, len(req.Processes))
	for _, p := range req.Processes {
		step, stepErr := toStepUpdateInput(p)
		if stepErr != nil {
			return commands.UpdateWorkOrderCommand{}, stepErr
		}
		steps = append(steps, step)
	}

	return commands.NewUpdateWorkOrderCommand(id, details, steps)
}

func toStepUpdateInput(p ProcessStepUpdateRequest) (commands.StepUpdateInput, error) {
	processID, idErr := kernel.NewID(p.ProcessID)
	var (
		status    *workorder.StepStatus
		statusErr error
	)
	if p.Status != nil {
		var s workorder.StepStatus
		s, statusErr = workorder.ParseStepStatus(*p.Status)
		status = &s
	}
	machines, machinesErr := toMachineInputs(p.Machines)

	if err := errors.Join(idErr, statusErr, machinesErr); err != nil {
		return commands.StepUpdateInput{}, err
	}
	return commands.StepUpdateInput{
		ProcessID:         processID,
		AvailableQuantity: p.AvailableQuantity,
		Status:            status,
		InventoryUsed:     p.InventoryUsed,
		Machines:          machines,
	}, nil
}

func toAssignCommand(orderID, processID int64, req MachineAssignmentRequest) (commands.AssignMachinesCommand, error) {
	oid, oidErr := kernel.NewID(orderID)
	pid, pidErr := kernel.NewID(processID)
	assignments, machinesErr := toMachineInputs(req.Assignments)
	if err := errors.Join(oidErr, pidErr, machinesErr); err != nil {
		return commands.AssignMachinesCommand{}, err
	}
	return commands.NewAssignMachinesCommand(oid, pid, assignments)
}

func orderResponse(o *workorder.Order) WorkOrderResponse {
	return WorkOrderResponse{
		ID:           o.ID().Int64(),
		CustomerName: o.CustomerName(),
		ProductID:    o.ProductID().Int64(),
		Quantity:     o.Quantity(),
		DueDate:      o.DueDate(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
	}
}

func summaryResponse(s queries.WorkOrderSummary) WorkOrderResponse {
	return WorkOrderResponse{
		ID:           s.ID.Int64(),
		CustomerName: s.CustomerName,
		ProductID:    s.ProductID.Int64(),
		Quantity:     s.Quantity,
		DueDate:      s.DueDate,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
	}
}

func detailResponse(d queries.WorkOrderDetail) WorkOrderDetailResponse {
	resp := WorkOrderDetailResponse{
		WorkOrderResponse: summaryResponse(d.WorkOrderSummary),
		Processes:         make([]ProcessStepResponse, len(d.Processes)),
	}
	for i, p := range d.Processes {
		machines := make([]MachineResponse, len(p.Machines))
		for j, m := range p.Machines {
			machines[j] = MachineResponse{
				MachineID:         m.MachineID.Int64(),
				MachineName:       m.MachineName,
				AssignedQuantity:  m.AssignedQuantity,
				CompletedQuantity: m.CompletedQuantity,
			}
		}
		resp.Processes[i] = ProcessStepResponse{
			ProcessID:         p.ProcessID.Int64(),
			ProcessName:       p.ProcessName,
			AvailableQuantity: p.AvailableQuantity,
			CompletedQuantity: p.CompletedQuantity,
			Status:            p.Status,
			Sequence:          p.Sequence,
			Machines:          machines,
		}
	}
	return resp
}

func progressResponse(r queries.ProgressRow) ProgressRowResponse {
	resp := ProgressRowResponse{
		ProcessID:                r.ProcessID.Int64(),
		ProcessName:              r.ProcessName,
		Sequence:                 r.Sequence,
		AvailableQuantity:        r.AvailableQuantity,
		CompletedQuantity:        r.CompletedQuantity,
		Status:                   r.Status,
		MachineName:              r.MachineName,
		AssignedQuantity:         r.AssignedQuantity,
		MachineCompletedQuantity: r.MachineCompletedQuantity,
	}
	if r.MachineID != nil {
		id := r.MachineID.Int64()
		resp.MachineID = &id
	}
	return resp
}
