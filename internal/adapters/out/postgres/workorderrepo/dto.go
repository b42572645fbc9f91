// Package workorderrepo persists Order aggregates across three tables:
// orders, their process steps and the machine assignments of each step.
package workorderrepo

import (
	"time"

	"workorders/internal/adapters/out/postgres/catalogrepo"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
)

// OrderDTO is a row of the orders table. Deleting an order cascades to its
// steps and, through them, to their assignments.
type OrderDTO struct {
	ID           int64                   `gorm:"primaryKey"`
	CustomerName string                  `gorm:"type:varchar(255);not null"`
	ProductID    int64                   `gorm:"not null;index"`
	Quantity     int                     `gorm:"type:int;not null"`
	DueDate      *time.Time              `gorm:"type:timestamptz"`
	Status       string                  `gorm:"type:varchar(50);not null;default:'Pending'"`
	CreatedAt    time.Time               `gorm:"not null;autoCreateTime"`
	Product      *catalogrepo.ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Processes    []OrderProcessDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderProcessDTO is one process step of an order.
type OrderProcessDTO struct {
	ID                int64                    `gorm:"primaryKey"`
	OrderID           int64                    `gorm:"not null;uniqueIndex:idx_order_process;uniqueIndex:idx_order_sequence"`
	ProcessID         int64                    `gorm:"not null;uniqueIndex:idx_order_process"`
	Sequence          int                      `gorm:"type:int;not null;uniqueIndex:idx_order_sequence"`
	AvailableQuantity int                      `gorm:"type:int;not null;default:0"`
	CompletedQuantity int                      `gorm:"type:int;not null;default:0"`
	Status            string                   `gorm:"type:varchar(50);not null"`
	Process           *catalogrepo.ProcessDTO  `gorm:"foreignKey:ProcessID;constraint:OnDelete:RESTRICT"`
	Machines          []OrderProcessMachineDTO `gorm:"foreignKey:OrderProcessID;constraint:OnDelete:CASCADE"`
}

func (OrderProcessDTO) TableName() string {
	return "order_processes"
}

// OrderProcessMachineDTO is one machine assignment of a step.
type OrderProcessMachineDTO struct {
	ID                int64                   `gorm:"primaryKey"`
	OrderProcessID    int64                   `gorm:"not null;index"`
	MachineID         int64                   `gorm:"not null;index"`
	AssignedQuantity  int                     `gorm:"type:int;not null;default:0"`
	CompletedQuantity int                     `gorm:"type:int;not null;default:0"`
	Machine           *catalogrepo.MachineDTO `gorm:"foreignKey:MachineID;constraint:OnDelete:RESTRICT"`
}

func (OrderProcessMachineDTO) TableName() string {
	return "order_process_machines"
}

// Models lists the order tables in dependency order for AutoMigrate.
func Models() []any {
	return []any{
		&OrderDTO{},
		&OrderProcessDTO{},
		&OrderProcessMachineDTO{},
	}
}

// fromDomain converts a new order into its insert graph.
func fromDomain(o *workorder.Order) OrderDTO {
	steps := o.Steps()
	processes := make([]OrderProcessDTO, 0, len(steps))
	for _, s := range steps {
		processes = append(processes, stepFromDomain(o.ID(), s))
	}

	return OrderDTO{
		ID:           o.ID().Int64(),
		CustomerName: o.CustomerName(),
		ProductID:    o.ProductID().Int64(),
		Quantity:     o.Quantity(),
		DueDate:      o.DueDate(),
		Status:       o.Status(),
		Processes:    processes,
	}
}

func stepFromDomain(orderID kernel.ID, s *workorder.ProcessStep) OrderProcessDTO {
	assignments := s.Assignments()
	machines := make([]OrderProcessMachineDTO, 0, len(assignments))
	for _, a := range assignments {
		machines = append(machines, assignmentFromDomain(s.ID(), a))
	}

	return OrderProcessDTO{
		ID:                s.ID().Int64(),
		OrderID:           orderID.Int64(),
		ProcessID:         s.ProcessID().Int64(),
		Sequence:          s.Sequence(),
		AvailableQuantity: s.AvailableQuantity(),
		CompletedQuantity: s.CompletedQuantity(),
		Status:            s.Status().String(),
		Machines:          machines,
	}
}

func assignmentFromDomain(stepID kernel.ID, a *workorder.MachineAssignment) OrderProcessMachineDTO {
	return OrderProcessMachineDTO{
		ID:                a.ID().Int64(),
		OrderProcessID:    stepID.Int64(),
		MachineID:         a.MachineID().Int64(),
		AssignedQuantity:  a.AssignedQuantity(),
		CompletedQuantity: a.CompletedQuantity(),
	}
}

// toDomain rebuilds the aggregate from a fully loaded graph.
func toDomain(dto OrderDTO) (*workorder.Order, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.NewID(dto.ProductID)
	if err != nil {
		return nil, err
	}

	steps := make([]*workorder.ProcessStep, 0, len(dto.Processes))
	for _, p := range dto.Processes {
		step, stepErr := stepToDomain(p)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, step)
	}

	return workorder.RestoreOrder(
		id, dto.CustomerName, productID, dto.Quantity, dto.DueDate, dto.Status, dto.CreatedAt, steps,
	)
}

func stepToDomain(dto OrderProcessDTO) (*workorder.ProcessStep, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	processID, err := kernel.NewID(dto.ProcessID)
	if err != nil {
		return nil, err
	}
	status, err := workorder.ParseStepStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	assignments := make([]*workorder.MachineAssignment, 0, len(dto.Machines))
	for _, m := range dto.Machines {
		a, aErr := assignmentToDomain(m)
		if aErr != nil {
			return nil, aErr
		}
		assignments = append(assignments, a)
	}

	return workorder.RestoreProcessStep(
		id, processID, dto.Sequence, dto.AvailableQuantity, dto.CompletedQuantity, status, assignments,
	)
}

func assignmentToDomain(dto OrderProcessMachineDTO) (*workorder.MachineAssignment, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	machineID, err := kernel.NewID(dto.MachineID)
	if err != nil {
		return nil, err
	}
	return workorder.RestoreMachineAssignment(id, machineID, dto.AssignedQuantity, dto.CompletedQuantity)
}
