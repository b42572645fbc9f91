package workorder

import (
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

// MachineAssignment binds a machine to a process step with the quantity it
// is expected to produce. It allocates capacity and never consumes inventory.
type MachineAssignment struct {
	id                kernel.ID
	machineID         kernel.ID
	assignedQuantity  int
	completedQuantity int
}

// NewMachineAssignment creates an assignment that has not been persisted yet.
func NewMachineAssignment(machineID kernel.ID, assignedQuantity int) (*MachineAssignment, error) {
	if err := machineID.Validate(); err != nil {
		return nil, fmt.Errorf("machineId: %w", err)
	}
	if assignedQuantity < 0 || assignedQuantity > kernel.MaxQuantity {
		return nil, errs.NewValueIsOutOfRangeErrorWithCause(
			"assignedQuantity", assignedQuantity, 0, kernel.MaxQuantity,
			fmt.Errorf("machine %s", machineID),
		)
	}

	return &MachineAssignment{
		machineID:        machineID,
		assignedQuantity: assignedQuantity,
	}, nil
}

// RestoreMachineAssignment rebuilds a persisted assignment.
func RestoreMachineAssignment(
	id, machineID kernel.ID, assignedQuantity, completedQuantity int,
) (*MachineAssignment, error) {
	a, err := NewMachineAssignment(machineID, assignedQuantity)
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}

	a.id = id
	a.completedQuantity = completedQuantity
	return a, nil
}

// ID returns the store identity; zero until the assignment is persisted.
func (a *MachineAssignment) ID() kernel.ID { return a.id }

func (a *MachineAssignment) MachineID() kernel.ID { return a.machineID }

func (a *MachineAssignment) AssignedQuantity() int { return a.assignedQuantity }

func (a *MachineAssignment) CompletedQuantity() int { return a.completedQuantity }

// IsNew reports whether the assignment still has to be inserted.
func (a *MachineAssignment) IsNew() bool { return a.id.IsZero() }

// AttachID records the identity assigned by the store on insert.
func (a *MachineAssignment) AttachID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}
