package workorder

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

var (
	// ErrAssignmentsRequired is returned when an additive assignment carries no machines.
	ErrAssignmentsRequired = errs.NewValueIsRequiredError("assignments")

	// ErrInventoryUsedIsNegative guards the consumption amount of a revision.
	ErrInventoryUsedIsNegative = errors.New("inventoryUsed must not be negative")
)

// ProcessStep is one production process of one order.
//
// Invariants:
//   - processID is valid and sequence is at least 1
//   - 0 <= completedQuantity <= availableQuantity
//   - status is Pending, Assigned or Completed
//
// A step is owned by its Order and is only changed through it.
type ProcessStep struct {
	id                kernel.ID
	processID         kernel.ID
	sequence          int
	availableQuantity int
	completedQuantity int
	status            StepStatus

	assignments         []*MachineAssignment
	assignmentsReplaced bool
}

// StepRevision carries the caller-supplied changes for one step of an update.
// Nil pointers keep the stored value. InventoryUsed is the amount already
// drawn from the inventory ledger for this step.
type StepRevision struct {
	AvailableQuantity *int
	Status            *StepStatus
	InventoryUsed     int
}

// NewProcessStep creates a step for a new order. The status is stored as given;
// derivation only happens when the step is revised.
func NewProcessStep(
	processID kernel.ID,
	sequence int,
	availableQuantity int,
	completedQuantity int,
	status StepStatus,
	assignments []*MachineAssignment,
) (*ProcessStep, error) {
	step := &ProcessStep{
		sequence:          sequence,
		availableQuantity: availableQuantity,
		completedQuantity: completedQuantity,
		status:            status,
		assignments:       append([]*MachineAssignment(nil), assignments...),
	}

	if err := errors.Join(
		step.setProcessID(processID),
		step.validateSequence(),
		validateQuantities(processID, availableQuantity, completedQuantity),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return step, nil
}

// RestoreProcessStep rebuilds a persisted step.
func RestoreProcessStep(
	id kernel.ID,
	processID kernel.ID,
	sequence int,
	availableQuantity int,
	completedQuantity int,
	status StepStatus,
	assignments []*MachineAssignment,
) (*ProcessStep, error) {
	step, err := NewProcessStep(processID, sequence, availableQuantity, completedQuantity, status, assignments)
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}

	step.id = id
	return step, nil
}

func (s *ProcessStep) ID() kernel.ID { return s.id }

func (s *ProcessStep) ProcessID() kernel.ID { return s.processID }

func (s *ProcessStep) Sequence() int { return s.sequence }

func (s *ProcessStep) AvailableQuantity() int { return s.availableQuantity }

func (s *ProcessStep) CompletedQuantity() int { return s.completedQuantity }

func (s *ProcessStep) Status() StepStatus { return s.status }

// Assignments returns the machine assignments currently held by the step.
func (s *ProcessStep) Assignments() []*MachineAssignment {
	return append([]*MachineAssignment(nil), s.assignments...)
}

// AssignmentsReplaced reports whether the stored assignment set must be
// deleted before the current one is inserted.
func (s *ProcessStep) AssignmentsReplaced() bool { return s.assignmentsReplaced }

// AttachID records the identity assigned by the store on insert.
func (s *ProcessStep) AttachID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

// revise applies quantities and status from an update and derives the
// resulting status. It returns true when the step became Completed.
func (s *ProcessStep) revise(r StepRevision) (bool, error) {
	if r.InventoryUsed < 0 {
		return false, errs.NewValueIsInvalidErrorWithCause("inventoryUsed", ErrInventoryUsedIsNegative)
	}
	if r.InventoryUsed > kernel.MaxQuantity {
		return false, errs.NewValueIsOutOfRangeError("inventoryUsed", r.InventoryUsed, 0, kernel.MaxQuantity)
	}

	available := s.availableQuantity
	if r.AvailableQuantity != nil {
		available = *r.AvailableQuantity
	}

	requested := s.status
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return false, err
		}
		requested = *r.Status
	}

	completed := s.completedQuantity + r.InventoryUsed
	if err := validateQuantities(s.processID, available, completed); err != nil {
		return false, err
	}

	next := ApplyInventoryConsumption(requested, available, completed)
	becameCompleted := next == StepCompleted && s.status != StepCompleted

	s.availableQuantity = available
	s.completedQuantity = completed
	s.status = next
	return becameCompleted, nil
}

// replaceAssignments swaps the whole assignment set. Status is left alone.
func (s *ProcessStep) replaceAssignments(assignments []*MachineAssignment) {
	s.assignments = append([]*MachineAssignment(nil), assignments...)
	s.assignmentsReplaced = true
}

// addAssignments appends assignments and moves the step to Assigned.
func (s *ProcessStep) addAssignments(assignments []*MachineAssignment) error {
	if len(assignments) == 0 {
		return ErrAssignmentsRequired
	}

	s.assignments = append(s.assignments, assignments...)
	s.status = ApplyMachineAssignment(s.status)
	return nil
}

func (s *ProcessStep) setProcessID(processID kernel.ID) error {
	if err := processID.Validate(); err != nil {
		return fmt.Errorf("processId: %w", err)
	}
	s.processID = processID
	return nil
}

func (s *ProcessStep) validateSequence() error {
	if s.sequence < 1 || s.sequence > kernel.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("sequence", s.sequence, 1, kernel.MaxQuantity)
	}
	return nil
}

func validateQuantities(processID kernel.ID, available, completed int) error {
	if available < 0 || available > kernel.MaxQuantity {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"availableQuantity", available, 0, kernel.MaxQuantity, fmt.Errorf("process %s", processID),
		)
	}
	if completed < 0 || completed > available {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"completedQuantity", completed, 0, available, fmt.Errorf("process %s", processID),
		)
	}
	return nil
}
