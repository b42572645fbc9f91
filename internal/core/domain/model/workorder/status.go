package workorder

import (
	"fmt"

	"workorders/internal/pkg/errs"
)

// StepStatus is the lifecycle state of a process step.
//
//	Pending ──> Assigned ──> Completed
//	   │                        ▲
//	   └────────────────────────┘
//
// Promotion to Completed happens through ApplyInventoryConsumption, or when the
// caller sets it during an update. Moving to Assigned happens through
// ApplyMachineAssignment. Every other change is requested by the caller.
type StepStatus int

const (
	// StepUnknown catches uninitialized values.
	StepUnknown StepStatus = iota
	StepPending
	StepAssigned
	StepCompleted
)

func getStepStatusStrings() map[StepStatus]string {
	return map[StepStatus]string{
		StepUnknown:   "Unknown",
		StepPending:   "Pending",
		StepAssigned:  "Assigned",
		StepCompleted: "Completed",
	}
}

// ParseStepStatus converts the persisted or transported name of a status.
func ParseStepStatus(s string) (StepStatus, error) {
	for status, name := range getStepStatusStrings() {
		if status != StepUnknown && name == s {
			return status, nil
		}
	}
	return StepUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid step status", s),
	)
}

// Validate rejects StepUnknown and out-of-range values.
func (s StepStatus) Validate() error {
	if s <= StepUnknown || s > StepCompleted {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid step status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s StepStatus) String() string {
	if str, ok := getStepStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ApplyInventoryConsumption derives the status after quantities change.
//
// A step with released quantity (available > 0) whose completed quantity has
// reached it becomes Completed. Otherwise the requested status is returned
// unchanged: the engine never demotes a status on its own, and a step with
// nothing released never completes automatically.
func ApplyInventoryConsumption(requested StepStatus, available, completed int) StepStatus {
	if available > 0 && completed >= available {
		return StepCompleted
	}
	return requested
}

// ApplyMachineAssignment returns the status after machines are assigned.
//
// The result is Assigned whatever the current status is, Completed included.
func ApplyMachineAssignment(_ StepStatus) StepStatus {
	return StepAssigned
}
