package workorder

import (
	"errors"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

// DefaultOrderStatus is the free-text status every new order starts with.
const DefaultOrderStatus = "Pending"

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrStepsRequired = errs.NewValueIsRequiredError("processes")
)

// Order is a customer request to produce a quantity of a product, decomposed
// into ordered process steps. It is the aggregate root: steps and their
// machine assignments are only changed through it.
//
// Order follows these invariants:
//   - customerName is not empty, productID is valid, quantity is positive
//   - there is at least one step
//   - sequence and processID are unique among the steps
//
// The order status is free text supplied by the excluded CRUD layer; the
// engine sets it to DefaultOrderStatus on creation and never changes it.
type Order struct {
	id           kernel.ID
	customerName string
	productID    kernel.ID
	quantity     int
	dueDate      *time.Time
	status       string
	createdAt    time.Time

	steps  []*ProcessStep
	events []Event

	isConstructed bool
}

// OrderDetails carries the scalar fields of an update. Nil keeps the stored value.
type OrderDetails struct {
	CustomerName *string
	ProductID    *kernel.ID
	Quantity     *int
	DueDate      *time.Time
}

// NewOrder creates an order with its steps, ready to be added to the repository.
//
// Example:
//
//	step, _ := workorder.NewProcessStep(processID, 1, 50, 0, workorder.StepPending, nil)
//	o, err := workorder.NewOrder("Acme", productID, 100, &due, []*workorder.ProcessStep{step})
//	if err != nil {
//	    return err
//	}
func NewOrder(
	customerName string,
	productID kernel.ID,
	quantity int,
	dueDate *time.Time,
	steps []*ProcessStep,
) (*Order, error) {
	o := &Order{
		status:        DefaultOrderStatus,
		dueDate:       dueDate,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomerName(customerName),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setSteps(steps),
	); err != nil {
		return nil, err
	}

	o.record(EventOrderCreated, kernel.ID{}, 0)
	return o, nil
}

// RestoreOrder rebuilds a persisted order. The status is taken as stored.
func RestoreOrder(
	id kernel.ID,
	customerName string,
	productID kernel.ID,
	quantity int,
	dueDate *time.Time,
	status string,
	createdAt time.Time,
	steps []*ProcessStep,
) (*Order, error) {
	o := &Order{
		status:        status,
		dueDate:       dueDate,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		o.setCustomerName(customerName),
		o.setProductID(productID),
		o.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	// Steps of a persisted order were validated on the way in; an order with
	// all of its steps removed by the CRUD layer must still load.
	o.id = id
	o.steps = steps
	return o, nil
}

// Validate ensures the order was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.ID { return o.id }

func (o *Order) CustomerName() string { return o.customerName }

func (o *Order) ProductID() kernel.ID { return o.productID }

func (o *Order) Quantity() int { return o.quantity }

func (o *Order) DueDate() *time.Time { return o.dueDate }

func (o *Order) Status() string { return o.status }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Steps returns the steps in the order they were supplied.
func (o *Order) Steps() []*ProcessStep {
	return append([]*ProcessStep(nil), o.steps...)
}

// StepByProcess finds the step for a process.
func (o *Order) StepByProcess(processID kernel.ID) (*ProcessStep, bool) {
	for _, s := range o.steps {
		if s.processID.IsEqual(processID) {
			return s, true
		}
	}
	return nil, false
}

// Revise overwrites the scalar fields present in details.
func (o *Order) Revise(details OrderDetails) error {
	next := *o
	var err error
	if details.CustomerName != nil {
		err = errors.Join(err, next.setCustomerName(*details.CustomerName))
	}
	if details.ProductID != nil {
		err = errors.Join(err, next.setProductID(*details.ProductID))
	}
	if details.Quantity != nil {
		err = errors.Join(err, next.setQuantity(*details.Quantity))
	}
	if err != nil {
		return err
	}

	o.customerName = next.customerName
	o.productID = next.productID
	o.quantity = next.quantity
	if details.DueDate != nil {
		o.dueDate = details.DueDate
	}
	o.record(EventOrderUpdated, kernel.ID{}, 0)
	return nil
}

// ReviseStep applies an update to the step of processID. The caller must
// already have drawn r.InventoryUsed from the inventory ledger.
func (o *Order) ReviseStep(processID kernel.ID, r StepRevision) error {
	step, ok := o.StepByProcess(processID)
	if !ok {
		return errs.NewObjectNotFoundError("processId", processID)
	}

	completed, err := step.revise(r)
	if err != nil {
		return err
	}
	if r.InventoryUsed > 0 {
		o.record(EventStockConsumed, processID, r.InventoryUsed)
	}
	if completed {
		o.record(EventStepCompleted, processID, 0)
	}
	return nil
}

// ReplaceStepAssignments swaps the full machine assignment set of a step.
func (o *Order) ReplaceStepAssignments(processID kernel.ID, assignments []*MachineAssignment) error {
	step, ok := o.StepByProcess(processID)
	if !ok {
		return errs.NewObjectNotFoundError("processId", processID)
	}

	step.replaceAssignments(assignments)
	return nil
}

// AssignMachines adds machines to a step and marks it Assigned.
func (o *Order) AssignMachines(processID kernel.ID, assignments []*MachineAssignment) error {
	step, ok := o.StepByProcess(processID)
	if !ok {
		return errs.NewObjectNotFoundError("processId", processID)
	}

	if err := step.addAssignments(assignments); err != nil {
		return err
	}
	o.record(EventMachineAssigned, processID, 0)
	return nil
}

// AttachID records the identity assigned by the store on insert.
func (o *Order) AttachID(id kernel.ID, createdAt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already has id %s", o.id))
	}

	o.id = id
	o.createdAt = createdAt
	return nil
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	for i := range events {
		events[i].OrderID = o.id
	}
	return events
}

func (o *Order) record(name EventName, processID kernel.ID, quantity int) {
	o.events = append(o.events, Event{
		Name:       name,
		ProcessID:  processID,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
	})
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	return nil
}

func (o *Order) setProductID(productID kernel.ID) error {
	if err := productID.Validate(); err != nil {
		return fmt.Errorf("productId: %w", err)
	}
	o.productID = productID
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > kernel.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, kernel.MaxQuantity)
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setSteps(steps []*ProcessStep) error {
	if len(steps) == 0 {
		return ErrStepsRequired
	}

	sequences := make(map[int]struct{}, len(steps))
	processes := make(map[int64]struct{}, len(steps))
	for _, s := range steps {
		if s == nil {
			return errs.NewValueIsRequiredError("process step")
		}
		if _, dup := sequences[s.sequence]; dup {
			return errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("%d is used by more than one step", s.sequence))
		}
		if _, dup := processes[s.processID.Int64()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("processId", fmt.Errorf("%s appears more than once", s.processID))
		}
		sequences[s.sequence] = struct{}{}
		processes[s.processID.Int64()] = struct{}{}
	}

	o.steps = append([]*ProcessStep(nil), steps...)
	return nil
}
