// Package workorder provides the Order aggregate of the work order fulfillment
// engine together with the entities it owns.
//
// The package includes:
//   - Order: the aggregate root (customer, product, quantity, due date, status)
//   - ProcessStep: one production process of one order, with released and
//     completed quantities and a derived status
//   - MachineAssignment: a machine bound to a step with a quantity commitment
//   - StepStatus: the step state machine with its two transition functions
//   - Event: facts recorded by the aggregate and published after commit
//
// Key business rules:
//   - An order is created together with a non-empty, ordered set of steps;
//     sequence and process are unique within the order
//   - 0 <= completedQuantity <= availableQuantity holds for every step
//   - Inventory consumption promotes a step to Completed once it has released
//     quantity and all of it is completed; no other transition is automatic
//   - Assigning machines always moves a step to Assigned and keeps earlier
//     assignments; updating an order replaces a step's assignments wholesale
package workorder
