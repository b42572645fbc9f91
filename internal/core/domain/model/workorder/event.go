package workorder

import (
	"time"

	"workorders/internal/core/domain/model/kernel"
)

// EventName identifies what happened to an order.
type EventName string

const (
	EventOrderCreated    EventName = "work_order.created"
	EventOrderUpdated    EventName = "work_order.updated"
	EventStepCompleted   EventName = "process_step.completed"
	EventStockConsumed   EventName = "inventory.consumed"
	EventMachineAssigned EventName = "machines.assigned"
)

// Event is a fact recorded by the Order aggregate. ProcessID is zero for
// order-level events. Quantity is only set for EventStockConsumed. Events are handed to the publisher only after the
// transaction that produced them has committed.
type Event struct {
	Name       EventName
	OrderID    kernel.ID
	ProcessID  kernel.ID
	Quantity   int
	OccurredAt time.Time
}
