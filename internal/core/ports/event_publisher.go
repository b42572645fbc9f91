package ports

import (
	"context"

	"workorders/internal/core/domain/model/workorder"
)

// EventPublisher delivers domain events after the transaction that produced
// them has committed. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, events ...workorder.Event) error
}
