// Package metrics counts committed domain events with Prometheus before
// handing them to the next publisher.
package metrics

import (
	"context"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

var _ ports.EventPublisher = (*EventMetrics)(nil)

// EventMetrics is an EventPublisher decorator.
type EventMetrics struct {
	next     ports.EventPublisher
	events   *prometheus.CounterVec
	consumed *prometheus.CounterVec
}

// NewEventMetrics registers the counters on reg. A nil next only counts.
func NewEventMetrics(reg prometheus.Registerer, next ports.EventPublisher) *EventMetrics {
	m := &EventMetrics{
		next: next,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workorders",
			Name:      "domain_events_total",
			Help:      "Domain events emitted by committed transactions.",
		}, []string{"event"}),
		consumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workorders",
			Name:      "inventory_consumed_units_total",
			Help:      "Units of inventory consumed by work order updates.",
		}, []string{"process_id"}),
	}
	reg.MustRegister(m.events, m.consumed)
	return m
}

func (m *EventMetrics) Publish(ctx context.Context, events ...workorder.Event) error {
	for _, e := range events {
		m.events.WithLabelValues(string(e.Name)).Inc()
		if e.Name == workorder.EventStockConsumed {
			m.consumed.WithLabelValues(e.ProcessID.String()).Add(float64(e.Quantity))
		}
	}
	if m.next == nil {
		return nil
	}
	return m.next.Publish(ctx, events...)
}
