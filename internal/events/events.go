package events

import (
	"context"
	"time"
)

const (
	OrderCreated = "order.created"
	OrderPaid    = "order.paid"
)

type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	TotalCents int64     `json:"totalCents"`
	Method     string    `json:"method"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits order lifecycle events. Publishing is best-effort:
// callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, evt OrderEvent) error
	Close() error
}

// NoopPublisher backs deployments without a broker configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, OrderEvent) error { return nil }
func (NoopPublisher) Close() error                              { return nil }
