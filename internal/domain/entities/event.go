package entities

import "time"

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventPaid          OrderEventType = "order.paid"
	OrderEventFailed        OrderEventType = "order.failed"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is published after an order change is committed.
type OrderEvent struct {
	Type        OrderEventType `json:"type"`
	OrderID     string         `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	UserID      string         `json:"user_id"`
	Status      PaymentStatus  `json:"status"`
	AmountMinor int64          `json:"amount_minor"`
	Currency    string         `json:"currency"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

func NewOrderEvent(t OrderEventType, o Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:        t,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Status:      o.PaymentStatus,
		AmountMinor: o.AmountMinor,
		Currency:    o.Currency,
		OccurredAt:  at,
	}
}
