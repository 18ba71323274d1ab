package entities

import (
	"time"

	"transcribe_billing/internal/domain/pricing"
)

// PaymentStatus is the lifecycle state of an order's payment.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

var allowedTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusPaid:    {PaymentStatusRefunded},
	PaymentStatusFailed:  {PaymentStatusCancelled},
}

// CanTransition reports whether an order in status s may move to next.
// refunded and cancelled are terminal.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, to := range allowedTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// CustomerInfo is the contact captured at checkout.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// StatusChange is one entry of the order's audit trail. Entries are only ever appended.
type StatusChange struct {
	From      PaymentStatus `json:"from"`
	To        PaymentStatus `json:"to"`
	ActorID   string        `json:"actor_id"`
	ActorRole Role          `json:"actor_role"`
	Reason    string        `json:"reason,omitempty"`
	At        time.Time     `json:"at"`
}

// StatusTransition is a conditional status update: it only applies while the
// stored status still equals From.
type StatusTransition struct {
	From                     PaymentStatus
	To                       PaymentStatus
	Change                   StatusChange
	ExternalPaymentReference string
	PaymentMethod            string
	PaidAt                   *time.Time
	FailureReason            string
	AdminNotes               string
	UpdatedAt                time.Time
}

// SettledTransaction returns the provider transaction this transition settles
// the order with. Only a move to paid carrying a provider reference claims one;
// a transaction can be claimed by at most one order.
func (t StatusTransition) SettledTransaction() string {
	if t.To != PaymentStatusPaid {
		return ""
	}
	return t.ExternalPaymentReference
}

// Order is a priced transcription order awaiting or holding payment.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (user_id-index): user_id
//   - guard items order_number#<n> and payment_reference#<ref> enforce uniqueness
//   - guard item external_payment_reference#<ref> binds a settled transaction to one order
//
// Monetary representation:
//   - AmountMinor is the authoritative charge in minor units of Currency.
//   - Pricing keeps the full engine result so the price can be explained later.
type Order struct {
	ID               string                `json:"id"`
	OrderNumber      string                `json:"order_number"`
	UserID           string                `json:"user_id"`
	Specification    pricing.Specification `json:"specification"`
	Customer         CustomerInfo          `json:"customer"`
	SpecialRequests  string                `json:"special_requests,omitempty"`
	Pricing          pricing.Result        `json:"pricing"`
	PricingVersion   pricing.Version       `json:"pricing_version"`
	AmountMinor      int64                 `json:"amount_minor"`
	Currency         string                `json:"currency"`
	PaymentStatus    PaymentStatus         `json:"payment_status"`
	PaymentReference string                `json:"payment_reference"`

	ExternalPaymentReference string     `json:"external_payment_reference,omitempty"`
	PaymentMethod            string     `json:"payment_method,omitempty"`
	PaidAt                   *time.Time `json:"paid_at,omitempty"`
	FailureReason            string     `json:"failure_reason,omitempty"`
	AdminNotes               string     `json:"admin_notes,omitempty"`

	History   []StatusChange `json:"history"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// OwnedBy reports whether the order belongs to userID.
func (o Order) OwnedBy(userID string) bool {
	return userID != "" && o.UserID == userID
}

// Apply returns a copy of o with t applied. Repositories that cannot express
// the update natively use it so every driver produces the same order.
func (o Order) Apply(t StatusTransition) Order {
	o.PaymentStatus = t.To
	o.UpdatedAt = t.UpdatedAt
	if t.ExternalPaymentReference != "" {
		o.ExternalPaymentReference = t.ExternalPaymentReference
	}
	if t.PaymentMethod != "" {
		o.PaymentMethod = t.PaymentMethod
	}
	if t.PaidAt != nil {
		paidAt := *t.PaidAt
		o.PaidAt = &paidAt
	}
	if t.FailureReason != "" {
		o.FailureReason = t.FailureReason
	}
	if t.AdminNotes != "" {
		o.AdminNotes = t.AdminNotes
	}
	history := make([]StatusChange, 0, len(o.History)+1)
	history = append(history, o.History...)
	o.History = append(history, t.Change)
	return o
}
