package interfaces

import (
	"context"
	"errors"
	"time"

	"transcribe_billing/internal/domain/entities"
)

// ErrDuplicateKey is returned by Create when the order number or payment
// reference is already taken. Callers regenerate both and retry.
var ErrDuplicateKey = errors.New("duplicate order key")

// ErrTransactionAlreadySettled is returned by TransitionStatus when the
// provider transaction of a paid transition already settled another order.
var ErrTransactionAlreadySettled = errors.New("provider transaction already settled another order")

// IOrderRepository abstracts persistence for Order.
//
// Lookups return a zero Order (empty ID) when nothing matches.
// TransitionStatus returns a zero Order when the order is missing or its
// stored status no longer equals t.From. A paid transition also claims
// t.SettledTransaction() in the same atomic step.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByPaymentReference(ctx context.Context, paymentReference string) (entities.Order, error)
	ListByUserID(ctx context.Context, userID string, status entities.PaymentStatus) ([]entities.Order, error)
	Stats(ctx context.Context, since time.Time) (entities.OrderStats, error)
	TransitionStatus(ctx context.Context, id string, t entities.StatusTransition) (entities.Order, error)
}
