package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/usecase/interfaces"
)

// OrderMemoryRepository keeps orders in process memory. It backs the
// STORAGE_DRIVER=memory mode and tests that need real conditional updates.
type OrderMemoryRepository struct {
	mu           sync.Mutex
	byID         map[string]entities.Order
	byNumber     map[string]string
	byPaymentRef map[string]string
	settled      map[string]string
}

var _ interfaces.IOrderRepository = (*OrderMemoryRepository)(nil)

func NewOrderMemoryRepository() *OrderMemoryRepository {
	return &OrderMemoryRepository{
		byID:         map[string]entities.Order{},
		byNumber:     map[string]string{},
		byPaymentRef: map[string]string{},
		settled:      map[string]string{},
	}
}

func (r *OrderMemoryRepository) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[o.ID]; ok {
		return entities.Order{}, fmt.Errorf("%w: id %s", interfaces.ErrDuplicateKey, o.ID)
	}
	if _, ok := r.byNumber[o.OrderNumber]; ok {
		return entities.Order{}, fmt.Errorf("%w: order number %s", interfaces.ErrDuplicateKey, o.OrderNumber)
	}
	if _, ok := r.byPaymentRef[o.PaymentReference]; ok {
		return entities.Order{}, fmt.Errorf("%w: payment reference %s", interfaces.ErrDuplicateKey, o.PaymentReference)
	}
	o = cloneOrder(o)
	r.byID[o.ID] = o
	r.byNumber[o.OrderNumber] = o.ID
	r.byPaymentRef[o.PaymentReference] = o.ID
	return cloneOrder(o), nil
}

func (r *OrderMemoryRepository) GetByID(_ context.Context, id string) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneOrder(r.byID[id]), nil
}

func (r *OrderMemoryRepository) GetByPaymentReference(_ context.Context, paymentReference string) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPaymentRef[paymentReference]
	if !ok {
		return entities.Order{}, nil
	}
	return cloneOrder(r.byID[id]), nil
}

func (r *OrderMemoryRepository) ListByUserID(_ context.Context, userID string, status entities.PaymentStatus) ([]entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Order, 0)
	for _, o := range r.byID {
		if o.UserID != userID || (status != "" && o.PaymentStatus != status) {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *OrderMemoryRepository) TransitionStatus(_ context.Context, id string, t entities.StatusTransition) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok || o.PaymentStatus != t.From {
		return entities.Order{}, nil
	}
	tx := t.SettledTransaction()
	if owner, claimed := r.settled[tx]; tx != "" && claimed && owner != id {
		return entities.Order{}, fmt.Errorf("%w: %s", interfaces.ErrTransactionAlreadySettled, tx)
	}
	o = o.Apply(t)
	r.byID[id] = o
	if tx != "" {
		r.settled[tx] = id
	}
	return cloneOrder(o), nil
}

func (r *OrderMemoryRepository) Stats(_ context.Context, since time.Time) (entities.OrderStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := entities.NewOrderStats(since)
	for _, o := range r.byID {
		stats.Add(o)
	}
	return stats, nil
}

func cloneOrder(o entities.Order) entities.Order {
	if o.History != nil {
		o.History = append([]entities.StatusChange(nil), o.History...)
	}
	if o.PaidAt != nil {
		paidAt := *o.PaidAt
		o.PaidAt = &paidAt
	}
	o.Pricing.Breakdown.Components = append(o.Pricing.Breakdown.Components[:0:0], o.Pricing.Breakdown.Components...)
	return o
}
