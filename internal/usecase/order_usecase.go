package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultCurrency          = "NGN"
	DefaultMaxCreateAttempts = 10
	DefaultVerifyTimeout     = 15 * time.Second
	DefaultStatsPeriodDays   = 30
	MaxStatsPeriodDays       = 3650
)

// OrderConfig carries the order settings that are not part of pricing.
type OrderConfig struct {
	Currency          string
	MaxCreateAttempts int
	VerifyTimeout     time.Duration
}

func (c OrderConfig) withDefaults() OrderConfig {
	if strings.TrimSpace(c.Currency) == "" {
		c.Currency = DefaultCurrency
	}
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if c.MaxCreateAttempts <= 0 {
		c.MaxCreateAttempts = DefaultMaxCreateAttempts
	}
	if c.VerifyTimeout <= 0 {
		c.VerifyTimeout = DefaultVerifyTimeout
	}
	return c
}

type CreateOrderInput struct {
	Specification   pricing.Specification
	Customer        entities.CustomerInfo
	SpecialRequests string
}

// PricingAudit compares the price stored on an order with a fresh computation
// under the rate table version the order was priced with.
type PricingAudit struct {
	OrderID        string          `json:"order_id"`
	Version        pricing.Version `json:"version"`
	StoredMinor    int64           `json:"stored_minor"`
	Stored         pricing.Result  `json:"stored"`
	Recomputed     *pricing.Result `json:"recomputed,omitempty"`
	RecomputeError string          `json:"recompute_error,omitempty"`
	Matches        bool            `json:"matches"`
}

// IOrderUseCase is the order lifecycle.
//
//   - CreateOrder prices a specification and persists a pending order.
//   - ConfirmPayment verifies a provider transaction and settles the order once.
//   - UpdateStatus is the admin override, restricted to the transition table.
//   - Stats is the admin overview of counts and paid revenue.

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, actor entities.Actor, in CreateOrderInput) (entities.Order, error)
	ConfirmPayment(ctx context.Context, actor entities.Actor, paymentReference, externalReference string) (entities.Order, error)
	UpdateStatus(ctx context.Context, actor entities.Actor, orderID string, status entities.PaymentStatus, notes string) (entities.Order, error)
	GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Order, error)
	ListMine(ctx context.Context, actor entities.Actor, status entities.PaymentStatus) ([]entities.Order, error)
	AuditPricing(ctx context.Context, actor entities.Actor, id string) (PricingAudit, error)
	Stats(ctx context.Context, actor entities.Actor, periodDays int) (entities.OrderStats, error)
}

type OrderUseCase struct {
	repo      interfaces.IOrderRepository
	verifier  interfaces.IPaymentVerifier
	publisher interfaces.IOrderEventPublisher
	engine    *pricing.Engine
	refs      ReferenceGenerator
	cfg       OrderConfig
	now       func() time.Time
	log       *zap.Logger
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

type OrderOption func(*OrderUseCase)

func WithReferenceGenerator(g ReferenceGenerator) OrderOption {
	return func(u *OrderUseCase) { u.refs = g }
}

func WithClock(now func() time.Time) OrderOption {
	return func(u *OrderUseCase) { u.now = now }
}

func NewOrderUseCase(
	repo interfaces.IOrderRepository,
	verifier interfaces.IPaymentVerifier,
	publisher interfaces.IOrderEventPublisher,
	engine *pricing.Engine,
	cfg OrderConfig,
	log *zap.Logger,
	opts ...OrderOption,
) *OrderUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	u := &OrderUseCase{
		repo:      repo,
		verifier:  verifier,
		publisher: publisher,
		engine:    engine,
		refs:      NewReferenceGenerator(DefaultReferencePrefix),
		cfg:       cfg.withDefaults(),
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.Named("order.usecase"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, actor entities.Actor, in CreateOrderInput) (entities.Order, error) {
	userID := strings.TrimSpace(actor.UserID)
	if userID == "" {
		return entities.Order{}, requiredField("user_id")
	}
	if err := requireSpecificationFields(in.Specification); err != nil {
		return entities.Order{}, err
	}
	customer, err := normalizeCustomer(in.Customer)
	if err != nil {
		return entities.Order{}, err
	}
	if u.repo == nil {
		return entities.Order{}, ErrRepositoryUnavailable
	}

	spec := in.Specification.Normalized()
	res, err := u.engine.Compute(spec)
	if err != nil {
		u.log.Info("[order][usecase] pricing rejected", zap.String("user_id", userID), zap.Error(err))
		return entities.Order{}, err
	}

	now := u.now()
	base := entities.Order{
		UserID:          userID,
		Specification:   spec,
		Customer:        customer,
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
		Pricing:         res,
		PricingVersion:  res.Version,
		AmountMinor:     res.TotalMinor,
		Currency:        u.cfg.Currency,
		PaymentStatus:   entities.PaymentStatusPending,
		History: []entities.StatusChange{{
			To:        entities.PaymentStatusPending,
			ActorID:   userID,
			ActorRole: actor.Role,
			Reason:    "order created",
			At:        now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 1; attempt <= u.cfg.MaxCreateAttempts; attempt++ {
		o := base
		o.ID = uuid.NewString()
		o.OrderNumber = u.refs.OrderNumber(now)
		o.PaymentReference = u.refs.PaymentReference(now)

		created, err := u.repo.Create(ctx, o)
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			u.log.Warn("[order][usecase] reference collision, regenerating",
				zap.Int("attempt", attempt), zap.String("order_number", o.OrderNumber))
			continue
		}
		if err != nil {
			u.log.Error("[order][usecase] repository create failed", zap.String("user_id", userID), zap.Error(err))
			return entities.Order{}, err
		}

		u.log.Info("[order][usecase] order created",
			zap.String("order_id", created.ID),
			zap.String("order_number", created.OrderNumber),
			zap.String("version", string(created.PricingVersion)),
			zap.Int64("amount_minor", created.AmountMinor))
		u.publish(ctx, entities.OrderEventCreated, created)
		return created, nil
	}

	return entities.Order{}, fmt.Errorf("%w after %d attempts: %w", ErrReferencesExhausted, u.cfg.MaxCreateAttempts, interfaces.ErrDuplicateKey)
}

func (u *OrderUseCase) ConfirmPayment(ctx context.Context, actor entities.Actor, paymentReference, externalReference string) (entities.Order, error) {
	paymentReference = strings.TrimSpace(paymentReference)
	externalReference = strings.TrimSpace(externalReference)
	if paymentReference == "" {
		return entities.Order{}, requiredField("reference")
	}
	if externalReference == "" {
		return entities.Order{}, requiredField("transactionId")
	}
	if u.repo == nil {
		return entities.Order{}, ErrRepositoryUnavailable
	}
	if u.verifier == nil {
		return entities.Order{}, &ProviderFailureError{Err: errors.New("payment verifier not configured")}
	}

	order, err := u.repo.GetByPaymentReference(ctx, paymentReference)
	if err != nil {
		return entities.Order{}, err
	}
	if order.ID == "" || (!order.OwnedBy(actor.UserID) && !actor.IsAdmin()) {
		return entities.Order{}, ErrOrderNotFound
	}
	if order.PaymentStatus != entities.PaymentStatusPending {
		return entities.Order{}, ErrAlreadyProcessed
	}

	log := u.log.With(zap.String("order_id", order.ID), zap.String("payment_reference", paymentReference),
		zap.String("external_reference", externalReference))
	log.Info("[order][usecase] verifying payment")

	verifyCtx, cancel := context.WithTimeout(ctx, u.cfg.VerifyTimeout)
	v, err := u.verifier.Verify(verifyCtx, externalReference)
	cancel()
	if err != nil {
		if errors.Is(err, interfaces.ErrInvalidExternalReference) {
			return entities.Order{}, pricing.NewValidationError("transactionId", "is not a valid provider reference")
		}
		log.Warn("[order][usecase] verification indeterminate", zap.Error(err))
		return entities.Order{}, &ProviderFailureError{Err: err}
	}
	if v.Pending {
		log.Info("[order][usecase] provider still processing", zap.String("provider_status", v.ProviderStatus))
		return entities.Order{}, &ProviderFailureError{Err: fmt.Errorf("transaction still %s", v.ProviderStatus)}
	}

	now := u.now()
	system := entities.SystemActor()

	if v.Declined() {
		reason := "declined by provider: " + v.ProviderStatus
		if _, err := u.transition(ctx, order, entities.PaymentStatusFailed, system, reason, now, func(t *entities.StatusTransition) {
			t.ExternalPaymentReference = externalReference
			t.FailureReason = reason
		}); err != nil {
			return entities.Order{}, err
		}
		log.Info("[order][usecase] payment declined", zap.String("provider_status", v.ProviderStatus))
		return entities.Order{}, ErrPaymentDeclined
	}

	if mismatch := checkVerification(order, v); mismatch != nil {
		if _, err := u.transition(ctx, order, entities.PaymentStatusFailed, system, mismatch.Reason, now, func(t *entities.StatusTransition) {
			t.ExternalPaymentReference = externalReference
			t.FailureReason = mismatch.Reason
		}); err != nil {
			return entities.Order{}, err
		}
		log.Warn("[order][usecase] payment mismatch", zap.String("reason", mismatch.Reason),
			zap.Int64("expected_minor", mismatch.ExpectedMinor), zap.Int64("paid_minor", mismatch.PaidMinor))
		return entities.Order{}, mismatch
	}

	paid, err := u.transition(ctx, order, entities.PaymentStatusPaid, system, "payment verified", now, func(t *entities.StatusTransition) {
		t.ExternalPaymentReference = externalReference
		t.PaymentMethod = v.Channel
		t.PaidAt = &now
	})
	if errors.Is(err, interfaces.ErrTransactionAlreadySettled) {
		log.Warn("[order][usecase] transaction already settled another order")
		return entities.Order{}, &AmountMismatchError{
			ExpectedMinor:    order.AmountMinor,
			PaidMinor:        v.PaidAmountMinor,
			ExpectedCurrency: order.Currency,
			PaidCurrency:     strings.ToUpper(v.Currency),
			Reason:           "transaction already settled another order",
		}
	}
	if err != nil {
		return entities.Order{}, err
	}
	log.Info("[order][usecase] payment confirmed", zap.String("channel", v.Channel))
	return paid, nil
}

// checkVerification compares a successful provider answer with the order.
func checkVerification(o entities.Order, v entities.PaymentVerification) *AmountMismatchError {
	e := &AmountMismatchError{
		ExpectedMinor:    o.AmountMinor,
		PaidMinor:        v.PaidAmountMinor,
		ExpectedCurrency: o.Currency,
		PaidCurrency:     strings.ToUpper(v.Currency),
	}
	switch {
	case v.PaidAmountMinor != o.AmountMinor:
		e.Reason = "amount mismatch"
	case v.Currency != "" && !strings.EqualFold(v.Currency, o.Currency):
		e.Reason = "currency mismatch"
	case v.ExternalReference != "" && v.ExternalReference != o.PaymentReference:
		e.Reason = "transaction belongs to another order"
	default:
		return nil
	}
	return e
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, actor entities.Actor, orderID string, status entities.PaymentStatus, notes string) (entities.Order, error) {
	if !actor.IsAdmin() {
		return entities.Order{}, ErrForbidden
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, requiredField("id")
	}
	status = entities.PaymentStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return entities.Order{}, pricing.NewValidationError("status", "is not a known payment status")
	}
	if u.repo == nil {
		return entities.Order{}, ErrRepositoryUnavailable
	}

	order, err := u.repo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	if !order.PaymentStatus.CanTransition(status) {
		return entities.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.PaymentStatus, status)
	}

	notes = strings.TrimSpace(notes)
	now := u.now()
	updated, err := u.transition(ctx, order, status, actor, notes, now, func(t *entities.StatusTransition) {
		t.AdminNotes = notes
		if status == entities.PaymentStatusPaid {
			t.PaidAt = &now
			t.PaymentMethod = "manual"
		}
	})
	if err != nil {
		return entities.Order{}, err
	}
	u.log.Info("[order][usecase] status overridden",
		zap.String("order_id", updated.ID), zap.String("admin_id", actor.UserID),
		zap.String("from", string(order.PaymentStatus)), zap.String("to", string(status)))
	return updated, nil
}

// transition applies a CAS update from the observed status of o. Losing the
// race returns ErrAlreadyProcessed.
func (u *OrderUseCase) transition(
	ctx context.Context,
	o entities.Order,
	to entities.PaymentStatus,
	actor entities.Actor,
	reason string,
	now time.Time,
	fill func(*entities.StatusTransition),
) (entities.Order, error) {
	t := entities.StatusTransition{
		From: o.PaymentStatus,
		To:   to,
		Change: entities.StatusChange{
			From:      o.PaymentStatus,
			To:        to,
			ActorID:   actor.UserID,
			ActorRole: actor.Role,
			Reason:    reason,
			At:        now,
		},
		UpdatedAt: now,
	}
	if fill != nil {
		fill(&t)
	}

	updated, err := u.repo.TransitionStatus(ctx, o.ID, t)
	if err != nil {
		u.log.Error("[order][usecase] status transition failed", zap.String("order_id", o.ID), zap.Error(err))
		return entities.Order{}, err
	}
	if updated.ID == "" {
		u.log.Info("[order][usecase] transition lost race", zap.String("order_id", o.ID),
			zap.String("from", string(t.From)), zap.String("to", string(t.To)))
		return entities.Order{}, ErrAlreadyProcessed
	}

	eventType := entities.OrderEventStatusChanged
	if actor.Role == entities.RoleSystem {
		switch to {
		case entities.PaymentStatusPaid:
			eventType = entities.OrderEventPaid
		case entities.PaymentStatusFailed:
			eventType = entities.OrderEventFailed
		}
	}
	u.publish(ctx, eventType, updated)
	return updated, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, requiredField("id")
	}
	if u.repo == nil {
		return entities.Order{}, ErrRepositoryUnavailable
	}
	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" || (!o.OwnedBy(actor.UserID) && !actor.IsAdmin()) {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) ListMine(ctx context.Context, actor entities.Actor, status entities.PaymentStatus) ([]entities.Order, error) {
	userID := strings.TrimSpace(actor.UserID)
	if userID == "" {
		return nil, requiredField("user_id")
	}
	status = entities.PaymentStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if status != "" && !status.Valid() {
		return nil, pricing.NewValidationError("status", "is not a known payment status")
	}
	if u.repo == nil {
		return nil, ErrRepositoryUnavailable
	}
	orders, err := u.repo.ListByUserID(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(orders, func(a, b entities.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return orders, nil
}

func (u *OrderUseCase) AuditPricing(ctx context.Context, actor entities.Actor, id string) (PricingAudit, error) {
	if !actor.IsAdmin() {
		return PricingAudit{}, ErrForbidden
	}
	o, err := u.GetByID(ctx, actor, id)
	if err != nil {
		return PricingAudit{}, err
	}

	audit := PricingAudit{
		OrderID:     o.ID,
		Version:     o.PricingVersion,
		StoredMinor: o.AmountMinor,
		Stored:      o.Pricing,
	}
	res, err := u.engine.Reprice(o.PricingVersion, o.Specification, o.Pricing.Breakdown)
	if err != nil {
		audit.RecomputeError = err.Error()
		return audit, nil
	}
	audit.Recomputed = &res
	audit.Matches = res.Equal(o.Pricing) && res.TotalMinor == o.AmountMinor
	if !audit.Matches {
		u.log.Warn("[order][usecase] stored pricing drifted", zap.String("order_id", o.ID),
			zap.Int64("stored_minor", o.AmountMinor), zap.Int64("recomputed_minor", res.TotalMinor))
	}
	return audit, nil
}

// Stats summarizes all orders. Recent revenue covers orders created in the
// last periodDays days; zero selects DefaultStatsPeriodDays.
func (u *OrderUseCase) Stats(ctx context.Context, actor entities.Actor, periodDays int) (entities.OrderStats, error) {
	if !actor.IsAdmin() {
		return entities.OrderStats{}, ErrForbidden
	}
	if periodDays == 0 {
		periodDays = DefaultStatsPeriodDays
	}
	if periodDays < 0 || periodDays > MaxStatsPeriodDays {
		return entities.OrderStats{}, pricing.NewValidationError("period", fmt.Sprintf("must be between 1 and %d days", MaxStatsPeriodDays))
	}
	if u.repo == nil {
		return entities.OrderStats{}, ErrRepositoryUnavailable
	}

	since := u.now().AddDate(0, 0, -periodDays)
	stats, err := u.repo.Stats(ctx, since)
	if err != nil {
		u.log.Error("[order][usecase] stats failed", zap.Error(err))
		return entities.OrderStats{}, err
	}
	stats.Since = since
	stats.PeriodDays = periodDays
	stats.Currency = u.cfg.Currency
	return stats, nil
}

func (u *OrderUseCase) publish(ctx context.Context, t entities.OrderEventType, o entities.Order) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, entities.NewOrderEvent(t, o, u.now())); err != nil {
		u.log.Warn("[order][usecase] event publish failed", zap.String("type", string(t)),
			zap.String("order_id", o.ID), zap.Error(err))
	}
}

func normalizeCustomer(c entities.CustomerInfo) (entities.CustomerInfo, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		return c, requiredField("customerInfo.name")
	}
	if c.Email == "" {
		return c, requiredField("customerInfo.email")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return c, pricing.NewValidationError("customerInfo.email", "is not a valid email address")
	}
	return c, nil
}
