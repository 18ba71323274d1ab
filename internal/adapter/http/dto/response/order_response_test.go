package response

import (
	"testing"
	"time"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase"
)

func computed(t *testing.T, spec pricing.Specification) pricing.Result {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.DefaultConfig())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	res, err := engine.Compute(spec)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return res
}

func TestFromPricingResult(t *testing.T) {
	spec := pricing.Specification{DurationMinutes: 60.5, SpeakerCount: 2, Turnaround: pricing.TurnaroundStandard, TimestampDensity: pricing.TimestampNone}
	res := FromPricingResult(computed(t, spec))

	if res.Version != "v2-crosstab" || res.TotalPrice != "54.90" || res.TotalMinor != 5490 {
		t.Fatalf("unexpected pricing %+v", res)
	}
	if res.Rate != "0.9" || res.Breakdown.EffectiveMinutes != "61" {
		t.Fatalf("unexpected rate fields %+v", res)
	}
	if len(res.Breakdown.Components) == 0 || res.Breakdown.Components[0].Name != pricing.ComponentBaseRate {
		t.Fatalf("unexpected components %+v", res.Breakdown.Components)
	}
}

func TestFromOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	spec := pricing.Specification{DurationMinutes: 10, SpeakerCount: 3, Turnaround: pricing.TurnaroundExpedited, TimestampDensity: pricing.TimestampEvery2Min}
	res := computed(t, spec)
	o := entities.Order{
		ID:               "order-1",
		OrderNumber:      "TT-123456789",
		UserID:           "user-1",
		Specification:    spec,
		Customer:         entities.CustomerInfo{Name: "Ada", Email: "ada@example.com"},
		Pricing:          res,
		PricingVersion:   res.Version,
		AmountMinor:      res.TotalMinor,
		Currency:         "NGN",
		PaymentStatus:    entities.PaymentStatusPaid,
		PaymentReference: "TT-1767225600123-0A1B2C3D",
		PaymentMethod:    "visa",
		PaidAt:           &now,
		History: []entities.StatusChange{
			{To: entities.PaymentStatusPending, ActorID: "user-1", ActorRole: entities.RoleUser, At: now},
			{From: entities.PaymentStatusPending, To: entities.PaymentStatusPaid, ActorID: "system", ActorRole: entities.RoleSystem, At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	got := FromOrder(o)
	if got.ID != "order-1" || got.PaymentStatus != "paid" || got.Currency != "NGN" || got.PaymentMethod != "visa" {
		t.Fatalf("unexpected order fields %+v", got)
	}
	if got.TotalAmount != pricing.FormatMinor(res.TotalMinor) || got.Pricing.TotalMinor != res.TotalMinor {
		t.Fatalf("unexpected totals %+v", got)
	}
	if got.Specifications.TurnaroundTime != "1.5days" || got.Specifications.TimestampFrequency != "2min" {
		t.Fatalf("unexpected specifications %+v", got.Specifications)
	}
	if len(got.StatusHistory) != 2 || got.StatusHistory[1].From != "pending" || got.StatusHistory[1].ActorRole != "system" {
		t.Fatalf("unexpected history %+v", got.StatusHistory)
	}

	created := FromCreatedOrder(o)
	if created.PaymentReference != o.PaymentReference || created.Message == "" {
		t.Fatalf("unexpected create response %+v", created)
	}

	list := FromOrders([]entities.Order{o, o})
	if list.Total != 2 || len(list.Orders) != 2 {
		t.Fatalf("unexpected list %+v", list)
	}
	if empty := FromOrders(nil); empty.Orders == nil || empty.Total != 0 {
		t.Fatalf("empty list must render as []")
	}
}

func TestFromPricingAudit(t *testing.T) {
	res := computed(t, pricing.Specification{DurationMinutes: 4, SpeakerCount: 3, Turnaround: pricing.TurnaroundStandard, TimestampDensity: pricing.TimestampNone})

	got := FromPricingAudit(usecase.PricingAudit{OrderID: "order-1", Version: res.Version, StoredMinor: res.TotalMinor, Stored: res, Recomputed: &res, Matches: true})
	if !got.Matches || got.Recomputed == nil || got.StoredTotal != "5.00" {
		t.Fatalf("unexpected audit %+v", got)
	}

	failed := FromPricingAudit(usecase.PricingAudit{OrderID: "order-1", Version: "v9", RecomputeError: "unknown rate table version"})
	if failed.Recomputed != nil || failed.Matches || failed.RecomputeError == "" {
		t.Fatalf("unexpected failed audit %+v", failed)
	}
}
