package response

import (
	"testing"

	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase"
)

func TestFromQuote(t *testing.T) {
	spec := pricing.Specification{DurationMinutes: 1, SpeakerCount: 2, Turnaround: pricing.TurnaroundRush, TimestampDensity: pricing.TimestampEvery10Sec, FullVerbatim: true}
	q := usecase.PriceQuote{Result: computed(t, spec), Currency: "NGN", MinimumChargeMinor: 200}

	got := FromQuote(spec, q)
	if got.Currency != "NGN" || got.MinimumCharge != "2.00" {
		t.Fatalf("unexpected quote %+v", got)
	}
	if got.Specifications.TurnaroundTime != "6-12hrs" || !got.Specifications.IsVerbatim {
		t.Fatalf("unexpected specifications %+v", got.Specifications)
	}
	if got.Pricing.TotalMinor != q.TotalMinor {
		t.Fatalf("expected %d, got %d", q.TotalMinor, got.Pricing.TotalMinor)
	}
}
