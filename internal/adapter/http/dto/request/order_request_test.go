package request

import (
	"errors"
	"testing"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
)

func TestPricingQuery_ToSpecification(t *testing.T) {
	q := PricingQuery{Duration: 60.5, Speakers: 3, TurnaroundTime: "1.5days", TimestampFrequency: "2min", IsVerbatim: true}
	spec := q.ToSpecification()
	want := pricing.Specification{
		DurationMinutes:  60.5,
		SpeakerCount:     3,
		Turnaround:       pricing.TurnaroundExpedited,
		TimestampDensity: pricing.TimestampEvery2Min,
		FullVerbatim:     true,
	}
	if spec != want {
		t.Fatalf("expected %+v, got %+v", want, spec)
	}
}

func TestCreateOrderRequest_ToInput(t *testing.T) {
	r := CreateOrderRequest{
		Duration:           10,
		Speakers:           2,
		TurnaroundTime:     "3days",
		TimestampFrequency: "none",
		CustomerInfo:       CustomerInfoRequest{Name: "Ada", Email: "ada@example.com", Phone: "+2348000000000"},
		SpecialRequests:    "names list attached",
	}
	in := r.ToInput()
	if in.Specification.SpeakerCount != 2 || in.Specification.Turnaround != pricing.TurnaroundStandard {
		t.Fatalf("unexpected specification %+v", in.Specification)
	}
	if in.Customer != (entities.CustomerInfo{Name: "Ada", Email: "ada@example.com", Phone: "+2348000000000"}) {
		t.Fatalf("unexpected customer %+v", in.Customer)
	}
	if in.SpecialRequests != "names list attached" {
		t.Fatalf("unexpected special requests %q", in.SpecialRequests)
	}
}

func TestUpdateStatusRequest_PaymentStatus(t *testing.T) {
	if got := (UpdateStatusRequest{Status: "refunded"}).PaymentStatus(); got != entities.PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %q", got)
	}
}

func TestValidate_MaxSpeakers(t *testing.T) {
	if err := (PricingQuery{Speakers: MaxSpeakers}).Validate(); err != nil {
		t.Fatalf("expected %d speakers to pass, got %v", MaxSpeakers, err)
	}
	err := (CreateOrderRequest{Speakers: MaxSpeakers + 1}).Validate()
	var ve *pricing.ValidationError
	if !errors.As(err, &ve) || ve.Field != "speakers" {
		t.Fatalf("expected speakers validation error, got %v", err)
	}
}
