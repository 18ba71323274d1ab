package payments

import (
	"context"
	"errors"
	"testing"

	"transcribe_billing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/payment"
)

type fakePayments struct {
	resp   *payment.Response
	err    error
	gotID  int
	called bool
}

func (f *fakePayments) Get(_ context.Context, id int) (*payment.Response, error) {
	f.called = true
	f.gotID = id
	return f.resp, f.err
}

func TestMercadoPagoVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		status      string
		wantSuccess bool
		wantPending bool
	}{
		{"approved", "approved", true, false},
		{"in process", "in_process", false, true},
		{"pending", "pending", false, true},
		{"rejected", "rejected", false, false},
		{"cancelled", "cancelled", false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakePayments{resp: &payment.Response{
				ID:                123456,
				Status:            tc.status,
				TransactionAmount: 54.9,
				CurrencyID:        "ngn",
				PaymentMethodID:   "visa",
				ExternalReference: "TT-1767225600123-0A1B2C3D",
			}}
			v := newVerifierWithClient(fake, "NGN", nil)

			got, err := v.Verify(ctx, " 123456 ")
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if fake.gotID != 123456 {
				t.Fatalf("expected id 123456, got %d", fake.gotID)
			}
			if got.Success != tc.wantSuccess || got.Pending != tc.wantPending {
				t.Fatalf("unexpected outcome %+v", got)
			}
			if got.PaidAmountMinor != 5490 || got.Currency != "NGN" || got.Channel != "visa" || got.ExternalReference != "TT-1767225600123-0A1B2C3D" {
				t.Fatalf("unexpected mapping %+v", got)
			}
		})
	}
}

func TestMercadoPagoVerifier_InvalidReference(t *testing.T) {
	fake := &fakePayments{}
	v := newVerifierWithClient(fake, "NGN", nil)

	for _, ref := range []string{"", "abc", "-5", "0"} {
		_, err := v.Verify(context.Background(), ref)
		if !errors.Is(err, interfaces.ErrInvalidExternalReference) {
			t.Fatalf("%q: expected ErrInvalidExternalReference, got %v", ref, err)
		}
	}
	if fake.called {
		t.Fatalf("provider must not be called for malformed references")
	}
}

func TestMercadoPagoVerifier_ProviderError(t *testing.T) {
	v := newVerifierWithClient(&fakePayments{err: errors.New("timeout")}, "NGN", nil)
	if _, err := v.Verify(context.Background(), "42"); err == nil || errors.Is(err, interfaces.ErrInvalidExternalReference) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestMercadoPagoVerifier_MockMode(t *testing.T) {
	v, err := NewMercadoPagoVerifier("", "NGN", true, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	got, err := v.Verify(ctx, "MOCK-5490")
	if err != nil || !got.Success || got.PaidAmountMinor != 5490 || got.Currency != "NGN" {
		t.Fatalf("unexpected approved mock %+v %v", got, err)
	}
	got, err = v.Verify(ctx, "MOCK-5490-declined")
	if err != nil || !got.Declined() {
		t.Fatalf("expected declined, got %+v %v", got, err)
	}
	got, err = v.Verify(ctx, "MOCK-5490-pending")
	if err != nil || !got.Pending {
		t.Fatalf("expected pending, got %+v %v", got, err)
	}
	for _, ref := range []string{"5490", "MOCK-abc"} {
		if _, err := v.Verify(ctx, ref); !errors.Is(err, interfaces.ErrInvalidExternalReference) {
			t.Fatalf("%q: expected invalid reference, got %v", ref, err)
		}
	}
}

func TestNewMercadoPagoVerifier_MissingToken(t *testing.T) {
	if _, err := NewMercadoPagoVerifier("", "NGN", false, nil); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}
