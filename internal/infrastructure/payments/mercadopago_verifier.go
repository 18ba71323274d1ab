package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoVerifierNotConfigured = errors.New("mercado pago verifier not configured")

// MockReferencePrefix marks references accepted in mock mode: MOCK-<minor>[-suffix].
// A suffix of "declined" or "pending" selects that outcome. Mock payments carry
// no merchant reference, so they are not tied to a particular order.
const MockReferencePrefix = "MOCK-"

// paymentGetter is the slice of payment.Client the verifier uses.
type paymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type MercadoPagoVerifier struct {
	client   paymentGetter
	currency string
	mockMode bool
	log      *zap.Logger
}

var _ interfaces.IPaymentVerifier = (*MercadoPagoVerifier)(nil)

// NewMercadoPagoVerifier builds a verifier backed by the Mercado Pago API, or a
// mock when mockMode is set. currency is reported for mock payments.
func NewMercadoPagoVerifier(accessToken, currency string, mockMode bool, log *zap.Logger) (*MercadoPagoVerifier, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if mockMode {
		log.Info("[payment][verifier] mock mode enabled")
		return &MercadoPagoVerifier{currency: currency, mockMode: true, log: log}, nil
	}

	if accessToken == "" {
		log.Error("[payment][verifier] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Error("[payment][verifier] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	log.Info("[payment][verifier] Mercado Pago client initialized")

	return newVerifierWithClient(payment.NewClient(cfg), currency, log), nil
}

func newVerifierWithClient(client paymentGetter, currency string, log *zap.Logger) *MercadoPagoVerifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &MercadoPagoVerifier{client: client, currency: currency, log: log}
}

func (v *MercadoPagoVerifier) Verify(ctx context.Context, externalReference string) (entities.PaymentVerification, error) {
	ref := strings.TrimSpace(externalReference)
	if v != nil && v.mockMode {
		return v.verifyMock(ref)
	}
	if v == nil || v.client == nil {
		return entities.PaymentVerification{}, ErrMercadoPagoVerifierNotConfigured
	}

	id, err := strconv.Atoi(ref)
	if err != nil || id <= 0 {
		return entities.PaymentVerification{}, fmt.Errorf("%w: %q", interfaces.ErrInvalidExternalReference, externalReference)
	}

	v.log.Debug("[payment][verifier] get start", zap.Int("provider_payment_id", id))
	resp, err := v.client.Get(ctx, id)
	if err != nil {
		v.log.Warn("[payment][verifier] sdk get failed", zap.Int("provider_payment_id", id), zap.Error(err))
		return entities.PaymentVerification{}, err
	}
	if resp == nil {
		return entities.PaymentVerification{}, fmt.Errorf("empty response for payment %d", id)
	}

	paidMinor, err := pricing.ToMinor(decimal.NewFromFloat(resp.TransactionAmount))
	if err != nil {
		v.log.Warn("[payment][verifier] unusable transaction amount", zap.Int("provider_payment_id", id), zap.Error(err))
		return entities.PaymentVerification{}, err
	}

	out := entities.PaymentVerification{
		PaidAmountMinor:   paidMinor,
		Currency:          strings.ToUpper(resp.CurrencyID),
		Channel:           resp.PaymentMethodID,
		ExternalReference: resp.ExternalReference,
		ProviderStatus:    resp.Status,
	}
	switch resp.Status {
	case "approved":
		out.Success = true
	case "pending", "in_process", "authorized":
		out.Pending = true
	}
	v.log.Info("[payment][verifier] get success",
		zap.Int("provider_payment_id", id),
		zap.String("provider_status", resp.Status),
		zap.Int64("paid_amount_minor", out.PaidAmountMinor),
	)
	return out, nil
}

func (v *MercadoPagoVerifier) verifyMock(ref string) (entities.PaymentVerification, error) {
	if !strings.HasPrefix(ref, MockReferencePrefix) {
		return entities.PaymentVerification{}, fmt.Errorf("%w: %q", interfaces.ErrInvalidExternalReference, ref)
	}
	parts := strings.SplitN(strings.TrimPrefix(ref, MockReferencePrefix), "-", 2)
	minor, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || minor < 0 {
		return entities.PaymentVerification{}, fmt.Errorf("%w: %q", interfaces.ErrInvalidExternalReference, ref)
	}

	out := entities.PaymentVerification{
		PaidAmountMinor: minor,
		Currency:        v.currency,
		Channel:         "mock",
	}
	suffix := ""
	if len(parts) == 2 {
		suffix = strings.ToLower(parts[1])
	}
	switch suffix {
	case "declined":
		out.ProviderStatus = "rejected"
	case "pending":
		out.Pending = true
		out.ProviderStatus = "pending"
	default:
		out.Success = true
		out.ProviderStatus = "approved"
	}
	v.log.Info("[payment][verifier] mock verify", zap.String("reference", ref), zap.String("provider_status", out.ProviderStatus))
	return out, nil
}
