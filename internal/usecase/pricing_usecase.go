package usecase

import (
	"context"
	"strings"

	"transcribe_billing/internal/domain/pricing"

	"go.uber.org/zap"
)

// PriceQuote is a computed price in the service currency.
type PriceQuote struct {
	pricing.Result
	Currency           string
	MinimumChargeMinor int64
}

// IPricingUseCase quotes a price without creating an order.

type IPricingUseCase interface {
	Quote(ctx context.Context, spec pricing.Specification) (PriceQuote, error)
}

type PricingUseCase struct {
	engine   *pricing.Engine
	currency string
	log      *zap.Logger
}

var _ IPricingUseCase = (*PricingUseCase)(nil)

func NewPricingUseCase(engine *pricing.Engine, currency string, log *zap.Logger) *PricingUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &PricingUseCase{engine: engine, currency: currency, log: log.Named("pricing.usecase")}
}

func (u *PricingUseCase) Quote(_ context.Context, spec pricing.Specification) (PriceQuote, error) {
	if err := requireSpecificationFields(spec); err != nil {
		return PriceQuote{}, err
	}
	res, err := u.engine.Compute(spec)
	if err != nil {
		u.log.Debug("[pricing][usecase] quote rejected", zap.Error(err))
		return PriceQuote{}, err
	}
	return PriceQuote{Result: res, Currency: u.currency, MinimumChargeMinor: u.engine.MinimumChargeMinor()}, nil
}

// requireSpecificationFields checks presence only. Value rules live in the engine.
func requireSpecificationFields(spec pricing.Specification) error {
	if spec.DurationMinutes == 0 {
		return requiredField("duration")
	}
	if spec.SpeakerCount == 0 {
		return requiredField("speakers")
	}
	if strings.TrimSpace(string(spec.Turnaround)) == "" {
		return requiredField("turnaroundTime")
	}
	if strings.TrimSpace(string(spec.TimestampDensity)) == "" {
		return requiredField("timestampFrequency")
	}
	return nil
}
