package response

import (
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase"
)

type SpecificationResponse struct {
	Duration           float64 `json:"duration"`
	Speakers           int     `json:"speakers"`
	TurnaroundTime     string  `json:"turnaroundTime"`
	TimestampFrequency string  `json:"timestampFrequency"`
	IsVerbatim         bool    `json:"isVerbatim"`
}

type ComponentResponse struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Fallback bool   `json:"fallback,omitempty"`
}

type BreakdownResponse struct {
	Components          []ComponentResponse `json:"components"`
	FinalRate           string              `json:"finalRate"`
	EffectiveMinutes    string              `json:"effectiveMinutes"`
	DurationRule        string              `json:"durationRule"`
	TotalRule           string              `json:"totalRule"`
	SingleSpeakerPolicy string              `json:"singleSpeakerPolicy,omitempty"`
}

// PricingResponse renders money as decimal strings; totals always carry two places.
type PricingResponse struct {
	Version    string            `json:"version"`
	Rate       string            `json:"rate"`
	TotalPrice string            `json:"totalPrice"`
	TotalMinor int64             `json:"totalMinor"`
	Breakdown  BreakdownResponse `json:"breakdown"`
}

type QuoteResponse struct {
	Specifications SpecificationResponse `json:"specifications"`
	Pricing        PricingResponse       `json:"pricing"`
	Currency       string                `json:"currency"`
	MinimumCharge  string                `json:"minimumCharge"`
}

func FromSpecification(s pricing.Specification) SpecificationResponse {
	return SpecificationResponse{
		Duration:           s.DurationMinutes,
		Speakers:           s.SpeakerCount,
		TurnaroundTime:     string(s.Turnaround),
		TimestampFrequency: string(s.TimestampDensity),
		IsVerbatim:         s.FullVerbatim,
	}
}

func FromPricingResult(r pricing.Result) PricingResponse {
	components := make([]ComponentResponse, 0, len(r.Breakdown.Components))
	for _, c := range r.Breakdown.Components {
		components = append(components, ComponentResponse{Name: c.Name, Amount: c.Amount.String(), Fallback: c.Fallback})
	}
	return PricingResponse{
		Version:    string(r.Version),
		Rate:       r.UnitRate.String(),
		TotalPrice: r.TotalAmount.StringFixed(2),
		TotalMinor: r.TotalMinor,
		Breakdown: BreakdownResponse{
			Components:          components,
			FinalRate:           r.Breakdown.FinalRate.String(),
			EffectiveMinutes:    r.Breakdown.EffectiveMinutes.String(),
			DurationRule:        r.Breakdown.DurationRule,
			TotalRule:           r.Breakdown.TotalRule,
			SingleSpeakerPolicy: string(r.Breakdown.SingleSpeakerPolicy),
		},
	}
}

func FromQuote(spec pricing.Specification, q usecase.PriceQuote) QuoteResponse {
	return QuoteResponse{
		Specifications: FromSpecification(spec),
		Pricing:        FromPricingResult(q.Result),
		Currency:       q.Currency,
		MinimumCharge:  pricing.FormatMinor(q.MinimumChargeMinor),
	}
}
