package pricing

import "github.com/shopspring/decimal"

const (
	ComponentBaseRate          = "base_rate"
	ComponentSpeakerAddOn      = "speaker_add_on"
	ComponentTimestampModifier = "timestamp_modifier"
	ComponentVerbatimAddOn     = "verbatim_add_on"
)

const (
	DurationRuleRaw        = "raw_minutes"
	DurationRuleCeilMinute = "ceil_minute"

	TotalRuleLegacyCeil = "legacy_ceil_major_unit"
	TotalRuleRoundCents = "round_half_up_cents"
)

// Component is one named contribution to the unit rate.
type Component struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Fallback bool            `json:"fallback,omitempty"`
}

// Breakdown is the auditable derivation of a unit rate and total.
// Components always sum to FinalRate.
type Breakdown struct {
	Version             Version             `json:"version"`
	Components          []Component         `json:"components"`
	FinalRate           decimal.Decimal     `json:"final_rate"`
	EffectiveMinutes    decimal.Decimal     `json:"effective_minutes"`
	DurationRule        string              `json:"duration_rule"`
	TotalRule           string              `json:"total_rule"`
	SingleSpeakerPolicy SingleSpeakerPolicy `json:"single_speaker_policy,omitempty"`
	MinimumChargeMinor  int64               `json:"minimum_charge_minor,omitempty"`
}

func (b Breakdown) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range b.Components {
		sum = sum.Add(c.Amount)
	}
	return sum
}

func (b Breakdown) Component(name string) (Component, bool) {
	for _, c := range b.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// Result is the output of one price computation.
type Result struct {
	Version     Version         `json:"version"`
	UnitRate    decimal.Decimal `json:"rate"`
	TotalAmount decimal.Decimal `json:"totalPrice"`
	TotalMinor  int64           `json:"totalMinor"`
	Breakdown   Breakdown       `json:"breakdown"`
}

// Equal compares two results by value; decimals are compared numerically.
func (r Result) Equal(o Result) bool {
	if r.Version != o.Version || r.TotalMinor != o.TotalMinor ||
		!r.UnitRate.Equal(o.UnitRate) || !r.TotalAmount.Equal(o.TotalAmount) {
		return false
	}
	a, b := r.Breakdown, o.Breakdown
	if a.Version != b.Version || !a.FinalRate.Equal(b.FinalRate) || !a.EffectiveMinutes.Equal(b.EffectiveMinutes) ||
		a.DurationRule != b.DurationRule || a.TotalRule != b.TotalRule ||
		a.SingleSpeakerPolicy != b.SingleSpeakerPolicy || a.MinimumChargeMinor != b.MinimumChargeMinor ||
		len(a.Components) != len(b.Components) {
		return false
	}
	for i := range a.Components {
		ca, cb := a.Components[i], b.Components[i]
		if ca.Name != cb.Name || ca.Fallback != cb.Fallback || !ca.Amount.Equal(cb.Amount) {
			return false
		}
	}
	return true
}
