package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// SingleSpeakerPolicy decides how the cross-tabulated table prices a one-speaker file.
// The table only has 2 and 3+ speaker rows, so this is a product decision, not a lookup.
type SingleSpeakerPolicy string

const (
	SingleSpeakerReject         SingleSpeakerPolicy = "reject"
	SingleSpeakerTwoSpeakerTier SingleSpeakerPolicy = "two_speaker_tier"
)

// DefaultMinimumChargeMinor is the payment provider floor (2.00) in minor units.
const DefaultMinimumChargeMinor int64 = 200

// Config is everything the engine prices with. It is injected, never read from globals.
type Config struct {
	ActiveVersion       Version
	MinimumChargeMinor  int64
	SingleSpeakerPolicy SingleSpeakerPolicy
	Additive            AdditiveTable
	CrossTab            CrossTabTable
}

// DefaultConfig prices with the cross-tabulated table and rejects one-speaker files.
func DefaultConfig() Config {
	return Config{
		ActiveVersion:       VersionCrossTab,
		MinimumChargeMinor:  DefaultMinimumChargeMinor,
		SingleSpeakerPolicy: SingleSpeakerReject,
		Additive:            AdditiveTableV1(),
		CrossTab:            CrossTabTableV2(),
	}
}

// Engine computes prices. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	if !cfg.ActiveVersion.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, cfg.ActiveVersion)
	}
	if cfg.MinimumChargeMinor < 0 {
		return nil, fmt.Errorf("%w: negative minimum charge", ErrInvalidEngineConfig)
	}
	switch cfg.SingleSpeakerPolicy {
	case SingleSpeakerReject, SingleSpeakerTwoSpeakerTier:
	default:
		return nil, fmt.Errorf("%w: single speaker policy %q", ErrInvalidEngineConfig, cfg.SingleSpeakerPolicy)
	}
	return &Engine{cfg: cfg}, nil
}

func (e *Engine) ActiveVersion() Version {
	return e.cfg.ActiveVersion
}

func (e *Engine) MinimumChargeMinor() int64 {
	return e.cfg.MinimumChargeMinor
}

// Compute prices spec with the active rate table.
func (e *Engine) Compute(spec Specification) (Result, error) {
	return e.ComputeVersion(e.cfg.ActiveVersion, spec)
}

// ComputeVersion prices spec with an explicit table version. Used to re-explain
// orders priced before the active version changed.
func (e *Engine) ComputeVersion(v Version, spec Specification) (Result, error) {
	spec = spec.Normalized()
	if err := validate(spec); err != nil {
		return Result{}, err
	}
	switch v {
	case VersionAdditive:
		return e.computeAdditive(spec)
	case VersionCrossTab:
		return e.computeCrossTab(spec)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownVersion, v)
	}
}

// Reprice recomputes an order under the version and the engine settings
// recorded in its breakdown, so later changes to the minimum charge or the
// single-speaker policy do not alter how a historical price is explained.
func (e *Engine) Reprice(v Version, spec Specification, recorded Breakdown) (Result, error) {
	cfg := e.cfg
	if v == VersionCrossTab {
		cfg.MinimumChargeMinor = recorded.MinimumChargeMinor
	}
	if recorded.SingleSpeakerPolicy != "" {
		cfg.SingleSpeakerPolicy = recorded.SingleSpeakerPolicy
	}
	return (&Engine{cfg: cfg}).ComputeVersion(v, spec)
}

func validate(spec Specification) error {
	d := spec.DurationMinutes
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return NewValidationError("duration", "must be a positive number of minutes")
	}
	if spec.SpeakerCount < 1 {
		return NewValidationError("speakers", "must be at least 1")
	}
	return nil
}

// computeAdditive reproduces the launch pricing bit for bit: the total is
// ceil(duration/60 * rate * 60) in whole currency units, evaluated in float64
// on the 2dp rate. Changing this changes historical totals.
func (e *Engine) computeAdditive(spec Specification) (Result, error) {
	t := e.cfg.Additive

	base, baseFallback := t.Base(spec.Turnaround)
	speaker := decimal.Zero
	if spec.SpeakerCount >= t.SpeakerThreshold {
		speaker = t.SpeakerAddOn
	}
	ts, tsFallback := t.Timestamps.Modifier(spec.TimestampDensity)
	verbatim := decimal.Zero
	if spec.FullVerbatim {
		verbatim = t.VerbatimAddOn
	}

	unit := round2(base.Add(speaker).Add(ts).Add(verbatim))
	r, _ := unit.Float64()
	major := math.Ceil(spec.DurationMinutes / 60 * r * 60)
	if math.IsInf(major, 0) {
		return Result{}, durationTooLong()
	}
	total := round2(decimal.NewFromFloat(major))
	totalMinor, err := ToMinor(total)
	if err != nil {
		return Result{}, durationTooLong()
	}

	return Result{
		Version:     VersionAdditive,
		UnitRate:    unit,
		TotalAmount: total,
		TotalMinor:  totalMinor,
		Breakdown: Breakdown{
			Version: VersionAdditive,
			Components: []Component{
				{Name: ComponentBaseRate, Amount: base, Fallback: baseFallback},
				{Name: ComponentSpeakerAddOn, Amount: speaker},
				{Name: ComponentTimestampModifier, Amount: ts, Fallback: tsFallback},
				{Name: ComponentVerbatimAddOn, Amount: verbatim},
			},
			FinalRate:        unit,
			EffectiveMinutes: decimal.NewFromFloat(spec.DurationMinutes),
			DurationRule:     DurationRuleRaw,
			TotalRule:        TotalRuleLegacyCeil,
		},
	}, nil
}

func durationTooLong() *ValidationError {
	return NewValidationError("duration", "is too long to bill")
}

// computeCrossTab bills whole minutes (rounded up) at the unrounded rate and
// rounds the total to cents. Totals under the provider floor are rejected.
func (e *Engine) computeCrossTab(spec Specification) (Result, error) {
	t := e.cfg.CrossTab

	var tier SpeakerTier
	switch {
	case spec.SpeakerCount >= 3:
		tier = SpeakerTierThree
	case spec.SpeakerCount == 2:
		tier = SpeakerTierTwo
	case e.cfg.SingleSpeakerPolicy == SingleSpeakerTwoSpeakerTier:
		tier = SpeakerTierTwo
	default:
		return Result{}, NewValidationError("speakers", "single-speaker files are not priced by "+string(VersionCrossTab))
	}

	base, baseFallback := t.Lookup(CrossTabKey{
		FullVerbatim: spec.FullVerbatim,
		Speakers:     tier,
		Turnaround:   spec.Turnaround,
	})
	ts, tsFallback := t.Timestamps.Modifier(spec.TimestampDensity)

	unit := base.Add(ts)
	minutes := decimal.NewFromFloat(spec.DurationMinutes).Ceil()
	total := round2(minutes.Mul(unit))
	totalMinor, err := ToMinor(total)
	if err != nil {
		return Result{}, durationTooLong()
	}

	if totalMinor < e.cfg.MinimumChargeMinor {
		return Result{}, &BelowMinimumChargeError{
			MinimumMinor:  e.cfg.MinimumChargeMinor,
			ComputedMinor: totalMinor,
		}
	}

	display := round2(unit)
	bd := Breakdown{
		Version: VersionCrossTab,
		Components: []Component{
			{Name: ComponentBaseRate, Amount: base, Fallback: baseFallback},
			{Name: ComponentTimestampModifier, Amount: ts, Fallback: tsFallback},
		},
		FinalRate:          display,
		EffectiveMinutes:   minutes,
		DurationRule:       DurationRuleCeilMinute,
		TotalRule:          TotalRuleRoundCents,
		MinimumChargeMinor: e.cfg.MinimumChargeMinor,
	}
	if spec.SpeakerCount == 1 {
		bd.SingleSpeakerPolicy = e.cfg.SingleSpeakerPolicy
	}

	return Result{
		Version:     VersionCrossTab,
		UnitRate:    display,
		TotalAmount: total,
		TotalMinor:  totalMinor,
		Breakdown:   bd,
	}, nil
}
