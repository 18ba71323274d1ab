package pricing

import "github.com/shopspring/decimal"

// Version tags the rate table an order was priced with. It is persisted on the
// order so a stored breakdown can be explained after the active table changes.
type Version string

const (
	// VersionAdditive is the launch table: one base rate per turnaround plus flat add-ons.
	VersionAdditive Version = "v1-additive"
	// VersionCrossTab bakes speakers and verbatim style into the base rate.
	VersionCrossTab Version = "v2-crosstab"
)

func (v Version) Known() bool {
	return v == VersionAdditive || v == VersionCrossTab
}

// TimestampTable maps a timestamp density to a per-minute modifier.
type TimestampTable struct {
	Modifiers map[TimestampDensity]decimal.Decimal
	Default   decimal.Decimal
}

func (t TimestampTable) Modifier(d TimestampDensity) (decimal.Decimal, bool) {
	if m, ok := t.Modifiers[d]; ok {
		return m, false
	}
	return t.Default, true
}

// AdditiveTable is the Version A table.
type AdditiveTable struct {
	BaseByTurnaround map[TurnaroundTier]decimal.Decimal
	DefaultBase      decimal.Decimal
	// SpeakerAddOn applies once SpeakerCount reaches SpeakerThreshold.
	SpeakerAddOn     decimal.Decimal
	SpeakerThreshold int
	VerbatimAddOn    decimal.Decimal
	Timestamps       TimestampTable
}

func (t AdditiveTable) Base(tier TurnaroundTier) (decimal.Decimal, bool) {
	if b, ok := t.BaseByTurnaround[tier]; ok {
		return b, false
	}
	return t.DefaultBase, true
}

// SpeakerTier is the speaker dimension of the cross-tabulated table.
type SpeakerTier string

const (
	SpeakerTierTwo   SpeakerTier = "2"
	SpeakerTierThree SpeakerTier = "3+"
)

// CrossTabKey addresses one cell of the Version B table.
type CrossTabKey struct {
	FullVerbatim bool
	Speakers     SpeakerTier
	Turnaround   TurnaroundTier
}

// CrossTabTable is the Version B table. Default is the clean/2-speaker/standard cell.
type CrossTabTable struct {
	Base       map[CrossTabKey]decimal.Decimal
	Default    decimal.Decimal
	Timestamps TimestampTable
}

func (t CrossTabTable) Lookup(key CrossTabKey) (decimal.Decimal, bool) {
	if b, ok := t.Base[key]; ok {
		return b, false
	}
	return t.Default, true
}

func defaultTimestampTable() TimestampTable {
	return TimestampTable{
		Modifiers: map[TimestampDensity]decimal.Decimal{
			TimestampNone:           decimal.Zero,
			TimestampPerSpeakerTurn: rate("0.30"),
			TimestampEvery2Min:      rate("0.20"),
			TimestampEvery30Sec:     rate("0.40"),
			TimestampEvery10Sec:     rate("0.60"),
		},
		Default: rate("0.30"),
	}
}

// AdditiveTableV1 returns the Version A rates.
func AdditiveTableV1() AdditiveTable {
	return AdditiveTable{
		BaseByTurnaround: map[TurnaroundTier]decimal.Decimal{
			TurnaroundStandard:  rate("0.90"),
			TurnaroundExpedited: rate("1.20"),
			TurnaroundRush:      rate("1.50"),
		},
		DefaultBase:      rate("0.90"),
		SpeakerAddOn:     rate("0.35"),
		SpeakerThreshold: 3,
		VerbatimAddOn:    rate("0.20"),
		Timestamps:       defaultTimestampTable(),
	}
}

// CrossTabTableV2 returns the Version B rates.
func CrossTabTableV2() CrossTabTable {
	cells := map[CrossTabKey]decimal.Decimal{
		{false, SpeakerTierTwo, TurnaroundStandard}:    rate("0.90"),
		{false, SpeakerTierTwo, TurnaroundExpedited}:   rate("1.20"),
		{false, SpeakerTierTwo, TurnaroundRush}:        rate("1.50"),
		{false, SpeakerTierThree, TurnaroundStandard}:  rate("1.25"),
		{false, SpeakerTierThree, TurnaroundExpedited}: rate("1.60"),
		{false, SpeakerTierThree, TurnaroundRush}:      rate("1.95"),
		{true, SpeakerTierTwo, TurnaroundStandard}:     rate("1.20"),
		{true, SpeakerTierTwo, TurnaroundExpedited}:    rate("1.50"),
		{true, SpeakerTierTwo, TurnaroundRush}:         rate("1.80"),
		{true, SpeakerTierThree, TurnaroundStandard}:   rate("1.60"),
		{true, SpeakerTierThree, TurnaroundExpedited}:  rate("1.95"),
		{true, SpeakerTierThree, TurnaroundRush}:       rate("2.30"),
	}
	return CrossTabTable{
		Base:       cells,
		Default:    cells[CrossTabKey{false, SpeakerTierTwo, TurnaroundStandard}],
		Timestamps: defaultTimestampTable(),
	}
}
