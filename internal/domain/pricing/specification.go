package pricing

import "strings"

// TurnaroundTier is the delivery speed bought by the customer.
//
// Values keep the wire encoding used by the storefront since launch.
type TurnaroundTier string

const (
	TurnaroundStandard  TurnaroundTier = "3days"
	TurnaroundExpedited TurnaroundTier = "1.5days"
	TurnaroundRush      TurnaroundTier = "6-12hrs"
)

// TimestampDensity is how often timestamps are inserted into the transcript.
type TimestampDensity string

const (
	TimestampNone           TimestampDensity = "none"
	TimestampPerSpeakerTurn TimestampDensity = "speaker"
	TimestampEvery2Min      TimestampDensity = "2min"
	TimestampEvery30Sec     TimestampDensity = "30sec"
	TimestampEvery10Sec     TimestampDensity = "10sec"
)

// Specification is the pricing input for one audio file.
type Specification struct {
	DurationMinutes  float64          `json:"duration"`
	SpeakerCount     int              `json:"speakers"`
	Turnaround       TurnaroundTier   `json:"turnaroundTime"`
	TimestampDensity TimestampDensity `json:"timestampFrequency"`
	FullVerbatim     bool             `json:"isVerbatim"`
}

// Normalized trims enum values and lowercases them so "3Days " and "3days" price the same.
// Unknown values are kept as-is and later hit the table defaults.
func (s Specification) Normalized() Specification {
	s.Turnaround = TurnaroundTier(strings.ToLower(strings.TrimSpace(string(s.Turnaround))))
	s.TimestampDensity = TimestampDensity(strings.ToLower(strings.TrimSpace(string(s.TimestampDensity))))
	return s
}

func (t TurnaroundTier) Known() bool {
	switch t {
	case TurnaroundStandard, TurnaroundExpedited, TurnaroundRush:
		return true
	}
	return false
}

func (d TimestampDensity) Known() bool {
	switch d {
	case TimestampNone, TimestampPerSpeakerTurn, TimestampEvery2Min, TimestampEvery30Sec, TimestampEvery10Sec:
		return true
	}
	return false
}
