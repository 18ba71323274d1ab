package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestCrossTabTableV2_Cells(t *testing.T) {
	table := CrossTabTableV2()
	if len(table.Base) != 12 {
		t.Fatalf("expected 12 cells, got %d", len(table.Base))
	}
	for _, tat := range []TurnaroundTier{TurnaroundStandard, TurnaroundExpedited, TurnaroundRush} {
		for _, verbatim := range []bool{false, true} {
			two, fb2 := table.Lookup(CrossTabKey{verbatim, SpeakerTierTwo, tat})
			three, fb3 := table.Lookup(CrossTabKey{verbatim, SpeakerTierThree, tat})
			if fb2 || fb3 {
				t.Fatalf("known cell hit fallback: %s verbatim=%v", tat, verbatim)
			}
			if !three.GreaterThan(two) {
				t.Fatalf("3+ speakers must cost more than 2: %s verbatim=%v", tat, verbatim)
			}
		}
	}
	if _, fb := table.Lookup(CrossTabKey{true, SpeakerTierThree, "weekly"}); !fb {
		t.Fatalf("expected fallback for unknown turnaround")
	}
}

func TestTimestampTable_Modifier(t *testing.T) {
	table := defaultTimestampTable()
	cases := map[TimestampDensity]string{
		TimestampNone:           "0",
		TimestampPerSpeakerTurn: "0.30",
		TimestampEvery2Min:      "0.20",
		TimestampEvery30Sec:     "0.40",
		TimestampEvery10Sec:     "0.60",
	}
	for d, want := range cases {
		got, fb := table.Modifier(d)
		if fb {
			t.Fatalf("%s: unexpected fallback", d)
		}
		assertDecimal(t, string(d), got, want)
	}
	got, fb := table.Modifier("every-minute")
	if !fb {
		t.Fatalf("expected fallback")
	}
	assertDecimal(t, "fallback", got, "0.30")
}

func TestMinorUnits(t *testing.T) {
	if got, err := ToMinor(rate("54.905")); err != nil || got != 5491 {
		t.Fatalf("expected half-up rounding to 5491, got %d %v", got, err)
	}
	if got, err := ToMinor(rate("92233720368547758.07")); err != nil || got != math.MaxInt64 {
		t.Fatalf("expected the largest representable amount, got %d %v", got, err)
	}
	for _, amount := range []string{"92233720368547758.08", "-92233720368547758.09", "1e30"} {
		if _, err := ToMinor(rate(amount)); !errors.Is(err, ErrAmountOutOfRange) {
			t.Fatalf("%s: expected ErrAmountOutOfRange, got %v", amount, err)
		}
	}
	if got := FormatMinor(5490); got != "54.90" {
		t.Fatalf("expected 54.90, got %s", got)
	}
	if !FromMinor(200).Equal(rate("2")) {
		t.Fatalf("expected 2.00")
	}
}
