package billing

import (
	"strings"
	"testing"
	"time"
)

func TestPrefixSequenceNext(t *testing.T) {
	seq := NewPrefixSequence()

	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty collection seeds", nil, "INV-001"},
		{"single", []string{"INV-001"}, "INV-002"},
		{
			"monotonic over a shared width",
			[]string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005", "INV-006", "INV-007", "INV-008", "INV-009"},
			"INV-010",
		},
		{"crosses into four digits", []string{"INV-998", "INV-999"}, "INV-1000"},
		{"unordered input", []string{"INV-007", "INV-003", "INV-005"}, "INV-008"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seq.Next(tt.existing); got != tt.want {
				t.Errorf("Next(%v) = %s, want %s", tt.existing, got, tt.want)
			}
		})
	}
}

func TestPrefixSequenceFallback(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	seq := &PrefixSequence{Prefix: "INV", Pad: 3, Now: func() time.Time { return fixed }}

	got := seq.Next([]string{"SPECIAL"})
	if !strings.HasPrefix(got, "INV-") {
		t.Fatalf("fallback %q does not carry the prefix", got)
	}
	if got == "INV-001" {
		t.Fatalf("unparsable input must not restart the sequence")
	}

	// Numbering must never block creation, whatever the history looks like.
	if got := seq.Next([]string{"INV-abc"}); !strings.HasPrefix(got, "INV-") {
		t.Errorf("fallback %q does not carry the prefix", got)
	}
}

// numericSequence exercises the strategy seam: a comparator that orders by
// value instead of text.
type numericSequence struct{}

func (numericSequence) Next(existing []string) string { return "N-1" }

func TestSequenceStrategyIsPluggable(t *testing.T) {
	var s SequenceStrategy = numericSequence{}
	if got := s.Next(nil); got != "N-1" {
		t.Errorf("Next() = %s, want N-1", got)
	}
}
