package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SequenceStrategy decides the next invoice number given every number issued
// so far. Uniqueness is enforced by the storage layer, not here.
type SequenceStrategy interface {
	Next(existing []string) string
}

// PrefixSequence increments the numeric suffix of the lexicographically
// greatest existing number. That comparison is only stable while all numbers
// share the prefix and digit width; swap in another SequenceStrategy for a
// numerically-correct ordering.
type PrefixSequence struct {
	Prefix string
	Pad    int
	Now    func() time.Time // for the unparsable-number fallback
}

func NewPrefixSequence() *PrefixSequence {
	return &PrefixSequence{Prefix: "INV", Pad: 3, Now: time.Now}
}

// Next never fails: an unparsable suffix falls back to a timestamp-derived
// number so invoice creation is never blocked.
func (s *PrefixSequence) Next(existing []string) string {
	if len(existing) == 0 {
		return s.render(1)
	}

	last := existing[0]
	for _, n := range existing[1:] {
		if n > last {
			last = n
		}
	}

	parts := strings.Split(last, "-")
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			return s.render(n + 1)
		}
	}
	return fmt.Sprintf("%s-%d", s.Prefix, s.Now().UnixMilli())
}

func (s *PrefixSequence) render(n int) string {
	return fmt.Sprintf("%s-%0*d", s.Prefix, s.Pad, n)
}
