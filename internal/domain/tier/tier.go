// Package tier holds the lookup tables that turn a finishing place and an
// event tier into base points and a multiplier.
//
// A Table is built once and never mutated afterwards, so one value can be
// shared by any number of goroutines.
package tier

import "github.com/okian/owarai/internal/domain/model"

// Default table constants.
const (
	defaultFallbackBase = 10 // base points awarded at the last scheduled place
	defaultFallbackStep = 2  // points lost per place beyond the schedule
)

// Table is the immutable tier configuration.
type Table struct {
	multipliers  map[model.Tier]float64
	rankPoints   map[int]int
	lastRank     int
	fallbackBase int
	fallbackStep int
}

// DefaultMultipliers returns a copy of the standard tier multipliers.
func DefaultMultipliers() map[model.Tier]float64 {
	return map[model.Tier]float64{
		model.TierS: 10,
		model.TierA: 7,
		model.TierB: 5,
		model.TierC: 3.5,
		model.TierD: 2,
		model.TierE: 1,
	}
}

// DefaultRankPoints returns a copy of the standard base-point schedule.
func DefaultRankPoints() map[int]int {
	return map[int]int{
		1:  100,
		2:  80,
		3:  60,
		4:  50,
		5:  40,
		6:  30,
		7:  25,
		8:  20,
		9:  15,
		10: 10,
	}
}

// Default returns the standard table.
func Default() *Table {
	return New()
}

// New builds a table from the standard values and applies opts on top.
func New(opts ...Option) *Table {
	t := &Table{
		multipliers:  DefaultMultipliers(),
		rankPoints:   DefaultRankPoints(),
		fallbackBase: defaultFallbackBase,
		fallbackStep: defaultFallbackStep,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.lastRank = 0
	for r := range t.rankPoints {
		if r > t.lastRank {
			t.lastRank = r
		}
	}
	return t
}

// Multiplier returns the multiplier for tr. The second result is false for
// an absent or unknown tier.
func (t *Table) Multiplier(tr model.Tier) (float64, bool) {
	m, ok := t.multipliers[tr]
	return m, ok
}

// BasePoints returns the base points for finishing at rank. Places past the
// schedule decay linearly to zero. Ranks below 1 are malformed and earn 0
// rather than being run through the decay, which would award rank 0 more
// than rank 10.
func (t *Table) BasePoints(rank int) int {
	if rank < 1 {
		return 0
	}
	if p, ok := t.rankPoints[rank]; ok {
		return p
	}
	if rank < t.lastRank {
		// hole in a custom schedule
		return 0
	}
	return max(0, t.fallbackBase-(rank-t.lastRank)*t.fallbackStep)
}
