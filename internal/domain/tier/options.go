package tier

import "github.com/okian/owarai/internal/domain/model"

// Option applies a configuration option to a Table under construction.
type Option func(*Table)

// WithMultiplier overrides the multiplier of a single tier. Unknown tiers and
// non-positive multipliers are ignored.
func WithMultiplier(tr model.Tier, m float64) Option {
	return func(t *Table) {
		if tr.Valid() && m > 0 {
			t.multipliers[tr] = m
		}
	}
}

// WithMultipliers overrides several tier multipliers at once. Keys are tier
// letters as they appear in configuration files.
func WithMultipliers(overrides map[string]float64) Option {
	return func(t *Table) {
		for k, m := range overrides {
			WithMultiplier(model.Tier(k), m)(t)
		}
	}
}

// WithRankPoints replaces the base-point schedule. The map is copied.
func WithRankPoints(points map[int]int) Option {
	return func(t *Table) {
		if len(points) == 0 {
			return
		}
		t.rankPoints = make(map[int]int, len(points))
		for r, p := range points {
			if r > 0 && p >= 0 {
				t.rankPoints[r] = p
			}
		}
	}
}

// WithFallback sets the linear decay used past the last scheduled place.
func WithFallback(base, step int) Option {
	return func(t *Table) {
		if base >= 0 && step >= 0 {
			t.fallbackBase = base
			t.fallbackStep = step
		}
	}
}
