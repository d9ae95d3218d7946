package odds

import "github.com/okian/owarai/internal/domain/model"

// Option configures a Calculator.
type Option func(*Calculator)

// WithTypeMultiplier overrides the adjustment for one prediction type.
// Non-positive values are ignored.
func WithTypeMultiplier(t model.PredictionType, m float64) Option {
	return func(c *Calculator) {
		if m > 0 {
			c.typeMultipliers[t] = m
		}
	}
}

// WithTypeMultipliers applies several overrides keyed by type name.
func WithTypeMultipliers(overrides map[string]float64) Option {
	return func(c *Calculator) {
		for k, m := range overrides {
			WithTypeMultiplier(model.PredictionType(k), m)(c)
		}
	}
}

// WithBounds sets the clamp range. It is ignored unless 0 < lo <= hi.
func WithBounds(lo, hi float64) Option {
	return func(c *Calculator) {
		if lo > 0 && lo <= hi {
			c.lo, c.hi = lo, hi
		}
	}
}
