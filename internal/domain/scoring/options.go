package scoring

import "github.com/okian/owarai/internal/domain/tier"

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithTable sets the tier table used for multipliers and base points.
func WithTable(t *tier.Table) Option {
	return func(c *Calculator) {
		if t != nil {
			c.table = t
		}
	}
}
