// Package scoring converts one performance at one event into competitive
// points.
package scoring

import (
	"math"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/tier"
)

// Scorer computes the points a single performance is worth.
type Scorer interface {
	// PointsFor never fails: missing data scores zero.
	PointsFor(perf model.Performance, ev model.Event) int
}

// Calculator implements Scorer on top of a tier table.
type Calculator struct {
	table *tier.Table
}

// NewCalculator creates a calculator using the default tier table unless an
// option supplies another one.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		table: tier.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// PointsFor returns round(basePoints(rank) * multiplier(tier)), rounding
// halves up. An event without a known tier or an unresolved result is worth 0.
func (c *Calculator) PointsFor(perf model.Performance, ev model.Event) int {
	mult, ok := c.table.Multiplier(ev.Tier)
	if !ok || perf.Rank == nil {
		return 0
	}
	base := c.table.BasePoints(*perf.Rank)
	return int(math.Floor(float64(base)*mult + 0.5))
}

// Table returns the tier table the calculator scores with.
func (c *Calculator) Table() *tier.Table {
	return c.table
}
