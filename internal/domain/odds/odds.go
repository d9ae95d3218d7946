// Package odds prices prediction bets inversely to a performer's popularity
// among the field of an event.
package odds

import (
	"math"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/ranking"
)

// Default bounds and neutral value.
const (
	DefaultMin = 1.0
	DefaultMax = 10.0
	Neutral    = 1.0
)

// DefaultTypeMultipliers returns a fresh copy of the per-type adjustment.
// Easier outcomes pay less.
func DefaultTypeMultipliers() map[model.PredictionType]float64 {
	return map[model.PredictionType]float64{
		model.PredictionWinner:   1.0,
		model.PredictionTop3:     0.5,
		model.PredictionFinalist: 0.3,
	}
}

// Calculator quotes odds against a computed ranking.
type Calculator struct {
	typeMultipliers map[model.PredictionType]float64
	lo, hi          float64
}

// NewCalculator creates a calculator with the default multipliers and bounds.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		typeMultipliers: DefaultTypeMultipliers(),
		lo:              DefaultMin,
		hi:              DefaultMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TypeMultiplier returns the adjustment for t; unknown types are not adjusted.
func (c *Calculator) TypeMultiplier(t model.PredictionType) float64 {
	if m, ok := c.typeMultipliers[t]; ok {
		return m
	}
	return 1.0
}

// Bounds returns the clamp range.
func (c *Calculator) Bounds() (lo, hi float64) { return c.lo, c.hi }

// Quote prices a bet on performerID for eventID. The field is every
// performance recorded for the event; performers missing from the ranking
// count as zero points but still count toward the average. Missing data
// yields the neutral value. The result is clamped and rounded to one decimal.
func (c *Calculator) Quote(performerID, eventID string, t model.PredictionType, r *ranking.Ranking) float64 {
	standing, ok := r.Lookup(performerID)
	if !ok {
		return Neutral
	}

	field := r.PerformancesFor(eventID)
	if len(field) == 0 {
		return Neutral
	}

	sum := 0
	for _, p := range field {
		if s, ok := r.Lookup(p.PerformerID); ok {
			sum += s.TotalPoints
		}
	}
	avg := float64(sum) / float64(len(field))
	if avg == 0 {
		return Neutral
	}

	// A performer with no points has ratio 0 and prices at the upper bound.
	ratio := float64(standing.TotalPoints) / avg
	base := 1 / ratio

	v := math.Max(c.lo, math.Min(c.hi, base*c.TypeMultiplier(t)))
	return math.Round(v*10) / 10
}

// QuoteSelection prices a multi-performer selection by its first performer.
// An empty selection is neutral.
func (c *Calculator) QuoteSelection(performerIDs []string, eventID string, t model.PredictionType, r *ranking.Ranking) float64 {
	if len(performerIDs) == 0 {
		return Neutral
	}
	return c.Quote(performerIDs[0], eventID, t, r)
}
