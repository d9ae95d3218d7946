package ranking

import (
	"time"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/scoring"
)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithScorer replaces the point calculator.
func WithScorer(s scoring.Scorer) Option {
	return func(a *Aggregator) {
		if s != nil {
			a.scorer = s
		}
	}
}

// WithClock sets the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.clock = now
		}
	}
}

// WithLocation sets the time zone in which "today" is observed.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.location = loc
		}
	}
}

// WithToday pins the evaluation date, overriding the clock.
func WithToday(d model.Date) Option {
	return func(a *Aggregator) {
		a.today = d
	}
}
