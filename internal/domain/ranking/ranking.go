// Package ranking aggregates performance points into a global standing.
package ranking

import (
	"sort"
	"time"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/scoring"
	"github.com/okian/owarai/internal/domain/series"
)

// Standing is a performer with its derived totals. TotalPoints and Rank are
// outputs only and are recomputed on every aggregation.
type Standing struct {
	Performer   model.Performer `json:"performer"`
	TotalPoints int             `json:"total_points"`
	Rank        int             `json:"rank"`
}

// Ranking is the result of one aggregation. It is read-only once returned.
type Ranking struct {
	Standings    []Standing
	Events       map[string]model.Event
	Performances []model.Performance
	Date         model.Date

	index map[string]int
}

// Lookup returns the standing of performerID.
func (r *Ranking) Lookup(performerID string) (Standing, bool) {
	if r == nil {
		return Standing{}, false
	}
	i, ok := r.index[performerID]
	if !ok {
		return Standing{}, false
	}
	return r.Standings[i], true
}

// Len is the number of ranked performers.
func (r *Ranking) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Standings)
}

// TopN returns at most n standings from the top. n <= 0 returns all.
func (r *Ranking) TopN(n int) []Standing {
	if r == nil {
		return nil
	}
	if n <= 0 || n > len(r.Standings) {
		n = len(r.Standings)
	}
	out := make([]Standing, n)
	copy(out, r.Standings[:n])
	return out
}

// PerformancesFor returns the performances recorded for eventID.
func (r *Ranking) PerformancesFor(eventID string) []model.Performance {
	if r == nil {
		return nil
	}
	return model.PerformancesForEvent(r.Performances, eventID)
}

// Names maps performer ids to display names.
func (r *Ranking) Names() map[string]string {
	if r == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(r.Standings))
	for _, s := range r.Standings {
		out[s.Performer.ID] = s.Performer.Name
	}
	return out
}

// Aggregator computes rankings from raw records.
type Aggregator struct {
	scorer   scoring.Scorer
	clock    func() time.Time
	location *time.Location
	today    model.Date
}

// NewAggregator creates an aggregator. Without options it scores with the
// default tier table and treats "today" as the current date in UTC.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		scorer:   scoring.NewCalculator(),
		clock:    time.Now,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Today is the evaluation date used to decide which events are past.
func (a *Aggregator) Today() model.Date {
	if !a.today.IsZero() {
		return a.today
	}
	return model.DateOf(a.clock(), a.location)
}

// Compute ranks every performer. Events held today or later, undated and
// TBD events contribute nothing. Performances that reference unknown events
// are ignored. Ties keep the input order of performers.
func (a *Aggregator) Compute(performers []model.Performer, events []model.Event, performances []model.Performance) *Ranking {
	today := a.Today()
	byID := model.EventsByID(events)

	byPerformer := make(map[string][]model.Performance, len(performers))
	for _, p := range performances {
		byPerformer[p.PerformerID] = append(byPerformer[p.PerformerID], p)
	}

	past := func(ev model.Event) bool { return ev.IsPastOn(today) }

	seen := make(map[string]struct{}, len(performers))
	standings := make([]Standing, 0, len(performers))
	for _, pf := range performers {
		if _, dup := seen[pf.ID]; dup {
			continue
		}
		seen[pf.ID] = struct{}{}

		total := 0
		for _, c := range series.Select(byPerformer[pf.ID], byID, past) {
			total += a.scorer.PointsFor(c.Performance, c.Event)
		}
		standings = append(standings, Standing{Performer: pf, TotalPoints: total})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalPoints > standings[j].TotalPoints
	})

	index := make(map[string]int, len(standings))
	for i := range standings {
		standings[i].Rank = i + 1
		index[standings[i].Performer.ID] = i
	}

	return &Ranking{
		Standings:    standings,
		Events:       byID,
		Performances: performances,
		Date:         today,
		index:        index,
	}
}
