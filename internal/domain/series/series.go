// Package series collapses the rounds of a multi-round competition so that
// only a performer's furthest round counts.
package series

import "github.com/okian/owarai/internal/domain/model"

// Counted is a performance that survived filtering and deduplication,
// together with the event it belongs to.
type Counted struct {
	Event       model.Event
	Performance model.Performance
}

// Filter decides whether an event contributes at all (e.g. "is in the past").
type Filter func(model.Event) bool

// groupKey keeps series ids and standalone event ids in separate namespaces.
type groupKey struct {
	series bool
	id     string
}

// Select returns the performances of one performer that count toward the
// total. Performances whose event is unknown or rejected by counts are
// dropped before grouping. Rounds sharing a SeriesID collapse to the one
// with the highest RoundOrder (the first one seen wins a tie); events without
// a series are their own group. Groups are returned in order of first
// appearance.
func Select(perfs []model.Performance, events map[string]model.Event, counts Filter) []Counted {
	var (
		order  []groupKey
		chosen = make(map[groupKey]Counted, len(perfs))
	)

	for _, p := range perfs {
		ev, ok := events[p.EventID]
		if !ok {
			continue
		}
		if counts != nil && !counts(ev) {
			continue
		}

		key := groupKey{id: ev.ID}
		if ev.InSeries() {
			key = groupKey{series: true, id: ev.SeriesID}
		}

		current, seen := chosen[key]
		if !seen {
			order = append(order, key)
			chosen[key] = Counted{Event: ev, Performance: p}
			continue
		}
		if ev.RoundOrder > current.Event.RoundOrder {
			chosen[key] = Counted{Event: ev, Performance: p}
		}
	}

	out := make([]Counted, 0, len(order))
	for _, k := range order {
		out = append(out, chosen[k])
	}
	return out
}
