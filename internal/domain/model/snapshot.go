package model

// Snapshot is a point-in-time copy of all raw records. Rankings are always
// recomputed from a snapshot; the snapshot itself is treated as immutable.
type Snapshot struct {
	ID           string             `koanf:"id" json:"id"`
	Performers   []Performer        `koanf:"performers" json:"performers"`
	Events       []Event            `koanf:"events" json:"events"`
	Performances []Performance      `koanf:"performances" json:"performances"`
	Predictions  []StoredPrediction `koanf:"predictions" json:"predictions"`
}

// EventsByID indexes events by id. Later duplicates replace earlier ones.
func EventsByID(events []Event) map[string]Event {
	out := make(map[string]Event, len(events))
	for _, e := range events {
		out[e.ID] = e
	}
	return out
}

// PerformancesForEvent returns the performances recorded for eventID in
// input order.
func PerformancesForEvent(performances []Performance, eventID string) []Performance {
	var out []Performance
	for _, p := range performances {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out
}

// NameIndex maps performer ids to display names.
func NameIndex(performers []Performer) map[string]string {
	out := make(map[string]string, len(performers))
	for _, p := range performers {
		out[p.ID] = p.Name
	}
	return out
}
