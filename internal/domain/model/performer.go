package model

// Performer is a comedian or act taking part in events.
type Performer struct {
	ID     string `koanf:"id" json:"id"`
	Name   string `koanf:"name" json:"name"`
	Agency string `koanf:"agency" json:"agency,omitempty"`
}

// Performance joins a performer to an event. A nil Rank means the result
// has not been finalized yet.
type Performance struct {
	ID          string   `koanf:"id" json:"id"`
	PerformerID string   `koanf:"performer_id" json:"performer_id"`
	EventID     string   `koanf:"event_id" json:"event_id"`
	Rank        *int     `koanf:"rank" json:"rank"`
	Score       *float64 `koanf:"score" json:"score,omitempty"`
}

// Ranked reports whether the performance has a final placing.
func (p Performance) Ranked() bool { return p.Rank != nil }

// RankValue returns the final placing, or 0 when unresolved.
func (p Performance) RankValue() int {
	if p.Rank == nil {
		return 0
	}
	return *p.Rank
}

// IntPtr is a convenience for building performances with a placing.
func IntPtr(v int) *int { return &v }
