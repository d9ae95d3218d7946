// Package types contains the output rows shared by the application layer
// and the CLI.
package types

import (
	"github.com/shopspring/decimal"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/prediction"
	"github.com/okian/owarai/internal/domain/ranking"
)

// Entry is one row of the global ranking.
type Entry struct {
	Rank        int    `json:"rank"`
	PerformerID string `json:"performer_id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`
}

// Entries flattens standings into ranking rows.
func Entries(standings []ranking.Standing) []Entry {
	out := make([]Entry, len(standings))
	for i, s := range standings {
		out[i] = Entry{
			Rank:        s.Rank,
			PerformerID: s.Performer.ID,
			Name:        s.Performer.Name,
			TotalPoints: s.TotalPoints,
		}
	}
	return out
}

// Quote is a priced selection for an upcoming event.
type Quote struct {
	EventID        string               `json:"event_id"`
	PerformerIDs   []string             `json:"performer_ids"`
	PredictionType model.PredictionType `json:"prediction_type"`
	Odds           float64              `json:"odds"`
	Predictable    bool                 `json:"predictable"`
}

// AnalyzedResult is an evaluated entry together with the record it came from.
type AnalyzedResult struct {
	PredictionID string `json:"prediction_id"`
	UserID       string `json:"user_id"`
	EventID      string `json:"event_id"`
	EventName    string `json:"event_name"`
	CreatedAt    string `json:"created_at,omitempty"`
	prediction.Result
}

// Analysis is a user's evaluated history.
type Analysis struct {
	Results []AnalyzedResult   `json:"results"`
	Summary prediction.Summary `json:"summary"`
}

// SettlementStatus is the outcome of settling one stored prediction.
type SettlementStatus string

// Settlement statuses.
const (
	StatusSettled   SettlementStatus = "settled"
	StatusPending   SettlementStatus = "pending"
	StatusDuplicate SettlementStatus = "duplicate"
	StatusInvalid   SettlementStatus = "invalid"
	StatusSkipped   SettlementStatus = "skipped"
	StatusDeferred  SettlementStatus = "deferred"
)

// Settlement reports what happened to one stored prediction.
type Settlement struct {
	PredictionID string              `json:"prediction_id"`
	UserID       string              `json:"user_id"`
	EventID      string              `json:"event_id"`
	Status       SettlementStatus    `json:"status"`
	Payout       decimal.Decimal     `json:"payout"`
	Results      []prediction.Result `json:"results,omitempty"`
	Reason       string              `json:"reason,omitempty"`
}
