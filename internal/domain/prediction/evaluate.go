// Package prediction settles user predictions against final event results.
package prediction

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/owarai/internal/domain/model"
)

const (
	unknownName  = "unknown"
	undetermined = "undetermined"
	nameSep      = ", "
)

// Result is the outcome of one evaluated entry. It is never persisted.
type Result struct {
	PredictionType model.PredictionType `json:"prediction_type"`
	PredictedIDs   []string             `json:"predicted_ids"`
	IsWon          bool                 `json:"is_won"`
	BetPoints      int                  `json:"bet_points"`
	Odds           float64              `json:"odds"`
	Payout         decimal.Decimal      `json:"payout"`
	Profit         decimal.Decimal      `json:"profit"`
	PredictedNames []string             `json:"predicted_names"`
	ActualNames    []string             `json:"actual_names"`
	Details        string               `json:"details"`
}

// Evaluator decides whether prediction entries won.
type Evaluator struct {
	defaultOdds float64
}

// NewEvaluator creates an evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{defaultOdds: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Standings returns the placed performances of an event ordered by rank.
// Equal ranks keep input order; malformed placings (rank < 1) go last.
func Standings(performances []model.Performance) []model.Performance {
	out := make([]model.Performance, 0, len(performances))
	for _, p := range performances {
		if p.Ranked() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i]) < sortKey(out[j])
	})
	return out
}

func sortKey(p model.Performance) int {
	if r := p.RankValue(); r >= 1 {
		return r
	}
	return math.MaxInt
}

// Evaluate settles entry against the performances of its event. names maps
// performer ids to display names and is only used for the trace fields.
// Stored odds of zero are treated as the evaluator's default.
func (e *Evaluator) Evaluate(entry model.PredictionEntry, performances []model.Performance, names map[string]string) Result {
	standings := Standings(performances)
	outcome, determined := outcomeSet(entry.PredictionType, standings)

	won := false
	if determined {
		won = intersects(entry.PredictedIDs, outcome)
	}

	odds := entry.Odds
	if odds <= 0 {
		odds = e.defaultOdds
	}

	bet := decimal.NewFromInt(int64(entry.BetPoints))
	payout := decimal.Zero
	if won {
		payout = bet.Mul(decimal.NewFromFloat(odds))
	}

	return Result{
		PredictionType: entry.PredictionType,
		PredictedIDs:   entry.PredictedIDs,
		IsWon:          won,
		BetPoints:      entry.BetPoints,
		Odds:           odds,
		Payout:         payout,
		Profit:         payout.Sub(bet),
		PredictedNames: displayNames(entry.PredictedIDs, names),
		ActualNames:    displayNames(outcome, names),
		Details:        details(entry, outcome, names),
	}
}

// Determined reports whether standings, as returned by Standings, are final
// enough to decide a prediction of type t. An event with no placings decides
// nothing; a winner prediction also needs someone in first place.
func Determined(t model.PredictionType, standings []model.Performance) bool {
	if len(standings) == 0 {
		return false
	}
	_, ok := outcomeSet(t, standings)
	return ok
}

// outcomeSet returns the performer ids that satisfy a prediction of type t.
// determined is false for unknown types and for a winner prediction when
// nobody holds first place.
func outcomeSet(t model.PredictionType, standings []model.Performance) ([]string, bool) {
	switch t {
	case model.PredictionWinner:
		if len(standings) == 0 || standings[0].RankValue() != 1 {
			return nil, false
		}
		return []string{standings[0].PerformerID}, true
	case model.PredictionTop3:
		var ids []string
		for _, p := range standings {
			if r := p.RankValue(); r >= 1 && r <= 3 {
				ids = append(ids, p.PerformerID)
			}
		}
		return ids, true
	case model.PredictionFinalist:
		// Approximation: the upper half of the placed field counts as
		// having reached the final.
		n := (len(standings) + 1) / 2
		ids := make([]string, 0, n)
		for _, p := range standings[:n] {
			ids = append(ids, p.PerformerID)
		}
		return ids, true
	}
	return nil, false
}

func intersects(predicted, actual []string) bool {
	if len(predicted) == 0 || len(actual) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(actual))
	for _, id := range actual {
		set[id] = struct{}{}
	}
	for _, id := range predicted {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func displayNames(ids []string, names map[string]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, nameOr(names, id, unknownName))
	}
	return out
}

func nameOr(names map[string]string, id, fallback string) string {
	if n := names[id]; n != "" {
		return n
	}
	return fallback
}

func details(entry model.PredictionEntry, outcome []string, names map[string]string) string {
	predicted := make([]string, 0, len(entry.PredictedIDs))
	for _, id := range entry.PredictedIDs {
		if n := names[id]; n != "" {
			predicted = append(predicted, n)
		}
	}
	head := "predicted: " + strings.Join(predicted, nameSep)

	actual := undetermined
	if len(outcome) > 0 {
		actual = strings.Join(displayNames(outcome, names), nameSep)
	}

	switch entry.PredictionType {
	case model.PredictionWinner:
		return fmt.Sprintf("%s / actual: %s", head, actual)
	case model.PredictionTop3:
		return fmt.Sprintf("%s / actual top 3: %s", head, actual)
	case model.PredictionFinalist:
		return fmt.Sprintf("%s / actual finalists: %s", head, actual)
	}
	return head
}
