package prediction

import "github.com/shopspring/decimal"

// Summary aggregates a user's evaluated entries.
type Summary struct {
	Total       int             `json:"total"`
	Won         int             `json:"won"`
	WinRate     float64         `json:"win_rate"`
	TotalBet    int             `json:"total_bet"`
	TotalPayout decimal.Decimal `json:"total_payout"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// Summarize totals results. WinRate is a percentage, zero when empty.
func Summarize(results []Result) Summary {
	s := Summary{
		Total:       len(results),
		TotalPayout: decimal.Zero,
		TotalProfit: decimal.Zero,
	}
	for _, r := range results {
		if r.IsWon {
			s.Won++
		}
		s.TotalBet += r.BetPoints
		s.TotalPayout = s.TotalPayout.Add(r.Payout)
		s.TotalProfit = s.TotalProfit.Add(r.Profit)
	}
	if s.Total > 0 {
		s.WinRate = float64(s.Won) / float64(s.Total) * 100
	}
	return s
}
