package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/owarai/internal/domain/model"
)

func newRankCmd(rt *session) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the global ranking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := rt.svc.TopN(cmd.Context(), rt.snap, limit)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return writeJSON(cmd, rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print only the first N rows (0 prints all)")
	return cmd
}

func newOddsCmd(rt *session) *cobra.Command {
	var (
		performers []string
		eventID    string
		kind       string
	)

	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Quote odds for a selection in an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := rt.svc.Quote(cmd.Context(), rt.snap, eventID, model.PredictionType(kind), performers)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return writeJSON(cmd, q)
		},
	}
	cmd.Flags().StringSliceVarP(&performers, "performer", "p", nil, "Performer id; repeat or separate with commas for a multi-performer selection")
	cmd.Flags().StringVarP(&eventID, "event", "e", "", "Event id")
	cmd.Flags().StringVarP(&kind, "type", "t", string(model.PredictionWinner), "Prediction type: winner, top3 or finalist")
	_ = cmd.MarkFlagRequired("performer")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func newEvaluateCmd(rt *session) *cobra.Command {
	var (
		entry   model.PredictionEntry
		eventID string
		kind    string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Settle a single prediction against an event's results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry.PredictionType = model.PredictionType(kind)
			res, err := rt.svc.Evaluate(cmd.Context(), rt.snap, eventID, entry)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return writeJSON(cmd, res)
		},
	}
	cmd.Flags().StringVarP(&eventID, "event", "e", "", "Event id")
	cmd.Flags().StringVarP(&kind, "type", "t", string(model.PredictionWinner), "Prediction type: winner, top3 or finalist")
	cmd.Flags().StringSliceVarP(&entry.PredictedIDs, "performers", "p", nil, "Predicted performer ids")
	cmd.Flags().IntVar(&entry.BetPoints, "bet", 0, "Points staked")
	cmd.Flags().Float64Var(&entry.Odds, "odds", 0, "Odds locked in when the bet was placed (0 means 1)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("performers")
	return cmd
}

func newAnalyzeCmd(rt *session) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate stored predictions and summarise the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.svc.Analyze(cmd.Context(), rt.snap, userID)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return writeJSON(cmd, a)
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "Only analyze this user's predictions")
	return cmd
}

func newSettleCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Pay out stored predictions whose events have final results",
		Long:  `Settle every stored prediction in the snapshot. Each prediction id is paid at most once per process; records already marked paid_out are reported as duplicates.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := rt.svc.Settle(cmd.Context(), rt.snap)
			if err != nil {
				return rt.fail(cmd, err)
			}
			return writeJSON(cmd, out)
		},
	}
}
