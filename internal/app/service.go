// Package service wires the ranking, odds and prediction components into
// the operations exposed by the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/owarai/internal/adapters/repository"
	"github.com/okian/owarai/internal/domain/dedupe"
	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/odds"
	"github.com/okian/owarai/internal/domain/prediction"
	"github.com/okian/owarai/internal/domain/ranking"
	"github.com/okian/owarai/internal/domain/types"
	"github.com/okian/owarai/pkg/logger"
	"github.com/okian/owarai/pkg/metrics"
)

const (
	defaultQueueSize  = 1024
	defaultLedgerSize = 50_000
	defaultCacheTTL   = 5 * time.Minute
)

// Service implements the ranking and prediction operations.
type Service struct {
	mu sync.Mutex

	// Core components
	aggregator  *ranking.Aggregator
	odds        *odds.Calculator
	evaluator   *prediction.Evaluator
	eligibility *prediction.Eligibility
	cache       *repository.RankingCache
	ledger      dedupe.Ledger

	// Configuration
	workerCount int
	queueSize   int
	ledgerSize  int
	cacheTTL    time.Duration
	brands      []string
	rankingOpts []ranking.Option
	oddsOpts    []odds.Option
	evalOpts    []prediction.Option

	// State
	lastSnapshot string
	stopped      bool

	logger logger.Logger
}

// New constructs a Service. Without options it ranks with the default tier
// table in UTC and settles with one worker per CPU.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:  defaultQueueSize,
		ledgerSize: defaultLedgerSize,
		cacheTTL:   defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.ledger == nil {
		s.ledger = dedupe.NewLedger(dedupe.WithMaxSize(s.ledgerSize))
	}
	s.aggregator = ranking.NewAggregator(s.rankingOpts...)
	s.odds = odds.NewCalculator(s.oddsOpts...)
	s.evaluator = prediction.NewEvaluator(s.evalOpts...)
	s.eligibility = prediction.NewEligibility(s.brands...)
	s.cache = repository.NewRankingCache(s.cacheTTL)
	return s
}

// Today is the evaluation date the service ranks against.
func (s *Service) Today() model.Date { return s.aggregator.Today() }

// Ranking aggregates snap as of today. Rankings are memoized per snapshot id
// and evaluation date; ranking a different snapshot drops the memo.
func (s *Service) Ranking(ctx context.Context, snap *model.Snapshot) (*ranking.Ranking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNilSnapshot
	}

	today := s.aggregator.Today()
	memo := snap.ID != ""
	if memo {
		s.mu.Lock()
		if s.lastSnapshot != snap.ID {
			s.cache.Flush()
			s.lastSnapshot = snap.ID
		}
		s.mu.Unlock()

		if r, ok := s.cache.Get(snap.ID, today); ok {
			metrics.RecordRankingCache(true)
			return r, nil
		}
		metrics.RecordRankingCache(false)
	}

	start := time.Now()
	r := s.aggregator.Compute(snap.Performers, snap.Events, snap.Performances)
	metrics.RecordRankingComputed(time.Since(start), r.Len())
	s.logger.Debug(ctx, "ranking computed",
		logger.String("snapshot", snap.ID),
		logger.String("date", today.String()),
		logger.Int("performers", r.Len()),
		logger.Duration("took", time.Since(start)),
	)

	if memo {
		s.cache.Set(snap.ID, today, r)
	}
	return r, nil
}

// TopN returns the first n ranking rows, or every row when n <= 0.
func (s *Service) TopN(ctx context.Context, snap *model.Snapshot, n int) ([]types.Entry, error) {
	r, err := s.Ranking(ctx, snap)
	if err != nil {
		return nil, err
	}
	return types.Entries(r.TopN(n)), nil
}

// Quote prices a selection for eventID. Multi-performer selections are
// priced on the first performer.
func (s *Service) Quote(ctx context.Context, snap *model.Snapshot, eventID string, t model.PredictionType, performerIDs []string) (types.Quote, error) {
	if !t.Valid() {
		return types.Quote{}, fmt.Errorf("%w: %q", ErrInvalidPredictionType, t)
	}
	if len(performerIDs) == 0 {
		return types.Quote{}, ErrNoSelection
	}

	r, err := s.Ranking(ctx, snap)
	if err != nil {
		return types.Quote{}, err
	}
	ev, ok := r.Events[eventID]
	if !ok {
		return types.Quote{}, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}

	quoted := s.odds.QuoteSelection(performerIDs, eventID, t, r)
	metrics.RecordOddsQuote(string(t))

	return types.Quote{
		EventID:        eventID,
		PerformerIDs:   performerIDs,
		PredictionType: t,
		Odds:           quoted,
		Predictable:    s.eligibility.IsPredictable(ev),
	}, nil
}

// Evaluate settles a single entry against the results of eventID.
func (s *Service) Evaluate(ctx context.Context, snap *model.Snapshot, eventID string, entry model.PredictionEntry) (prediction.Result, error) {
	if err := ctx.Err(); err != nil {
		return prediction.Result{}, err
	}
	if snap == nil {
		return prediction.Result{}, ErrNilSnapshot
	}
	if !entry.PredictionType.Valid() {
		return prediction.Result{}, fmt.Errorf("%w: %q", ErrInvalidPredictionType, entry.PredictionType)
	}
	if len(entry.PredictedIDs) == 0 {
		return prediction.Result{}, ErrNoSelection
	}
	if _, ok := model.EventsByID(snap.Events)[eventID]; !ok {
		return prediction.Result{}, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}

	res := s.evaluator.Evaluate(entry, model.PerformancesForEvent(snap.Performances, eventID), model.NameIndex(snap.Performers))
	metrics.RecordPredictionEvaluated(string(res.PredictionType), res.IsWon)
	return res, nil
}

// Analyze evaluates every stored prediction of userID, or of every user when
// userID is empty. Predictions for events missing from the snapshot are
// skipped, as are malformed payloads.
func (s *Service) Analyze(ctx context.Context, snap *model.Snapshot, userID string) (types.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return types.Analysis{}, err
	}
	if snap == nil {
		return types.Analysis{}, ErrNilSnapshot
	}

	events := model.EventsByID(snap.Events)
	names := model.NameIndex(snap.Performers)
	results := []types.AnalyzedResult{}

	for i := range snap.Predictions {
		rec := &snap.Predictions[i]
		if userID != "" && rec.UserID != userID {
			continue
		}
		ev, ok := events[rec.EventID]
		if !ok {
			continue
		}

		payload := prediction.DecodeValue(rec.Predictions)
		if !payload.Valid {
			s.malformed(ctx, rec, payload.Err)
			continue
		}

		perfs := model.PerformancesForEvent(snap.Performances, rec.EventID)
		for _, entry := range payload.Entries {
			res := s.evaluator.Evaluate(entry, perfs, names)
			metrics.RecordPredictionEvaluated(string(res.PredictionType), res.IsWon)
			results = append(results, types.AnalyzedResult{
				PredictionID: rec.ID,
				UserID:       rec.UserID,
				EventID:      ev.ID,
				EventName:    ev.Name,
				CreatedAt:    formatCreatedAt(rec.CreatedAt),
				Result:       res,
			})
		}
	}

	flat := make([]prediction.Result, len(results))
	for i := range results {
		flat[i] = results[i].Result
	}
	return types.Analysis{Results: results, Summary: prediction.Summarize(flat)}, nil
}

// Stop makes later settlement runs fail with ErrStopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	s.cache.Flush()
	s.logger.Info(context.Background(), "service stopped")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"stopped":        s.stopped,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"ledgerSize":     s.ledger.Size(),
		"cachedRankings": s.cache.Len(),
		"today":          s.aggregator.Today().String(),
	}
}

func (s *Service) malformed(ctx context.Context, rec *model.StoredPrediction, err error) {
	metrics.RecordPayloadMalformed()
	s.logger.Warn(ctx, "malformed prediction payload",
		logger.String("prediction_id", rec.ID),
		logger.String("event_id", rec.EventID),
		logger.Error(err),
	)
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
