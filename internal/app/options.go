package service

import (
	"time"

	"github.com/okian/owarai/internal/config"
	"github.com/okian/owarai/internal/domain/dedupe"
	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/odds"
	"github.com/okian/owarai/internal/domain/prediction"
	"github.com/okian/owarai/internal/domain/ranking"
	"github.com/okian/owarai/internal/domain/scoring"
	"github.com/okian/owarai/internal/domain/tier"
	"github.com/okian/owarai/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of settlement workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the settlement queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLedgerSize caps the settled-prediction ledger. Zero keeps every id.
func WithLedgerSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.ledgerSize = size
		}
	}
}

// WithLedger replaces the settled-prediction ledger, for example to share
// one ledger between services.
func WithLedger(l dedupe.Ledger) Option {
	return func(s *Service) {
		if l != nil {
			s.ledger = l
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTierTable scores events with t instead of the default table.
func WithTierTable(t *tier.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.rankingOpts = append(s.rankingOpts, ranking.WithScorer(scoring.NewCalculator(scoring.WithTable(t))))
		}
	}
}

// WithLocation sets the time zone in which the evaluation date is observed.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.rankingOpts = append(s.rankingOpts, ranking.WithLocation(loc))
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.rankingOpts = append(s.rankingOpts, ranking.WithClock(now))
	}
}

// WithToday pins the evaluation date.
func WithToday(d model.Date) Option {
	return func(s *Service) {
		s.rankingOpts = append(s.rankingOpts, ranking.WithToday(d))
	}
}

// WithOddsOptions configures the odds calculator.
func WithOddsOptions(opts ...odds.Option) Option {
	return func(s *Service) {
		s.oddsOpts = append(s.oddsOpts, opts...)
	}
}

// WithEvaluatorOptions configures the prediction evaluator.
func WithEvaluatorOptions(opts ...prediction.Option) Option {
	return func(s *Service) {
		s.evalOpts = append(s.evalOpts, opts...)
	}
}

// WithPredictableBrands sets the competitions open for predictions.
func WithPredictableBrands(brands ...string) Option {
	return func(s *Service) {
		s.brands = append([]string(nil), brands...)
	}
}

// WithCacheTTL expires memoized rankings after ttl. Zero keeps them until
// a different snapshot is ranked.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// FromConfig translates cfg into service options.
func FromConfig(cfg *config.Config) ([]Option, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	table := tier.New(
		tier.WithMultipliers(cfg.TierMultipliers),
		tier.WithRankPoints(cfg.RankPoints),
	)

	return []Option{
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithLedgerSize(cfg.LedgerSize),
		WithCacheTTL(cfg.RankingCacheTTL()),
		WithLocation(loc),
		WithTierTable(table),
		WithOddsOptions(
			odds.WithTypeMultipliers(cfg.PredictionTypeMultipliers),
			odds.WithBounds(cfg.MinOdds, cfg.MaxOdds),
		),
		WithPredictableBrands(cfg.PredictableBrands...),
	}, nil
}
