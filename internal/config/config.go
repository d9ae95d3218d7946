// Package config defines process configuration and how it is loaded.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Map fields are overrides; nil means "use the engine default".
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"runtime"
	"time"
	_ "time/tzdata" // timezone names must resolve on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Timezone is the IANA zone in which "today" is observed when deciding
	// whether an event is in the past.
	Timezone string `koanf:"timezone" validate:"required,timezone"`

	// WorkerCount sets the number of settlement workers.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`

	// QueueSize bounds the settlement queue.
	QueueSize int `koanf:"queue_size" validate:"gte=1"`

	// LedgerSize caps how many settled prediction ids are remembered.
	// Zero keeps every id.
	LedgerSize int `koanf:"ledger_size" validate:"gte=0"`

	// RankingCacheTTLSeconds expires memoized rankings. Zero keeps them
	// until the snapshot changes.
	RankingCacheTTLSeconds int `koanf:"ranking_cache_ttl_s" validate:"gte=0"`

	// MetricsFile, when set, receives a Prometheus textfile after each command.
	MetricsFile string `koanf:"metrics_file"`

	// TierMultipliers overrides the point multiplier of individual tiers.
	TierMultipliers map[string]float64 `koanf:"tier_multipliers" validate:"omitempty,dive,keys,oneof=S A B C D E,endkeys,gt=0"`

	// RankPoints replaces the base points awarded per final placing.
	RankPoints map[int]int `koanf:"rank_points" validate:"omitempty,dive,keys,gt=0,endkeys,gte=0"`

	// PredictionTypeMultipliers overrides the odds adjustment per prediction type.
	PredictionTypeMultipliers map[string]float64 `koanf:"prediction_type_multipliers" validate:"omitempty,dive,keys,oneof=winner top3 finalist,endkeys,gt=0"`

	// MinOdds and MaxOdds clamp quoted odds.
	MinOdds float64 `koanf:"min_odds" validate:"gt=0"`
	MaxOdds float64 `koanf:"max_odds" validate:"gtefield=MinOdds"`

	// PredictableBrands lists the competitions open for predictions.
	PredictableBrands []string `koanf:"predictable_brands" validate:"omitempty,dive,required"`
}

// New creates a Config with defaults. Context is accepted first to follow
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Timezone:               "Asia/Tokyo",
		WorkerCount:            runtime.NumCPU(),
		QueueSize:              1024,
		LedgerSize:             50_000,
		RankingCacheTTLSeconds: 300,
		MinOdds:                1.0,
		MaxOdds:                10.0,
		PredictableBrands:      []string{"M-1", "R-1", "THE SECOND", "キングオブコント"},
	}
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// RankingCacheTTL returns RankingCacheTTLSeconds as a duration.
func (c *Config) RankingCacheTTL() time.Duration {
	return time.Duration(c.RankingCacheTTLSeconds) * time.Second
}
