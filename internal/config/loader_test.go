package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/owarai/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"OWARAI_CONFIG",
	"OWARAI_LOG_LEVEL",
	"OWARAI_TIMEZONE",
	"OWARAI_QUEUE_SIZE",
	"OWARAI_WORKER_COUNT",
	"OWARAI_LEDGER_SIZE",
	"OWARAI_MIN_ODDS",
	"OWARAI_MAX_ODDS",
	"OWARAI_PREDICTABLE_BRANDS",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "owarai.yaml")
	convey.So(os.WriteFile(path, []byte(content), 0o600), convey.ShouldBeNil)
	return path
}

const fileConfig = `
log_level: debug
timezone: UTC
queue_size: 64
worker_count: 3
tier_multipliers:
  S: 12
prediction_type_multipliers:
  finalist: 0.25
rank_points:
  "1": 150
predictable_brands:
  - M-1
`

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Timezone, convey.ShouldEqual, "Asia/Tokyo")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("OWARAI_QUEUE_SIZE", "10")
			_ = os.Setenv("OWARAI_WORKER_COUNT", "2")
			_ = os.Setenv("OWARAI_MAX_ODDS", "20.5")
			_ = os.Setenv("OWARAI_PREDICTABLE_BRANDS", "M-1, R-1 ,")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 10)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 2)
				convey.So(cfg.MaxOdds, convey.ShouldEqual, 20.5)
				convey.So(cfg.PredictableBrands, convey.ShouldResemble, []string{"M-1", "R-1"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			_ = os.Setenv("OWARAI_CONFIG", createTempConfigFile(t, fileConfig))

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Timezone, convey.ShouldEqual, "UTC")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
				convey.So(cfg.TierMultipliers, convey.ShouldResemble, map[string]float64{"S": 12})
				convey.So(cfg.PredictionTypeMultipliers["finalist"], convey.ShouldEqual, 0.25)
				convey.So(cfg.RankPoints[1], convey.ShouldEqual, 150)
				convey.So(cfg.PredictableBrands, convey.ShouldResemble, []string{"M-1"})
				convey.So(cfg.MaxOdds, convey.ShouldEqual, 10.0)
			})
		})

		convey.Convey("When both a file and environment variables are set", func() {
			_ = os.Setenv("OWARAI_CONFIG", createTempConfigFile(t, fileConfig))
			_ = os.Setenv("OWARAI_WORKER_COUNT", "8")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
			})
		})

		convey.Convey("When an explicit file is passed", func() {
			_ = os.Setenv("OWARAI_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx, config.WithFile(createTempConfigFile(t, "worker_count: 5\n")))

			convey.Convey("Then it should take precedence over OWARAI_CONFIG", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_ = os.Setenv("OWARAI_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file is not valid YAML", func() {
			_ = os.Setenv("OWARAI_CONFIG", createTempConfigFile(t, "invalid: yaml: content: ["))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a numeric variable is not a number", func() {
			_ = os.Setenv("OWARAI_QUEUE_SIZE", "invalid")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a value breaks validation", func() {
			_ = os.Setenv("OWARAI_TIMEZONE", "Nowhere/Special")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
