package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/owarai/internal/adapters/repository"
	service "github.com/okian/owarai/internal/app"
	"github.com/okian/owarai/internal/config"
	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/pkg/logger"
	"github.com/okian/owarai/pkg/metrics"
)

// session carries the state shared by every subcommand. It is filled in by
// the root command's PersistentPreRunE.
type session struct {
	snapshotPath string
	configPath   string
	date         string
	metricsFile  string

	cfg  *config.Config
	svc  *service.Service
	snap *model.Snapshot
	log  logger.Logger
}

func newRootCmd() *cobra.Command {
	rt := &session{}

	root := &cobra.Command{
		Use:           "owarai",
		Short:         "Rank performers and settle predictions",
		Long:          `Aggregate competition results into a global ranking, quote odds for upcoming events and settle stored predictions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.teardown(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&rt.snapshotPath, "snapshot", "s", "", "Path to the snapshot file (YAML or JSON)")
	flags.StringVarP(&rt.configPath, "config", "c", "", "Path to the configuration file (overrides "+config.EnvConfig+")")
	flags.StringVar(&rt.date, "date", "", "Evaluation date as YYYY-MM-DD (defaults to today in the configured time zone)")
	flags.StringVar(&rt.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the command")
	_ = root.MarkPersistentFlagRequired("snapshot")

	root.AddCommand(
		newRankCmd(rt),
		newOddsCmd(rt),
		newEvaluateCmd(rt),
		newAnalyzeCmd(rt),
		newSettleCmd(rt),
	)
	return root
}

func (rt *session) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var loadOpts []config.LoadOption
	if rt.configPath != "" {
		loadOpts = append(loadOpts, config.WithFile(rt.configPath))
	}
	cfg, err := config.Load(ctx, loadOpts...)
	if err != nil {
		return rt.fail(cmd, fmt.Errorf("load config: %w", err))
	}
	rt.cfg = cfg

	if err := logger.Init(
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(cfg.LogLevel),
	); err != nil {
		return rt.fail(cmd, fmt.Errorf("init logger: %w", err))
	}
	rt.log = logger.Named("cli")

	opts, err := service.FromConfig(cfg)
	if err != nil {
		return rt.fail(cmd, err)
	}
	if rt.date != "" {
		d, err := model.ParseDate(rt.date)
		if err != nil {
			return rt.fail(cmd, fmt.Errorf("--date: %w", err))
		}
		opts = append(opts, service.WithToday(d))
	}
	opts = append(opts, service.WithLogger(logger.Named("service")))
	rt.svc = service.New(opts...)

	snap, err := repository.NewFileStore(rt.snapshotPath).Snapshot(ctx)
	if err != nil {
		return rt.fail(cmd, err)
	}
	rt.snap = snap

	rt.log.Debug(ctx, "snapshot loaded",
		logger.String("snapshot", snap.ID),
		logger.String("path", rt.snapshotPath),
		logger.Int("performers", len(snap.Performers)),
		logger.Int("events", len(snap.Events)),
		logger.Int("performances", len(snap.Performances)),
		logger.Int("predictions", len(snap.Predictions)),
		logger.String("today", rt.svc.Today().String()),
	)
	return nil
}

func (rt *session) teardown(cmd *cobra.Command) error {
	if rt.svc != nil {
		rt.svc.Stop()
	}

	path := rt.metricsFile
	if path == "" && rt.cfg != nil {
		path = rt.cfg.MetricsFile
	}
	if path == "" {
		return nil
	}
	if err := metrics.WriteTextfile(path); err != nil {
		return rt.fail(cmd, err)
	}
	return nil
}

// fail reports err on stderr and returns it so cobra exits non-zero.
func (rt *session) fail(cmd *cobra.Command, err error) error {
	if rt.log != nil {
		rt.log.Error(cmd.Context(), "command failed", logger.String("command", cmd.Name()), logger.Error(err))
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
	return err
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
