package main

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/joacominatel/datafetch/internal/app"
	"github.com/joacominatel/datafetch/internal/config"
	"github.com/joacominatel/datafetch/internal/database"
	"github.com/joacominatel/datafetch/internal/database/postgres"
	"github.com/joacominatel/datafetch/internal/log"
	"github.com/joacominatel/datafetch/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// errRunFailed is returned under --strict after the failure line was printed.
var errRunFailed = errors.New("run failed")

// newDriver is replaced in tests.
var newDriver = func() database.Driver {
	return postgres.New()
}

type options struct {
	envFiles []string
	logLevel string
	browse   bool
	strict   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "datafetch",
		Short: "Preview the gold.dim_customers table",
		Long: `datafetch connects to PostgreSQL using DB_NAME, DB_USER, DB_PASSWORD,
DB_HOST (default localhost) and DB_PORT (default 5432), loads every row of
gold.dim_customers and prints the first five.

Variables from ./.env are merged into the environment when the file exists.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.logLevel = v.GetString("log_level")
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.envFiles, "env-file", nil, "env file to load before reading DB_* (repeatable, default ./.env)")
	flags.String("log-level", log.DefaultLevel, "log level for stderr: debug, info, warn, error")
	flags.BoolVar(&opts.browse, "browse", false, "browse the full result interactively after the preview")
	flags.BoolVar(&opts.strict, "strict", false, "exit with status 1 when the run fails")

	v.SetEnvPrefix("DATAFETCH")
	_ = v.BindEnv("log_level")
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	return cmd
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	logger := log.New(opts.logLevel, stderr).With(zap.String("run_id", uuid.NewString()))
	defer func() { _ = logger.Sync() }()

	outcome, cfg := fetch(ctx, opts, logger, stdout)
	app.Report(stdout, outcome)

	if !outcome.OK() {
		if opts.strict {
			return errRunFailed
		}
		return nil
	}

	if opts.browse {
		return tui.Browse(outcome.Result, cfg.Database)
	}
	return nil
}

func fetch(ctx context.Context, opts *options, logger *zap.Logger, stdout io.Writer) (app.Outcome, config.Config) {
	cfg, err := config.Load(opts.envFiles...)
	if err != nil {
		logger.Info("load config failed", zap.Error(err))
		return app.Outcome{Err: &app.ErrConfig{Cause: err}}, cfg
	}

	f := app.New(cfg, newDriver(), postgres.QueryDimCustomers,
		app.WithOutput(stdout),
		app.WithLogger(logger),
	)
	return f.Run(ctx), cfg
}
