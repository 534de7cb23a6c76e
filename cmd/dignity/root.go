package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rpgo/dignity-planner/internal/calculation"
	"github.com/rpgo/dignity-planner/internal/config"
	"github.com/rpgo/dignity-planner/internal/logging"
	"github.com/rpgo/dignity-planner/internal/store"
)

// app carries process settings shared by every subcommand.
type app struct {
	envFile  string
	logLevel string
	currency string

	cfg *config.AppConfig
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "dignity",
		Short:         "Retirement corpus projection and dignity planning",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with process settings")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	root.PersistentFlags().StringVar(&a.currency, "currency", "", "ISO currency code for amounts; overrides DIGNITY_CURRENCY")

	root.AddCommand(
		newProjectCmd(a),
		newExampleCmd(a),
		newStoreCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadAppConfig(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.currency != "" {
		cfg.Currency = a.currency
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Out:    cmd.ErrOrStderr(),
	})
	return nil
}

func (a *app) planner() *calculation.Planner {
	p := calculation.NewPlanner()
	p.SetLogger(logging.NewAdapter(a.log, "planner"))
	return p
}

// openRepository wires the SQLite store and the file cache into one tiered repository.
func (a *app) openRepository(ctx context.Context) (*store.Tiered, func(), error) {
	db, err := store.OpenSQLite(ctx, a.cfg.DatabasePath, a.log)
	if err != nil {
		return nil, nil, err
	}
	cache, err := store.NewFileCache(a.cfg.CacheDir)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close database")
		}
	}
	return store.NewTiered(db, cache, a.log), closeFn, nil
}
