package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/dignity-planner/internal/config"
	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/rpgo/dignity-planner/internal/output"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		configPath string
		identity   string
		format     string
		outPath    string
		reportDir  string
		baseYear   int
	)
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the corpus for a snapshot file or a stored identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (configPath == "") == (identity == "") {
				return fmt.Errorf("exactly one of --config or --identity is required")
			}

			var snap *domain.Snapshot
			if configPath != "" {
				var err error
				snap, err = config.NewInputParser().LoadFromFile(configPath)
				if err != nil {
					return err
				}
			} else {
				repo, closeRepo, err := a.openRepository(cmd.Context())
				if err != nil {
					return err
				}
				defer closeRepo()
				snap, err = repo.Load(cmd.Context(), identity)
				if err != nil {
					return fmt.Errorf("failed to load identity %q: %w", identity, err)
				}
			}

			planner := a.planner()
			planner.BaseYear = baseYear
			report, err := planner.Run(cmd.Context(), snap)
			if err != nil {
				return err
			}

			if reportDir != "" {
				paths, err := output.GenerateReport(report, format, a.cfg.Currency, reportDir)
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), "Wrote", p)
				}
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			return output.Render(w, report, format, a.cfg.Currency)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "snapshot YAML file")
	cmd.Flags().StringVar(&identity, "identity", "", "load the snapshot stored under this identity")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, summary, csv, detailed-csv, html, json, all)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "write timestamped report files into this directory")
	cmd.Flags().IntVar(&baseYear, "base-year", 0, "calendar year of projection year 0 (default: current year)")
	return cmd
}
