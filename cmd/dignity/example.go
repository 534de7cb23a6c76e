package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/dignity-planner/internal/config"
	"github.com/rpgo/dignity-planner/internal/output"
)

func newExampleCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := config.NewInputParser().CreateExampleConfiguration()
			if outPath != "" {
				if err := output.SaveConfiguration(snap, outPath); err != nil {
					return err
				}
				a.log.Info().Str("path", outPath).Msg("example snapshot written")
				return nil
			}
			data, err := config.MarshalSnapshot(snap)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
