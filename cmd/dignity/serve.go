package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/dignity-planner/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := a.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			if addr == "" {
				addr = a.cfg.Addr()
			}
			srv := api.NewServer(a.planner(), repo, a.log)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :DIGNITY_PORT)")
	return cmd
}
