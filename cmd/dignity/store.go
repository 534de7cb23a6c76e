package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/dignity-planner/internal/config"
	"github.com/rpgo/dignity-planner/internal/store"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save and inspect stored snapshots",
	}
	cmd.AddCommand(newStoreSaveCmd(a), newStoreShowCmd(a), newStoreListCmd(a))
	return cmd
}

func identityOrDefault(a *app, identity string) string {
	if identity == "" {
		return a.cfg.Identity
	}
	return identity
}

func newStoreSaveCmd(a *app) *cobra.Command {
	var configPath, identity string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Validate a snapshot file and store it under an identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := config.NewInputParser().LoadFromFile(configPath)
			if err != nil {
				return err
			}
			repo, closeRepo, err := a.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			id := identityOrDefault(a, identity)
			if err := repo.Save(cmd.Context(), id, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot for %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "snapshot YAML file")
	cmd.Flags().StringVar(&identity, "identity", "", "identity to store under (default DIGNITY_IDENTITY)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newStoreShowCmd(a *app) *cobra.Command {
	var identity string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored snapshot of an identity as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := a.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			id := identityOrDefault(a, identity)
			snap, err := repo.Load(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load identity %q: %w", id, err)
			}
			data, err := config.MarshalSnapshot(snap)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&identity, "identity", "", "identity to show (default DIGNITY_IDENTITY)")
	return cmd
}

func newStoreListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List identities in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.OpenSQLite(cmd.Context(), a.cfg.DatabasePath, a.log)
			if err != nil {
				return err
			}
			defer db.Close()

			ids, err := db.Identities(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
