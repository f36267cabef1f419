package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/polydoc/store"
)

func newIndexCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Write elements, qualities, indexes and the report to a SQLite catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = a.cfg.Store.Path
			}

			s, err := store.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Migrate(); err != nil {
				return err
			}
			rep, err := s.Export(cmd.Context(), snap.Classifier, snap.Docs, a.workers())
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d elements, %d undocumented, %d ambiguous\n",
				dbPath, rep.Elements, rep.Undocumented, rep.Ambiguous)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database path (default store.path)")

	return cmd
}
