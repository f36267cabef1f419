package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/polydoc/java"
)

func newOrderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order <type>",
		Short: "Print the order in which supertypes are searched for documentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			e, err := element(snap, args[0], "")
			if err != nil {
				return err
			}
			t, ok := e.(*java.Type)
			if !ok {
				return fmt.Errorf("%s is a %s, not a type", e.QualifiedName(), e.Kind())
			}
			for _, s := range snap.Docs.Order().Order(t) {
				fmt.Fprintln(cmd.OutOrStdout(), s.QualifiedName())
			}
			return nil
		},
	}
}
