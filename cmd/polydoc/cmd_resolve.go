package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	var contextName string

	cmd := &cobra.Command{
		Use:   "resolve <signature>",
		Short: "Resolve a reference such as pkg.Type#method(int) to an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			e, err := element(snap, args[0], contextName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describe(e))
			return nil
		},
	}

	cmd.Flags().StringVar(&contextName, "context", "", "qualified name of the element the reference is written in")

	return cmd
}
