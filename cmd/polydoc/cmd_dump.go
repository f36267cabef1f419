package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/polydoc/format"
	"github.com/dhamidi/polydoc/java"
)

func newDumpCmd(a *app) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "dump <type>",
		Short: "Print the declarations of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var enc format.Encoder
			switch formatFlag {
			case "line":
				enc = format.NewLineEncoder(cmd.OutOrStdout())
			case "json":
				enc = format.NewJSONEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format %q (want line or json)", formatFlag)
			}

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
			return enc.Encode(t)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "line", "output format: line or json")
	return cmd
}
