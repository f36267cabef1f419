package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/polydoc/java/inherit"
)

func newInheritCmd(a *app) *cobra.Command {
	var (
		param   int
		returns bool
		throws  string
	)

	cmd := &cobra.Command{
		Use:   "inherit <element>",
		Short: "Print the documentation an element inherits",
		Long: `Print the documentation an element inherits from its supertypes or
the methods it overrides. Without flags this is the summary; --param,
--return and --throws select a fragment of an instance method.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			e, err := element(snap, args[0], "")
			if err != nil {
				return err
			}

			var sink inherit.TextSink
			var found bool
			switch {
			case cmd.Flags().Changed("param"):
				found, err = snap.Docs.WriteInheritedParam(e, param, &sink)
			case returns:
				found, err = snap.Docs.WriteInheritedReturn(e, &sink)
			case throws != "":
				thrown := snap.Signatures.ResolveType(e, throws)
				if thrown == nil {
					return fmt.Errorf("exception %s: %w", throws, errNotFound)
				}
				found, err = snap.Docs.WriteInheritedThrows(e, thrown, &sink)
			default:
				found, err = snap.Docs.WriteInheritedSummary(e, &sink)
			}
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("inherited documentation of %s: %w", e.QualifiedName(), errNotFound)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sink.String())
			for _, from := range sink.From {
				fmt.Fprintf(out, "(from %s)\n", from.QualifiedName())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&param, "param", 0, "parameter position, starting at 0")
	cmd.Flags().BoolVar(&returns, "return", false, "the @return fragment")
	cmd.Flags().StringVar(&throws, "throws", "", "the @throws fragment for this exception type")
	cmd.MarkFlagsMutuallyExclusive("param", "return", "throws")

	return cmd
}
