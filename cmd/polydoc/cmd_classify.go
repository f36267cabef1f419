package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/polydoc/java"
)

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <element>",
		Short: "Print exclusion, deprecation and, for types, the API indexes",
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

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, describe(e))
			q, ok := snap.Classifier.Qualities(e)
			if !ok {
				fmt.Fprintln(out, "not part of the documented API")
				return nil
			}
			fmt.Fprintf(out, "excluded: %t\n", q.Excluded)
			fmt.Fprintf(out, "deprecation: %s\n", q.Deprecation)
			printNames(out, "caused by", q.Causes)

			t, ok := e.(*java.Type)
			if !ok {
				return nil
			}
			c := snap.Classifier
			printNames(out, "producers", c.Producers(t))
			printNames(out, "consumers", c.Consumers(t))
			printNames(out, "transformers", c.Transformers(t))
			printNames(out, "pseudo-constructors", c.PseudoConstructors(t))
			printNames(out, "subtypes", c.Subtypes(t))
			printNames(out, "direct subtypes", c.DirectSubtypes(t))
			return nil
		},
	}
}

func printNames[E java.Element](w io.Writer, label string, elems []E) {
	if len(elems) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", label)
	for _, e := range elems {
		fmt.Fprintf(w, "  %s\n", e.QualifiedName())
	}
}
