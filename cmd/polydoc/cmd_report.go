package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/codebase"
)

func newReportCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise every element and report what is undocumented or ambiguous",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.workers())
			summarised := 0
			for _, e := range snap.Universe.Elements() {
				e := e
				if !summarisable(snap, e) {
					continue
				}
				summarised++
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					_, err := snap.Summary(e)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			diag := snap.Universe.Diagnostics()
			undocumented := snap.Undocumented.Names()
			ambiguous := diag.AmbiguousNames()
			fmt.Fprintf(out, "elements: %d\n", summarised)
			fmt.Fprintf(out, "undocumented: %d\n", len(undocumented))
			fmt.Fprintf(out, "ambiguous: %d\n", len(ambiguous))
			fmt.Fprintf(out, "unresolved: %d\n", len(diag.Unresolved()))
			if list {
				for _, name := range undocumented {
					fmt.Fprintf(out, "undocumented %s\n", name)
				}
				for _, name := range ambiguous {
					fmt.Fprintf(out, "ambiguous %s\n", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the names")

	return cmd
}

// summarisable reports whether e is part of the documented API. The
// unnamed module has no documentation of its own.
func summarisable(snap *codebase.Snapshot, e java.Element) bool {
	if m, ok := e.(*java.Module); ok && m.IsUnnamed() {
		return false
	}
	return snap.Classifier.Documented(e)
}
