package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/polydoc/config"
)

const version = "0.1.0"

// app holds what the persistent flags and the config file decide for
// every command.
type app struct {
	configFile string
	sources    []string
	verbose    int
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "polydoc",
		Short:        "Resolve Java doc references and inherited documentation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			verbosity := cfg.Log.Verbosity
			if a.verbose > 0 {
				verbosity = a.verbose
			}
			var path *string
			if cfg.Log.File != "" {
				path = &cfg.Log.File
			}
			commonlog.Configure(verbosity, path)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default polydoc.toml)")
	flags.StringSliceVar(&a.sources, "src", nil, "source root, repeatable")
	flags.CountVarP(&a.verbose, "verbose", "v", "log more, repeatable")

	rootCmd.AddCommand(newResolveCmd(a))
	rootCmd.AddCommand(newOrderCmd(a))
	rootCmd.AddCommand(newInheritCmd(a))
	rootCmd.AddCommand(newClassifyCmd(a))
	rootCmd.AddCommand(newIndexCmd(a))
	rootCmd.AddCommand(newReportCmd(a))
	rootCmd.AddCommand(newDumpCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
