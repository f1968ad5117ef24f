package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/codedoc/config"
	"github.com/dhamidi/codedoc/source"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("codedoc.cli")

// cfg is the project configuration, loaded before any subcommand runs.
var cfg config.Config

func main() {
	var (
		verbose    int
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:           "codedoc",
		Short:         "Document C/C++ sources from their comments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Verbosity = verbose
			}
			commonlog.Configure(cfg.Verbosity, nil)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultFile, "project configuration file")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newTOCCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError reports err on stderr. Source decoding errors are printed as
// "file:line(col) message" without the wrapping command context.
func printError(err error) {
	var serr *source.Error
	if errors.As(err, &serr) {
		fmt.Fprintln(os.Stderr, serr)
		return
	}
	fmt.Fprintf(os.Stderr, "codedoc: %s\n", err)
}
