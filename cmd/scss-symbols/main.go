// scss-symbols prints the symbol tables of SCSS files.
package main

import (
	"fmt"
	"os"

	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	log.SetPrefix("[scss-symbols]")
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "scss-symbols",
		Short: "Extract variables, mixins, functions and imports from SCSS",
		Long: `scss-symbols extracts the symbols of SCSS stylesheets: variables,
mixins, functions and imports, with byte spans into each file.

Settings are read from the scssLanguageServer section of package.json in
the root directory. Command line flags override them.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("log-level") {
				return nil
			}
			level, ok := log.ParseLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}
			log.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(newDumpCmd())
	return root
}
