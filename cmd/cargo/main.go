package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/cargo/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "cargo",
		Short: "Server-rendered pages with hydrated islands",
		Long: `cargo renders virtual-DOM pages on the server and hydrates
the interactive islands in them.

  • serve     serve a directory of pages
  • diff      show the changes that turn one document into another
  • version   print build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				errors.DisableColors()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	root.AddCommand(
		diffCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}
