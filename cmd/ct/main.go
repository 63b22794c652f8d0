package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ct",
		Short: "Changetrack: product change tracking",
		Long: "Changetrack records products, releases, requesters, change requests and change items " +
			"in fixed-width record files, and reports on outstanding work.",
		SilenceUsage: true,
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newProductCmd())
	cmd.AddCommand(newReleaseCmd())
	cmd.AddCommand(newRequesterCmd())
	cmd.AddCommand(newRequestCmd())
	cmd.AddCommand(newItemCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newMenuCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ct %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
