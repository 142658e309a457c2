// Package main implements the entry point for the Bookly API server,
// a library-management service handling users, authors, books and the
// borrow/return lending workflow.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary with no
// subcommand starts the HTTP server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bookly-api",
		Short:        "Bookly library management API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Apply database schema migrations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) > 0 {
				direction = args[0]
			}
			return runMigrate(direction)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Load sample users, authors and books into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	})

	return root
}
