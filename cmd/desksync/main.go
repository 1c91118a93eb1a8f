package main

import (
	"os"

	"github.com/spf13/cobra"

	"desksync/internal/interfaces/cli/dbinfo"
	"desksync/internal/interfaces/cli/sync"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "desksync",
		Short: "Desksync - incremental helpdesk ticket harvester",
		Long:  `Desksync mirrors support tickets and their message threads from a remote helpdesk API into a local SQLite store, sanitizing and redacting message bodies on the way in.`,
	}

	rootCmd.AddCommand(
		sync.NewCommand(),
		dbinfo.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
