// Package dbinfo implements the store inspection command.
package dbinfo

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"desksync/internal/infrastructure/config"
	"desksync/internal/infrastructure/database"
	"desksync/internal/infrastructure/repository"
	"desksync/internal/shared/db"
	"desksync/internal/shared/logger"
)

var configPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dbinfo",
		Short: "Show row counts and the last synced edited date of the local store",
		RunE:  runDBInfo,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

func runDBInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	gdb := database.Get()
	store := repository.NewSyncRepository(gdb, db.NewTransactionManager(gdb))

	counts, err := store.TableCounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read table counts: %w", err)
	}

	tables := make([]string, 0, len(counts))
	for table := range counts {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Printf("Store: %s\n", cfg.Database.Path)
	for _, table := range tables {
		fmt.Printf("  %-12s %d\n", table, counts[table])
	}

	last, err := store.MaxEditedDate(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read last edited date: %w", err)
	}
	if last == "" {
		last = "never"
	}
	fmt.Printf("Last synced edit: %s\n", last)

	return nil
}
