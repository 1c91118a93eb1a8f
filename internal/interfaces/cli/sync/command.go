// Package sync wires the sync run command: configuration, logging, store,
// remote client, and the run use case.
package sync

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	appsync "desksync/internal/application/sync"
	"desksync/internal/infrastructure/config"
	"desksync/internal/infrastructure/database"
	"desksync/internal/infrastructure/helpdesk"
	"desksync/internal/infrastructure/repository"
	"desksync/internal/shared/db"
	"desksync/internal/shared/errors"
	"desksync/internal/shared/logger"
	"desksync/internal/shared/services/redact"
	"desksync/internal/shared/services/textclean"
)

var (
	configPath string
	fromStr    string
	toStr      string
	categories []string
	limit      int
	sinceLast  bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize tickets from the helpdesk into the local store",
		Long: `Fetch the ticket listing for a date window, detect tickets whose edited
timestamp differs from the local store, and re-fetch each changed ticket's
full message thread. Message bodies are sanitized and redacted before they
are written.`,
		RunE: runSync,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&fromStr, "from", "", "Start of the edited-date window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "End of the edited-date window (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Restrict to categories, by title or external id (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Process at most N changed tickets (0 = all)")
	cmd.Flags().BoolVar(&sinceLast, "since-last", false, "Start the window at the most recent locally stored edited date")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	runCmd, err := buildCommand(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := helpdesk.NewClient(cfg.Helpdesk)

	if len(categories) > 0 {
		ids, err := resolveCategoryArgs(ctx, client, categories)
		if err != nil {
			return err
		}
		runCmd.Categories = ids
	}

	gdb := database.Get()
	tm := db.NewTransactionManager(gdb)
	store := repository.NewSyncRepository(gdb, tm)
	dims := repository.NewDimensionRepository(gdb)

	resolver, err := appsync.NewResolver(ctx, dims, log)
	if err != nil {
		return fmt.Errorf("failed to preload dimensions: %w", err)
	}

	uc := appsync.NewRunSyncUseCase(
		client,
		store,
		resolver,
		textclean.NewService(),
		redact.NewRedactor(),
		cfg.Sync.OperatorFallback,
		log,
	)

	runCmd.Progress = func(p appsync.Progress) {
		eta := "-"
		if p.ETA > 0 {
			eta = appsync.FormatDuration(p.ETA)
		}
		fmt.Printf("\r[%d/%d] ticket %s, ETA %s    ", p.Processed, p.Total, p.TicketID, eta)
	}

	result, err := uc.Execute(ctx, *runCmd)
	fmt.Println()
	if err != nil {
		if errors.IsFatal(err) {
			log.Errorw("sync aborted", "error", err)
		}
		return err
	}

	fmt.Printf("Listed %d tickets, %d changed, %d processed, %d skipped in %s\n",
		result.Listed, result.Changed, result.Processed, result.Skipped,
		appsync.FormatDuration(result.Duration))
	if result.Skipped > 0 {
		return fmt.Errorf("%d tickets were skipped, see log for details", result.Skipped)
	}
	return nil
}

// buildCommand turns the date flags into a run command. A missing --from
// defaults the window to the configured number of days before --to.
func buildCommand(cfg *config.Config) (*appsync.RunSyncCommand, error) {
	runCmd := &appsync.RunSyncCommand{
		Limit:     limit,
		SinceLast: sinceLast,
	}

	runCmd.To = time.Now().Truncate(24 * time.Hour)
	if toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --to date %q: %w", toStr, err)
		}
		runCmd.To = to
	}

	switch {
	case sinceLast:
		// From is derived from the store inside the run.
	case fromStr != "":
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --from date %q: %w", fromStr, err)
		}
		runCmd.From = from
	default:
		runCmd.From = runCmd.To.AddDate(0, 0, -cfg.Sync.DefaultDays)
	}

	return runCmd, nil
}

// resolveCategoryArgs maps category titles given on the command line onto
// external ids; values that match no title are passed through as ids.
func resolveCategoryArgs(ctx context.Context, client *helpdesk.Client, args []string) ([]string, error) {
	cats, err := client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	byTitle := make(map[string]string, len(cats))
	for _, c := range cats {
		byTitle[strings.ToLower(c.Title)] = c.Name
	}

	out := make([]string, 0, len(args))
	for _, arg := range args {
		if id, ok := byTitle[strings.ToLower(arg)]; ok {
			out = append(out, id)
		} else {
			out = append(out, arg)
		}
	}
	return out, nil
}
