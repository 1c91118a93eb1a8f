// Package sync implements the incremental ticket synchronization run: the
// coordinator, delta detection, dimension resolution, and the message
// classification heuristics.
package sync

import (
	"context"
	"sort"
	"strings"
	"time"

	"desksync/internal/domain/dimension"
	"desksync/internal/infrastructure/helpdesk"
	"desksync/internal/infrastructure/persistence/models"
	"desksync/internal/shared/errors"
	"desksync/internal/shared/logger"
	"desksync/internal/shared/services/textclean"
)

// State is the coordinator's phase. Cancelled and Error are absorbing.
type State string

const (
	StateIdle      State = "idle"
	StateListing   State = "listing"
	StateDiffing   State = "diffing"
	StateFetching  State = "fetching"
	StateDone      State = "done"
	StateCancelled State = "cancelled"
	StateError     State = "error"
)

const etaWindowSize = 20

type RunSyncCommand struct {
	From       time.Time
	To         time.Time
	Categories []string
	// Limit caps how many changed tickets are processed; 0 means all.
	Limit int
	// SinceLast derives From from the most recent locally stored edited
	// timestamp instead of the given date.
	SinceLast bool
	Progress  ProgressFunc
}

type RunSyncResult struct {
	Listed     int
	Changed    int
	Processed  int
	Skipped    int
	Duration   time.Duration
	FinalState State
}

// RunSyncUseCase orchestrates one sync run: listing, delta detection,
// per-ticket fetch and normalization, and per-ticket commits. It is
// single-threaded and run-scoped; two runs must never execute concurrently
// against the same store.
type RunSyncUseCase struct {
	gateway          HelpdeskGateway
	store            SyncStore
	resolver         *Resolver
	sanitizer        *textclean.Service
	redactor         Redactor
	operatorFallback string
	log              logger.Interface
}

func NewRunSyncUseCase(
	gateway HelpdeskGateway,
	store SyncStore,
	resolver *Resolver,
	sanitizer *textclean.Service,
	redactor Redactor,
	operatorFallback string,
	log logger.Interface,
) *RunSyncUseCase {
	return &RunSyncUseCase{
		gateway:          gateway,
		store:            store,
		resolver:         resolver,
		sanitizer:        sanitizer,
		redactor:         redactor,
		operatorFallback: operatorFallback,
		log:              log,
	}
}

// Execute runs the sync. Listing failures abort the run with nothing
// further committed; per-ticket failures are logged and skipped, and
// already-committed tickets remain durable. Cancellation is cooperative
// and checked between ticket iterations only.
func (uc *RunSyncUseCase) Execute(ctx context.Context, cmd RunSyncCommand) (*RunSyncResult, error) {
	start := time.Now()
	result := &RunSyncResult{FinalState: StateIdle}

	if err := uc.prepareCommand(ctx, &cmd); err != nil {
		result.FinalState = StateError
		return result, err
	}

	result.FinalState = StateListing
	uc.log.Infow("listing tickets",
		"from", cmd.From.Format("2006-01-02"),
		"to", cmd.To.Format("2006-01-02"),
		"categories", len(cmd.Categories))

	remote, err := uc.gateway.ListTickets(ctx, helpdesk.ListFilter{
		From:       cmd.From,
		To:         cmd.To,
		Categories: cmd.Categories,
	})
	if err != nil {
		result.FinalState = StateError
		return result, errors.NewFatalError("ticket listing failed", err)
	}
	result.Listed = len(remote)

	result.FinalState = StateDiffing
	local, err := uc.store.EditedMap(ctx)
	if err != nil {
		result.FinalState = StateError
		return result, errors.NewFatalError("failed to read local sync state", err)
	}

	changed := ChangedTickets(remote, local)
	if cmd.Limit > 0 && len(changed) > cmd.Limit {
		changed = changed[:cmd.Limit]
	}
	result.Changed = len(changed)
	uc.log.Infow("delta computed", "listed", result.Listed, "changed", result.Changed)

	result.FinalState = StateFetching
	tracker := newETATracker(etaWindowSize)

	for i := range changed {
		if ctx.Err() != nil {
			result.FinalState = StateCancelled
			result.Duration = time.Since(start)
			return result, ctx.Err()
		}

		t := &changed[i]
		ticketStart := time.Now()

		if err := uc.processTicket(ctx, t); err != nil {
			result.Skipped++
			uc.log.Warnw("ticket skipped", "ticket", t.Name, "error", err)
		} else {
			result.Processed++
		}

		tracker.observe(time.Since(ticketStart))
		if cmd.Progress != nil {
			cmd.Progress(Progress{
				Processed: i + 1,
				Total:     len(changed),
				TicketID:  t.Name,
				ETA:       tracker.estimate(len(changed) - i - 1),
			})
		}
	}

	result.FinalState = StateDone
	result.Duration = time.Since(start)
	uc.log.Infow("sync finished",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"found", result.Changed,
		"duration", FormatDuration(result.Duration))
	return result, nil
}

// prepareCommand validates the date range and resolves --since-last.
func (uc *RunSyncUseCase) prepareCommand(ctx context.Context, cmd *RunSyncCommand) error {
	if cmd.SinceLast {
		last, err := uc.store.MaxEditedDate(ctx)
		if err != nil {
			return errors.NewFatalError("failed to read last synced date", err)
		}
		if last == "" {
			return errors.NewValidationError("store is empty, cannot resume from last sync; give an explicit date range")
		}
		day, err := time.Parse("2006-01-02", last[:10])
		if err != nil {
			return errors.NewFatalError("stored edited timestamp is malformed", err)
		}
		cmd.From = day
	}
	if cmd.From.IsZero() || cmd.To.IsZero() {
		return errors.NewValidationError("both from and to dates are required")
	}
	if cmd.To.Before(cmd.From) {
		return errors.NewValidationError("to date precedes from date")
	}
	return nil
}

// processTicket fetches one ticket's thread and writes the assembled rows
// in a single per-ticket transaction.
func (uc *RunSyncUseCase) processTicket(ctx context.Context, t *helpdesk.Ticket) error {
	acts, err := uc.gateway.ListActivities(ctx, t.Name)
	if err != nil {
		return errors.NewTicketError(t.Name, "failed to fetch activities", err)
	}

	// Order indices are assigned by ascending timestamp at fetch time.
	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].Time < acts[j].Time
	})

	categoryID, err := uc.resolveRef(ctx, dimension.Category, t.Category)
	if err != nil {
		return errors.NewTicketError(t.Name, "failed to resolve category", err)
	}

	rows := make([]models.ActivityModel, 0, len(acts))
	for i := range acts {
		row, err := uc.buildActivityRow(ctx, t, &acts[i], i+1, categoryID)
		if err != nil {
			return errors.NewTicketError(t.Name, "failed to process activity", err)
		}
		rows = append(rows, row)
	}

	ticketRow, err := uc.buildTicketRow(ctx, t, categoryID, len(rows))
	if err != nil {
		return errors.NewTicketError(t.Name, "failed to assemble ticket", err)
	}

	if err := uc.store.ReplaceTicket(ctx, ticketRow, rows); err != nil {
		return errors.NewTicketError(t.Name, "failed to persist ticket", err)
	}
	return nil
}

func (uc *RunSyncUseCase) buildActivityRow(ctx context.Context, t *helpdesk.Ticket, act *helpdesk.Activity, order int, categoryID *uint) (models.ActivityModel, error) {
	cls := Classify(act, act.OperatorTitle(uc.operatorFallback))

	var queueID *uint
	if act.Item != nil && act.Item.Queue != nil {
		var err error
		queueID, err = uc.resolveRef(ctx, dimension.Queue, act.Item.Queue)
		if err != nil {
			return models.ActivityModel{}, err
		}
	}

	sanitized := uc.sanitizer.SanitizeDetailed(act.RawBody())
	content, redactErr := uc.redactor.Redact(sanitized.Text)
	if redactErr != nil {
		// Never abort a ticket on redaction failure; the content carries
		// the warning marker and the row is flagged.
		uc.log.Warnw("redaction incomplete, storing flagged text",
			"ticket", t.Name, "activity", act.Name, "error", redactErr)
	}

	return models.ActivityModel{
		ExternalID:      act.Name,
		TicketID:        t.Name,
		CreatedAt:       act.Time,
		Type:            cls.Type,
		Direction:       cls.Direction,
		Sender:          cls.Sender,
		Recipient:       cls.Recipient,
		QueueID:         queueID,
		CategoryID:      categoryID,
		HasAttachment:   act.Item.HasAttachments(),
		AutoReply:       cls.AutoReply,
		OrderIndex:      order,
		Content:         content,
		RedactionFailed: redactErr != nil,
	}, nil
}

// buildTicketRow assembles the full replacement row. Fields absent from
// the payload become zero values: re-observation replaces, never merges.
func (uc *RunSyncUseCase) buildTicketRow(ctx context.Context, t *helpdesk.Ticket, categoryID *uint, activityCount int) (*models.TicketModel, error) {
	operatorID, err := uc.resolveRef(ctx, dimension.Operator, t.User)
	if err != nil {
		return nil, err
	}
	statusID, err := uc.resolveRef(ctx, dimension.Status, t.PrimaryStatus())
	if err != nil {
		return nil, err
	}

	var clientID, contactID *uint
	var accountTitle string
	if c := t.Contact; c != nil {
		clientType := ""
		if c.Database != nil {
			clientType = c.Database.Title
		}
		if acc := c.Account; acc != nil {
			accountTitle = acc.Title
			clientID, err = uc.resolver.Resolve(ctx, dimension.Client, acc.Name, dimension.Attributes{
				Title:      acc.Title,
				CRMID:      acc.CRMID(),
				ClientType: clientType,
			})
			if err != nil {
				return nil, err
			}
		}
		contactID, err = uc.resolver.Resolve(ctx, dimension.Contact, c.Name, dimension.Attributes{
			Title:    c.Title,
			ClientID: clientID,
		})
		if err != nil {
			return nil, err
		}
	}

	return &models.TicketModel{
		ExternalID:     t.Name,
		Title:          t.Title,
		CategoryID:     categoryID,
		OperatorID:     operatorID,
		StatusID:       statusID,
		ClientID:       clientID,
		ContactID:      contactID,
		Priority:       t.Priority,
		Stage:          t.Stage,
		CreatedAt:      t.Created,
		EditedAt:       t.Edited,
		FirstAnswerAt:  t.FirstAnswer,
		LastOperatorAt: t.LastActivityOperator,
		LastClientAt:   t.LastActivityClient,
		ReopenAt:       t.Reopen,
		ActivityCount:  activityCount,
		Followers:      strings.Join(t.FollowerIDs(), ","),
		AccountTitle:   accountTitle,
		VIP:            t.IsVIP(),
		DevNote:        t.CustomFields.First("note"),
		DevTask:        t.CustomFields.First("dev_task_2"),
		LastSyncedAt:   time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}

func (uc *RunSyncUseCase) resolveRef(ctx context.Context, dim dimension.Dimension, ref *helpdesk.Ref) (*uint, error) {
	if ref == nil {
		return nil, nil
	}
	return uc.resolver.Resolve(ctx, dim, ref.Name, dimension.Attributes{Title: ref.Title})
}
