package sync

import (
	"context"

	"desksync/internal/infrastructure/helpdesk"
	"desksync/internal/infrastructure/persistence/models"
)

// HelpdeskGateway is the remote ticketing API surface the coordinator
// consumes. Listing failures are fatal to a run; per-ticket activity
// failures are recoverable.
type HelpdeskGateway interface {
	ListTickets(ctx context.Context, filter helpdesk.ListFilter) ([]helpdesk.Ticket, error)
	ListActivities(ctx context.Context, ticketID string) ([]helpdesk.Activity, error)
}

// SyncStore is the local-store surface the coordinator writes through.
type SyncStore interface {
	// EditedMap returns external ticket id -> last known edited timestamp.
	EditedMap(ctx context.Context) (map[string]string, error)
	// MaxEditedDate returns the most recent edited timestamp in the store,
	// or "" when the store is empty.
	MaxEditedDate(ctx context.Context) (string, error)
	// ReplaceTicket transactionally replaces one ticket row and its
	// activity batch.
	ReplaceTicket(ctx context.Context, ticket *models.TicketModel, activities []models.ActivityModel) error
}

// Redactor is the PII redaction pass applied to every sanitized body.
type Redactor interface {
	Redact(text string) (string, error)
}
