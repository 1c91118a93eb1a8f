// Package repository implements the persistence ports on gorm.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"desksync/internal/infrastructure/persistence/models"
	"desksync/internal/shared/db"
)

const activityBatchSize = 200

// SyncRepository reads and writes the local ticket store.
type SyncRepository struct {
	db *gorm.DB
	tm *db.TransactionManager
}

func NewSyncRepository(gdb *gorm.DB, tm *db.TransactionManager) *SyncRepository {
	return &SyncRepository{db: gdb, tm: tm}
}

// EditedMap returns external ticket id -> last known edited timestamp for
// every stored ticket.
func (r *SyncRepository) EditedMap(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		ExternalID string
		EditedAt   string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Select("external_id", "edited_at").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket edit state: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.ExternalID] = row.EditedAt
	}
	return out, nil
}

// MaxEditedDate returns the most recent edited timestamp in the store, or
// "" when no tickets are stored. Timestamps are "YYYY-MM-DD HH:MM:SS"
// strings, so MAX() is a lexicographic maximum and matches the delta
// comparison.
func (r *SyncRepository) MaxEditedDate(ctx context.Context) (string, error) {
	var max *string
	if err := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Select("MAX(edited_at)").
		Scan(&max).Error; err != nil {
		return "", fmt.Errorf("failed to read max edited timestamp: %w", err)
	}
	if max == nil {
		return "", nil
	}
	return *max, nil
}

// ReplaceTicket replaces one ticket row and its full activity set in a
// single transaction. The ticket row is upserted whole; activities are
// deleted and reinserted so removals and reorderings on the remote side
// cannot leave stale rows behind.
func (r *SyncRepository) ReplaceTicket(ctx context.Context, ticket *models.TicketModel, activities []models.ActivityModel) error {
	return r.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := db.GetTxFromContext(txCtx, r.db)

		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(ticket).Error; err != nil {
			return fmt.Errorf("failed to upsert ticket %s: %w", ticket.ExternalID, err)
		}

		if err := tx.Where("ticket_id = ?", ticket.ExternalID).
			Delete(&models.ActivityModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear activities of ticket %s: %w", ticket.ExternalID, err)
		}

		if len(activities) > 0 {
			if err := tx.CreateInBatches(activities, activityBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert activities of ticket %s: %w", ticket.ExternalID, err)
			}
		}
		return nil
	})
}

// TableCounts returns row counts per table, for the dbinfo command.
func (r *SyncRepository) TableCounts(ctx context.Context) (map[string]int64, error) {
	tables := []interface{}{
		&models.TicketModel{},
		&models.ActivityModel{},
		&models.CategoryModel{},
		&models.OperatorModel{},
		&models.StatusModel{},
		&models.QueueModel{},
		&models.ClientModel{},
		&models.ContactModel{},
	}

	out := make(map[string]int64, len(tables))
	for _, model := range tables {
		stmt := &gorm.Statement{DB: r.db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model: %w", err)
		}
		var count int64
		if err := r.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", stmt.Schema.Table, err)
		}
		out[stmt.Schema.Table] = count
	}
	return out, nil
}
