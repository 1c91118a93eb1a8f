package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"desksync/internal/domain/dimension"
	"desksync/internal/infrastructure/persistence/models"
	"desksync/internal/shared/db"
)

// DimensionRepository implements dimension.Store on gorm. Each dimension
// maps onto its own table; the switch statements keep the mapping explicit
// instead of going through reflection-heavy generic table lookups.
type DimensionRepository struct {
	db *gorm.DB
}

func NewDimensionRepository(gdb *gorm.DB) *DimensionRepository {
	return &DimensionRepository{db: gdb}
}

// Load reads all rows of one dimension keyed by external id.
func (r *DimensionRepository) Load(ctx context.Context, dim dimension.Dimension) (map[string]dimension.Record, error) {
	conn := r.conn(ctx)
	out := make(map[string]dimension.Record)

	switch dim {
	case dimension.Category:
		var rows []models.CategoryModel
		if err := conn.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.ExternalID] = dimension.Record{ID: row.ID, Attributes: dimension.Attributes{Title: row.Title}}
		}
	case dimension.Operator:
		var rows []models.OperatorModel
		if err := conn.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.ExternalID] = dimension.Record{ID: row.ID, Attributes: dimension.Attributes{Title: row.Title}}
		}
	case dimension.Status:
		var rows []models.StatusModel
		if err := conn.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.ExternalID] = dimension.Record{ID: row.ID, Attributes: dimension.Attributes{Title: row.Title}}
		}
	case dimension.Queue:
		var rows []models.QueueModel
		if err := conn.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.ExternalID] = dimension.Record{ID: row.ID, Attributes: dimension.Attributes{Title: row.Title}}
		}
	case dimension.Client:
		var rows []models.ClientModel
		if err := conn.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.ExternalID] = dimension.Record{ID: row.ID, Attributes: dimension.Attributes{
				Title:      row.Title,
				CRMID:      row.CRMID,
				ClientType: row.ClientType,
			}}
		}
	case dimension.Contact:
		var rows []models.ContactModel
		if err := conn.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.ExternalID] = dimension.Record{ID: row.ID, Attributes: dimension.Attributes{
				Title:    row.Title,
				ClientID: row.ClientID,
			}}
		}
	default:
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}
	return out, nil
}

// Insert creates one dimension row and returns its surrogate key.
func (r *DimensionRepository) Insert(ctx context.Context, dim dimension.Dimension, externalID string, attrs dimension.Attributes) (uint, error) {
	conn := r.conn(ctx)

	switch dim {
	case dimension.Category:
		row := models.CategoryModel{ExternalID: externalID, Title: attrs.Title}
		if err := conn.Create(&row).Error; err != nil {
			return 0, err
		}
		return row.ID, nil
	case dimension.Operator:
		row := models.OperatorModel{ExternalID: externalID, Title: attrs.Title}
		if err := conn.Create(&row).Error; err != nil {
			return 0, err
		}
		return row.ID, nil
	case dimension.Status:
		row := models.StatusModel{ExternalID: externalID, Title: attrs.Title}
		if err := conn.Create(&row).Error; err != nil {
			return 0, err
		}
		return row.ID, nil
	case dimension.Queue:
		row := models.QueueModel{ExternalID: externalID, Title: attrs.Title}
		if err := conn.Create(&row).Error; err != nil {
			return 0, err
		}
		return row.ID, nil
	case dimension.Client:
		row := models.ClientModel{
			ExternalID: externalID,
			Title:      attrs.Title,
			CRMID:      attrs.CRMID,
			ClientType: attrs.ClientType,
		}
		if err := conn.Create(&row).Error; err != nil {
			return 0, err
		}
		return row.ID, nil
	case dimension.Contact:
		row := models.ContactModel{
			ExternalID: externalID,
			Title:      attrs.Title,
			ClientID:   attrs.ClientID,
		}
		if err := conn.Create(&row).Error; err != nil {
			return 0, err
		}
		return row.ID, nil
	default:
		return 0, fmt.Errorf("unknown dimension %q", dim)
	}
}

// Update refreshes the mutable attributes of one dimension row.
func (r *DimensionRepository) Update(ctx context.Context, dim dimension.Dimension, id uint, attrs dimension.Attributes) error {
	conn := r.conn(ctx)

	switch dim {
	case dimension.Category:
		return conn.Model(&models.CategoryModel{}).Where("id = ?", id).
			Update("title", attrs.Title).Error
	case dimension.Operator:
		return conn.Model(&models.OperatorModel{}).Where("id = ?", id).
			Update("title", attrs.Title).Error
	case dimension.Status:
		return conn.Model(&models.StatusModel{}).Where("id = ?", id).
			Update("title", attrs.Title).Error
	case dimension.Queue:
		return conn.Model(&models.QueueModel{}).Where("id = ?", id).
			Update("title", attrs.Title).Error
	case dimension.Client:
		return conn.Model(&models.ClientModel{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"title":       attrs.Title,
				"crm_id":      attrs.CRMID,
				"client_type": attrs.ClientType,
			}).Error
	case dimension.Contact:
		return conn.Model(&models.ContactModel{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"title":     attrs.Title,
				"client_id": attrs.ClientID,
			}).Error
	default:
		return fmt.Errorf("unknown dimension %q", dim)
	}
}

// conn returns the ambient transaction if the context carries one.
func (r *DimensionRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}
