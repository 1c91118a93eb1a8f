package models

// Dimension rows are created lazily on first observation and never deleted
// by the sync path. ExternalID is the remote reference id; the numeric
// primary key is the local surrogate key referenced from tickets and
// activities.

type CategoryModel struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"uniqueIndex;size:100;not null"`
	Title      string `gorm:"size:255"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

type OperatorModel struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"uniqueIndex;size:100;not null"`
	Title      string `gorm:"size:255"`
}

func (OperatorModel) TableName() string {
	return "operators"
}

type StatusModel struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"uniqueIndex;size:100;not null"`
	Title      string `gorm:"size:255"`
}

func (StatusModel) TableName() string {
	return "statuses"
}

type QueueModel struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"uniqueIndex;size:100;not null"`
	Title      string `gorm:"size:255"`
}

func (QueueModel) TableName() string {
	return "queues"
}

type ClientModel struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"uniqueIndex;size:100;not null"`
	Title      string `gorm:"size:255"`
	CRMID      string `gorm:"column:crm_id;size:100"`
	ClientType string `gorm:"size:100"`
}

func (ClientModel) TableName() string {
	return "clients"
}

type ContactModel struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"uniqueIndex;size:100;not null"`
	Title      string `gorm:"size:255"`
	ClientID   *uint  `gorm:"index"`
}

func (ContactModel) TableName() string {
	return "contacts"
}
