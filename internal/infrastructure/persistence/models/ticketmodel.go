package models

// TicketModel is keyed by the remote external id. A re-observed ticket
// replaces the full row: fields absent from the new payload become zero
// values rather than being merged with the previous row.
//
// Timestamps are stored as the remote "YYYY-MM-DD HH:MM:SS" strings so the
// lexicographic delta comparison against the remote listing stays valid.
type TicketModel struct {
	ExternalID         string `gorm:"primaryKey;size:100"`
	Title              string `gorm:"size:500"`
	CategoryID         *uint  `gorm:"index"`
	OperatorID         *uint  `gorm:"index"`
	StatusID           *uint  `gorm:"index"`
	ClientID           *uint  `gorm:"index"`
	ContactID          *uint  `gorm:"index"`
	Priority           string `gorm:"size:50"`
	Stage              string `gorm:"size:50"`
	CreatedAt          string `gorm:"size:19"`
	EditedAt           string `gorm:"size:19;index"`
	FirstAnswerAt      string `gorm:"size:19"`
	LastOperatorAt     string `gorm:"size:19"`
	LastClientAt       string `gorm:"size:19"`
	ReopenAt           string `gorm:"size:19"`
	ActivityCount      int    `gorm:"not null;default:0"`
	Followers          string `gorm:"size:1000"`
	AccountTitle       string `gorm:"size:255"`
	VIP                bool   `gorm:"column:vip;not null;default:false"`
	DevNote            string `gorm:"type:text"`
	DevTask            string `gorm:"type:text"`
	LastSyncedAt       string `gorm:"size:19"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
