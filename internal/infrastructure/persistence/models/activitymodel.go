package models

// ActivityModel rows are exclusively owned by one ticket and are deleted
// and reinserted as a batch whenever that ticket is resynced, so OrderIndex
// always forms a contiguous 1..k sequence in ascending timestamp order.
type ActivityModel struct {
	ID              uint   `gorm:"primaryKey"`
	ExternalID      string `gorm:"uniqueIndex;size:100;not null"`
	TicketID        string `gorm:"index;size:100;not null"`
	CreatedAt       string `gorm:"size:19"`
	Type            string `gorm:"size:20"`
	Direction       string `gorm:"size:20"`
	Sender          string `gorm:"size:255"`
	Recipient       string `gorm:"size:255"`
	QueueID         *uint  `gorm:"index"`
	CategoryID      *uint  `gorm:"index"`
	HasAttachment   bool   `gorm:"not null;default:false"`
	AutoReply       bool   `gorm:"not null;default:false"`
	OrderIndex      int    `gorm:"not null"`
	Content         string `gorm:"type:text"`
	RedactionFailed bool   `gorm:"not null;default:false"`
}

func (ActivityModel) TableName() string {
	return "activities"
}
