package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OutboxOpUpsert = "upsert"
	OutboxOpDelete = "delete"

	OutboxPending = "pending"
	OutboxFailed  = "failed"
)

// OutboxEntry is a local mutation still owed to the remote ledger.
type OutboxEntry struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ReviewID      string            `gorm:"size:36;not null;index" json:"review_id"`
	Op            string            `gorm:"size:10;not null" json:"op"`
	Payload       datatypes.JSONMap `json:"payload,omitempty"`
	Attempts      int               `gorm:"not null;default:0" json:"attempts"`
	NextAttemptAt time.Time         `gorm:"not null;index" json:"next_attempt_at"`
	LastError     string            `gorm:"type:text" json:"last_error,omitempty"`
	Status        string            `gorm:"size:10;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OutboxEntry) TableName() string {
	return "outbox_entries"
}

type FlushResult struct {
	Delivered int `json:"delivered"`
	Retrying  int `json:"retrying"`
	Failed    int `json:"failed"`
}
