package models

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is one recorded food intake event. Rows are immutable after
// creation except for deletion; the surrogate ID preserves insertion order.
type LogEntry struct {
	ID        uint64    `gorm:"primarykey" json:"-"`
	EntryID   string    `gorm:"type:varchar(64);not null;uniqueIndex:uidx_entries_user_entry" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:uidx_entries_user_entry;index" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Portion   string    `gorm:"size:255;not null" json:"portion"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Timestamp *int64    `json:"timestamp"` // milliseconds since epoch; nil on legacy rows
	CreatedAt time.Time `json:"created_at"`
}

// DefaultPortion is applied when a caller does not supply a portion descriptor.
const DefaultPortion = "1 serving"
