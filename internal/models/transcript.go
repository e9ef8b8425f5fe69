package models

import (
	"time"

	"gorm.io/datatypes"
)

// TranscriptEntry is the durable copy of a ChatMessage, one row per message.
type TranscriptEntry struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"column:user_id;type:text;index" json:"user_id"`
	SessionID string         `gorm:"column:session_id;type:uuid;index" json:"session_id"`
	Role      string         `gorm:"column:role;type:text" json:"role"` // "user" | "assistant" | "system"
	Content   string         `gorm:"column:content;type:text" json:"content"`
	Timestamp time.Time      `gorm:"column:timestamp;type:timestamptz;index" json:"timestamp"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
}

func (TranscriptEntry) TableName() string { return "transcript_entries" }
