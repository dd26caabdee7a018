package models

import (
	"time"
)

// MaxMessageLen is the maximum message text length, enforced both by the
// service layer and by a CHECK constraint at the storage layer so that
// oversized text is rejected rather than truncated.
const MaxMessageLen = 140

// Message is a short text post owned by exactly one user.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:varchar(140);not null;check:chk_messages_text_length,length(text) >= 1 AND length(text) <= 140" json:"text"`
	Timestamp time.Time `gorm:"not null;index;autoCreateTime" json:"timestamp"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
}
