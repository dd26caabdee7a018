package models

import (
	"time"
)

// Follow is a directed edge: the follower sees the followed user's
// messages in their home timeline. "A follows B" does not imply
// "B follows A"; both directions are separate rows.
//
// The edge is keyed by (follower_id, followed_id) rather than modeled
// as a bidirectional collection, so directionality stays unambiguous.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey;autoIncrement:false" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
