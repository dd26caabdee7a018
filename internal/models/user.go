// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Default profile images applied at the storage layer when signup omits them.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents an account in the Warbler application.
//
// Users are hard-deleted: removing an account must also remove every
// message it owns and every follow edge referencing it, in one
// transaction (see UserRepository.DeleteWithDependents).
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	ImageURL       string    `gorm:"not null;default:'/static/images/default-pic.png'" json:"image_url"`
	HeaderImageURL string    `gorm:"not null;default:'/static/images/warbler-hero.jpg'" json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Messages       []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}
