// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Seed generates.
type Options struct {
	Users              int
	MaxMessagesPerUser int
	// FollowProbability is the chance that any ordered user pair gets a
	// follow edge. Edges are directed, so (a, b) and (b, a) roll separately.
	FollowProbability float64
	// SkipBcrypt stores a plaintext password for faster bulk seeding.
	// Never use outside development.
	SkipBcrypt bool
}

// DefaultOptions returns a small but realistic data set.
func DefaultOptions() Options {
	return Options{
		Users:              20,
		MaxMessagesPerUser: 10,
		FollowProbability:  0.2,
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. The numeric suffix
// keeps generated usernames unique across a run.
func (f *Factory) CreateUser(index int, overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s_%d", gofakeit.Username(), index),
		Email:    fmt.Sprintf("%d_%s", index, gofakeit.Email()),
		Bio:      gofakeit.Sentence(8),
		Location: gofakeit.City(),
		ImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMessage persists a short message for the user with a created-at
// spread over the past 90 days.
func (f *Factory) CreateMessage(user *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	text := gofakeit.Sentence(f.rng.Intn(12) + 2)
	if len(text) > models.MaxMessageLen {
		text = text[:models.MaxMessageLen]
	}

	daysBack := f.rng.Intn(90)
	minsBack := f.rng.Intn(24 * 60)
	message := &models.Message{
		Text:      text,
		UserID:    user.ID,
		Timestamp: time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute),
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateFollow persists a directed follow edge.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	follow := &models.Follow{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
	}
	return f.db.Create(follow).Error
}
