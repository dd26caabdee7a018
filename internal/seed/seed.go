package seed

import (
	"fmt"
	"log"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with users, messages, and follow edges.
// It is additive; it never truncates existing data.
func Seed(db *gorm.DB, opts Options) error {
	if opts.Users <= 0 {
		return nil
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser(i)
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	messageCount := 0
	for _, user := range users {
		n := 0
		if opts.MaxMessagesPerUser > 0 {
			n = f.rng.Intn(opts.MaxMessagesPerUser + 1)
		}
		for i := 0; i < n; i++ {
			if _, err := f.CreateMessage(user); err != nil {
				return fmt.Errorf("seed message for user %d: %w", user.ID, err)
			}
			messageCount++
		}
	}
	log.Printf("Seeded %d messages", messageCount)

	followCount := 0
	for _, follower := range users {
		for _, followed := range users {
			if follower.ID == followed.ID {
				continue
			}
			if f.rng.Float64() < opts.FollowProbability {
				if err := f.CreateFollow(follower, followed); err != nil {
					return fmt.Errorf("seed follow %d -> %d: %w", follower.ID, followed.ID, err)
				}
				followCount++
			}
		}
	}
	log.Printf("Seeded %d follow edges", followCount)

	return nil
}
