// Command seed fills the development database with sample users,
// messages, and follow edges.
package main

import (
	"flag"
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	users := flag.Int("users", defaults.Users, "number of users to create")
	messages := flag.Int("messages", defaults.MaxMessagesPerUser, "max messages per user")
	followProb := flag.Float64("follow-prob", defaults.FollowProbability, "probability of a follow edge per ordered user pair")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "store plaintext passwords for faster seeding (dev only)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		Users:              *users,
		MaxMessagesPerUser: *messages,
		FollowProbability:  *followProb,
		SkipBcrypt:         *skipBcrypt,
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
