// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"kkapi/internal/config"
	"kkapi/internal/database"
	"kkapi/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numSpeaks := flag.Int("speaks", 100, "Number of speak entries to create")
	numPosts := flag.Int("posts", 50, "Number of feed posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:    *numUsers,
		NumSpeaks:   *numSpeaks,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
