// Command main runs the database seeder for Soulverse.
package main

import (
	"flag"
	"log"

	"soulverse/internal/config"
	"soulverse/internal/database"
	"soulverse/internal/seed"
)

func main() {
	numProfiles := flag.Int("profiles", 25, "Number of profiles to create")
	numComments := flag.Int("comments", 200, "Number of comments to create")
	maxLikes := flag.Int("max-likes", 10, "Maximum likes per comment")
	days := flag.Int("days", 30, "Spread comment creation over this many days")
	seedValue := flag.Int64("seed", 0, "Generator seed (0 for random)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	summary, err := seed.NewSeeder(db).Run(seed.Options{
		Profiles:           *numProfiles,
		Comments:           *numComments,
		MaxLikesPerComment: *maxLikes,
		MaxDays:            *days,
		Seed:               *seedValue,
		Clean:              *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d profiles, %d comments and %d likes", summary.Profiles, summary.Comments, summary.Likes)
}
