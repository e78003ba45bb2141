// Command seed runs the database seeder for Inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numAuthors := flag.Int("authors", 3, "Number of synthetic authors")
	numPosts := flag.Int("posts", 30, "Number of posts to create")
	numContacts := flag.Int("contacts", 5, "Number of contact entries to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d authors, %d posts, %d contacts, clean=%v\n",
		*numAuthors, *numPosts, *numContacts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumAuthors:  *numAuthors,
		NumPosts:    *numPosts,
		NumContacts: *numContacts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Mint a token for author-1 with cmd/tokengen to explore.")
}
