package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAuthors  int
	NumPosts    int
	NumContacts int
	ShouldClean bool
}

// Seeder populates the database with demo content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded content. Destructive, development only.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"posts", "contacts", "support_messages"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// SeedPosts creates demo posts spread across numAuthors synthetic author
// identities. Author IDs are deterministic so a dev token minted for
// "author-1" owns a predictable slice of the data.
func (s *Seeder) SeedPosts(numAuthors, numPosts int) ([]string, error) {
	if numAuthors <= 0 {
		numAuthors = 3
	}
	authorIDs := make([]string, numAuthors)
	for i := range authorIDs {
		authorIDs[i] = fmt.Sprintf("author-%d", i+1)
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		posts = append(posts, s.factory.BuildPost(authorIDs[i%numAuthors]))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("seed posts: %w", err)
	}

	log.Printf("Created %d posts across %d authors", len(posts), numAuthors)
	return authorIDs, nil
}

// SeedContacts creates an ordered demo contact directory.
func (s *Seeder) SeedContacts(numContacts int) error {
	for i := 0; i < numContacts; i++ {
		overrides := []func(*models.Contact){}
		// a couple of inactive entries so the public/admin split is visible
		if i >= numContacts-1 && numContacts > 2 {
			overrides = append(overrides, func(c *models.Contact) { c.IsActive = false })
		}
		if _, err := s.factory.CreateContact(i, overrides...); err != nil {
			return fmt.Errorf("seed contacts: %w", err)
		}
	}
	log.Printf("Created %d contacts", numContacts)
	return nil
}

// SeedSupportMessages creates a handful of inbox entries in mixed states.
func (s *Seeder) SeedSupportMessages(count int) error {
	statuses := []string{models.SupportStatusNew, models.SupportStatusRead, models.SupportStatusReplied}
	for i := 0; i < count; i++ {
		status := statuses[i%len(statuses)]
		_, err := s.factory.CreateSupportMessage(func(m *models.SupportMessage) {
			m.Status = status
		})
		if err != nil {
			return fmt.Errorf("seed support messages: %w", err)
		}
	}
	log.Printf("Created %d support messages", count)
	return nil
}

// Run executes the full seeding pass described by opts.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}
	if _, err := s.SeedPosts(opts.NumAuthors, opts.NumPosts); err != nil {
		return err
	}
	if err := s.SeedContacts(opts.NumContacts); err != nil {
		return err
	}
	return s.SeedSupportMessages(6)
}
