package config

import (
	"log"
	"time"

	"libralend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Seeding is for development only; each
// seeder is a no-op when its table already has rows.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedCatalog(); err != nil {
		log.Printf("⚠️ Catalog seeder skipped: %v", err)
	}
	if err := s.seedMembers(); err != nil {
		log.Printf("⚠️ Member seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedCatalog seeds a handful of authors, categories and books
func (s *Seeder) seedCatalog() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil // Catalog already seeded
	}

	fiction := &models.Category{Name: "Fiction", Description: "Novels and short stories"}
	science := &models.Category{Name: "Science", Description: "Popular science and reference"}
	if err := s.db.Create([]*models.Category{fiction, science}).Error; err != nil {
		return err
	}

	orwell := &models.Author{FirstName: "George", LastName: "Orwell"}
	sagan := &models.Author{FirstName: "Carl", LastName: "Sagan"}
	if err := s.db.Create([]*models.Author{orwell, sagan}).Error; err != nil {
		return err
	}

	books := []*models.Book{
		{
			Title:           "Nineteen Eighty-Four",
			ISBN:            "9780451524935",
			PageCount:       328,
			PublishedDate:   time.Date(1949, 6, 8, 0, 0, 0, 0, time.UTC),
			TotalCopies:     3,
			AvailableCopies: 3,
			AuthorID:        orwell.ID,
			CategoryID:      fiction.ID,
		},
		{
			Title:           "Cosmos",
			ISBN:            "9780345539435",
			PageCount:       396,
			PublishedDate:   time.Date(1980, 9, 28, 0, 0, 0, 0, time.UTC),
			TotalCopies:     2,
			AvailableCopies: 2,
			AuthorID:        sagan.ID,
			CategoryID:      science.ID,
		},
	}
	if err := s.db.Create(books).Error; err != nil {
		return err
	}

	log.Printf("✅ Catalog seeded: %d books", len(books))
	return nil
}

// seedMembers seeds a demo member
func (s *Seeder) seedMembers() error {
	var count int64
	s.db.Model(&models.Member{}).Count(&count)
	if count > 0 {
		return nil // Members already seeded
	}

	now := time.Now()
	member := &models.Member{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.org",
		PhoneNumber:    "+1-555-0100",
		Address:        "1 Analytical Way",
		MembershipDate: &now,
		IsActive:       true,
	}

	if err := s.db.Create(member).Error; err != nil {
		return err
	}

	log.Printf("✅ Member seeded: %s", member.Email)
	return nil
}
