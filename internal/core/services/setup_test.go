package services

import (
	"testing"
	"time"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// sqlite allows a single writer, so the pool is pinned to one
// connection; the guarded updates still decide every availability race.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func setupUOW(t *testing.T) (*repositories.UnitOfWork, *gorm.DB) {
	db := setupTestDB(t)
	return repositories.NewUnitOfWork(db), db
}

func newUUID() uuid.UUID {
	return uuid.New()
}

func createAuthor(t *testing.T, db *gorm.DB, lastName string) *models.Author {
	t.Helper()
	author := &models.Author{FirstName: "George", LastName: lastName}
	require.NoError(t, db.Create(author).Error)
	return author
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createBook(t *testing.T, db *gorm.DB, isbn string, copies int) *models.Book {
	t.Helper()
	author := createAuthor(t, db, "Orwell-"+isbn)
	category := createCategory(t, db, "Fiction-"+isbn)
	book := &models.Book{
		Title:           "Nineteen Eighty-Four",
		ISBN:            isbn,
		TotalCopies:     copies,
		AvailableCopies: copies,
		AuthorID:        author.ID,
		CategoryID:      category.ID,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func createMember(t *testing.T, db *gorm.DB, email, phone string) *models.Member {
	t.Helper()
	now := time.Now()
	member := &models.Member{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          email,
		PhoneNumber:    phone,
		MembershipDate: &now,
		IsActive:       true,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}
