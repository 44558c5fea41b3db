package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func seedBook(t *testing.T, db *gorm.DB, isbn string, copies int) *models.Book {
	t.Helper()
	author := &models.Author{FirstName: "Carl", LastName: "Sagan-" + isbn}
	require.NoError(t, db.Create(author).Error)
	category := &models.Category{Name: "Science-" + isbn}
	require.NoError(t, db.Create(category).Error)

	book := &models.Book{
		Title:           "Cosmos",
		ISBN:            isbn,
		TotalCopies:     copies,
		AvailableCopies: copies,
		AuthorID:        author.ID,
		CategoryID:      category.ID,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewAuthorRepository(db)

	author := &models.Author{FirstName: "George", LastName: "Orwell"}
	require.NoError(t, repo.Create(ctx, author))

	t.Run("deleted rows vanish from reads", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, author.ID))

		_, err := repo.GetByID(ctx, author.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("row survives underneath", func(t *testing.T) {
		var raw models.Author
		err := db.Unscoped().First(&raw, "id = ?", author.ID).Error
		require.NoError(t, err)
		assert.True(t, raw.DeletedAt.Valid)
	})

	t.Run("repeated delete is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, author.ID))
	})

	t.Run("deleting an unknown id is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, uuid.New()))
	})
}

func TestBookRepositoryGuards(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	book := seedBook(t, db, "978-0100", 1)

	t.Run("decrement takes the last copy exactly once", func(t *testing.T) {
		taken, err := repo.DecrementAvailable(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.DecrementAvailable(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, taken, "no copy left to take")
	})

	t.Run("increment stops at total copies", func(t *testing.T) {
		restored, err := repo.IncrementAvailable(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, restored)

		restored, err = repo.IncrementAvailable(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, restored, "shelf is already full")
	})

	t.Run("absolute write is guarded by total copies", func(t *testing.T) {
		written, err := repo.SetAvailableCopies(ctx, book.ID, 2)
		require.NoError(t, err)
		assert.False(t, written, "count above total must be rejected in the statement itself")

		written, err = repo.SetAvailableCopies(ctx, book.ID, 1)
		require.NoError(t, err)
		assert.True(t, written)

		written, err = repo.SetAvailableCopies(ctx, uuid.New(), 0)
		require.NoError(t, err)
		assert.False(t, written)
	})

	t.Run("isbn lookups", func(t *testing.T) {
		found, err := repo.GetByISBN(ctx, "978-0100")
		require.NoError(t, err)
		assert.Equal(t, book.ID, found.ID)

		exists, err := repo.ExistsByISBN(ctx, "978-0100")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByISBN(ctx, "978-none")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestCopyCountWritesTouchUpdatedAt(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	book := seedBook(t, db, "978-0150", 2)

	before, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	taken, err := repo.DecrementAvailable(ctx, book.ID)
	require.NoError(t, err)
	require.True(t, taken)

	after, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt),
		"copy count change must move the audit timestamp")

	before = after
	time.Sleep(10 * time.Millisecond)
	restored, err := repo.IncrementAvailable(ctx, book.ID)
	require.NoError(t, err)
	require.True(t, restored)

	after, err = repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestMemberRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewMemberRepository(db)

	member := &models.Member{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.org",
		PhoneNumber: "0800-0001",
		IsActive:    true,
	}
	require.NoError(t, repo.Create(ctx, member))

	found, err := repo.GetByEmail(ctx, "ada@example.org")
	require.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)

	exists, err := repo.ExistsByEmail(ctx, "ada@example.org")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByPhone(ctx, "0800-0001")
	require.NoError(t, err)
	assert.True(t, exists)

	// Soft-deleted members stop blocking uniqueness checks
	require.NoError(t, repo.Delete(ctx, member.ID))
	exists, err = repo.ExistsByEmail(ctx, "ada@example.org")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBorrowRecordQueries(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewBorrowRecordRepository(db)
	book := seedBook(t, db, "978-0200", 5)

	member := &models.Member{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.org",
		PhoneNumber: "0800-0001",
		IsActive:    true,
	}
	require.NoError(t, db.Create(member).Error)

	mkRecord := func(status domain.BorrowStatus, due time.Time) *models.BorrowRecord {
		record := &models.BorrowRecord{
			BookID:     book.ID,
			MemberID:   member.ID,
			BorrowDate: time.Now().Add(-7 * 24 * time.Hour),
			DueDate:    due,
			Status:     status,
		}
		require.NoError(t, repo.Create(ctx, record))
		return record
	}

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	lateBorrowed := mkRecord(domain.StatusBorrowed, past)
	mkRecord(domain.StatusBorrowed, future)
	mkRecord(domain.StatusReturned, past)

	t.Run("overdue finds only past-due open loans", func(t *testing.T) {
		overdue, err := repo.GetOverdue(ctx)
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.Equal(t, lateBorrowed.ID, overdue[0].ID)
	})

	t.Run("active counts exclude returned", func(t *testing.T) {
		count, err := repo.CountActiveByMember(ctx, member.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)

		count, err = repo.CountActiveByBook(ctx, book.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("member listing preloads the book", func(t *testing.T) {
		records, err := repo.GetByMemberID(ctx, member.ID)
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.NotNil(t, records[0].Book)
		assert.Equal(t, "Cosmos", records[0].Book.Title)
	})

	t.Run("full listing preloads book and member", func(t *testing.T) {
		records, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.NotNil(t, records[0].Book)
		require.NotNil(t, records[0].Member)
	})
}

func TestUnitOfWorkRollback(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	uow := NewUnitOfWork(db)
	book := seedBook(t, db, "978-0300", 2)

	boom := errors.New("boom")
	err := uow.Transaction(ctx, func(tx *UnitOfWork) error {
		taken, err := tx.Books().DecrementAvailable(ctx, book.ID)
		require.NoError(t, err)
		require.True(t, taken)
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The decrement rolled back with the transaction
	fresh, err := uow.Books().GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.AvailableCopies)
}
