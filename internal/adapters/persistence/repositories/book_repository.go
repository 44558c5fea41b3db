package repositories

import (
	"context"

	"libralend/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bookRepository implements BookRepository
type bookRepository struct {
	repository[models.Book]
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{repository[models.Book]{db: db}}
}

// GetByID gets a book by ID with its author and category
func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByISBN gets a book by its catalog identifier
func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		First(&book, "isbn = ?", isbn).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ExistsByISBN checks the ISBN uniqueness constraint
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	return r.Exists(ctx, "isbn = ?", isbn)
}

// DecrementAvailable takes one copy off the shelf as a single guarded
// update. The WHERE clause is the availability check: two concurrent
// borrows cannot both pass it, so the count never goes below zero.
// Returns false when no copy was available.
func (r *bookRepository) DecrementAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND available_copies > 0", id).
		Update("available_copies", gorm.Expr("available_copies - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementAvailable puts one copy back, guarded so the count never
// exceeds total_copies. Returns false when the guard rejected the
// update, which indicates count drift.
func (r *bookRepository) IncrementAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND available_copies < total_copies", id).
		Update("available_copies", gorm.Expr("available_copies + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetAvailableCopies writes an absolute count, guarded in the same
// statement so the count cannot exceed total_copies even when a resize
// lands concurrently. Returns false when the guard rejected the write
// or the book is gone. Negative counts are rejected by the caller.
func (r *bookRepository) SetAvailableCopies(ctx context.Context, id uuid.UUID, count int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND total_copies >= ?", id, count).
		Update("available_copies", count)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
