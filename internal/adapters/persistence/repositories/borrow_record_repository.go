package repositories

import (
	"context"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// borrowRecordRepository implements BorrowRecordRepository
type borrowRecordRepository struct {
	repository[models.BorrowRecord]
}

// NewBorrowRecordRepository creates a new borrow record repository
func NewBorrowRecordRepository(db *gorm.DB) BorrowRecordRepository {
	return &borrowRecordRepository{repository[models.BorrowRecord]{db: db}}
}

// GetByID gets a record by ID with its book and member
func (r *borrowRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetAll lists all records, most recent borrow first
func (r *borrowRecordRepository) GetAll(ctx context.Context) ([]*models.BorrowRecord, error) {
	var records []*models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		Order("borrow_date DESC, id").
		Find(&records).Error
	return records, err
}

// GetByMemberID lists a member's records, most recent borrow first
func (r *borrowRecordRepository) GetByMemberID(ctx context.Context, memberID uuid.UUID) ([]*models.BorrowRecord, error) {
	var records []*models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("member_id = ?", memberID).
		Order("borrow_date DESC, id").
		Find(&records).Error
	return records, err
}

// GetByBookID lists a book's records, most recent borrow first
func (r *borrowRecordRepository) GetByBookID(ctx context.Context, bookID uuid.UUID) ([]*models.BorrowRecord, error) {
	var records []*models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("book_id = ?", bookID).
		Order("borrow_date DESC, id").
		Find(&records).Error
	return records, err
}

// GetActive lists records whose copy is still out (BORROWED or OVERDUE)
func (r *borrowRecordRepository) GetActive(ctx context.Context) ([]*models.BorrowRecord, error) {
	var records []*models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		Where("status IN ?", []domain.BorrowStatus{domain.StatusBorrowed, domain.StatusOverdue}).
		Order("borrow_date DESC, id").
		Find(&records).Error
	return records, err
}

// GetOverdue lists BORROWED records past their due date. Records already
// flipped to OVERDUE are included so repeat sweeps see them too.
func (r *borrowRecordRepository) GetOverdue(ctx context.Context) ([]*models.BorrowRecord, error) {
	var records []*models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		Where("status IN ? AND due_date < ?",
			[]domain.BorrowStatus{domain.StatusBorrowed, domain.StatusOverdue}, nowFunc()).
		Order("due_date, id").
		Find(&records).Error
	return records, err
}

// CountActiveByMember counts the member's records in status BORROWED.
// This is the loan-limit counter.
func (r *borrowRecordRepository) CountActiveByMember(ctx context.Context, memberID uuid.UUID) (int64, error) {
	return r.Count(ctx, "member_id = ? AND status = ?", memberID, domain.StatusBorrowed)
}

// CountActiveByBook counts the book's records in status BORROWED. Kept
// as a real count rather than total-available so drift between the two
// is detectable.
func (r *borrowRecordRepository) CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	return r.Count(ctx, "book_id = ? AND status = ?", bookID, domain.StatusBorrowed)
}
