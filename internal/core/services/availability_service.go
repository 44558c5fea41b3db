package services

import (
	"context"
	"errors"

	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityService owns the copy-count invariant: a book's
// available copies always stay within [0, total copies].
type AvailabilityService struct {
	books   repositories.BookRepository
	records repositories.BorrowRecordRepository
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(books repositories.BookRepository, records repositories.BorrowRecordRepository) *AvailabilityService {
	return &AvailabilityService{books: books, records: records}
}

// IsAvailable reports whether the book has a borrowable copy.
// A missing (or soft-deleted) book is simply not available.
func (s *AvailabilityService) IsAvailable(ctx context.Context, bookID uuid.UUID) (bool, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return book.CanBeBorrowed(), nil
}

// GetAvailableCopies returns the book's free copy count, 0 when missing
func (s *AvailabilityService) GetAvailableCopies(ctx context.Context, bookID uuid.UUID) (int, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return book.AvailableCopies, nil
}

// GetTotalCopies returns the book's total copy count, 0 when missing
func (s *AvailabilityService) GetTotalCopies(ctx context.Context, bookID uuid.UUID) (int, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return book.TotalCopies, nil
}

// GetBorrowedCopies counts the book's records currently in status
// BORROWED. Deliberately a real count, not total minus available, so a
// mismatch between the two surfaces count drift.
func (s *AvailabilityService) GetBorrowedCopies(ctx context.Context, bookID uuid.UUID) (int, error) {
	count, err := s.records.CountActiveByBook(ctx, bookID)
	return int(count), err
}

// SetAvailability writes an absolute available-copy count. The upper
// bound is enforced inside the guarded update itself, so a total-copies
// resize landing between the existence check and the write cannot slip
// an out-of-range count through.
func (s *AvailabilityService) SetAvailability(ctx context.Context, bookID uuid.UUID, newCount int) error {
	if newCount < 0 {
		return domain.NewInvalidOperation("set availability", "available copies cannot be negative")
	}

	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("Book", bookID.String())
		}
		return err
	}

	written, err := s.books.SetAvailableCopies(ctx, bookID, newCount)
	if err != nil {
		return err
	}
	if !written {
		return domain.NewInvalidOperation("set availability", "available copies cannot exceed total copies")
	}
	return nil
}
