package services

import (
	"context"
	"errors"
	"time"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BorrowingService orchestrates lending: eligibility checks, loan
// creation, return processing and fine computation. All mutations run
// inside a unit-of-work transaction, and the decisive availability
// check is a guarded single-statement update on the book row, so two
// concurrent borrows can never both take the last copy.
type BorrowingService struct {
	uow *repositories.UnitOfWork
}

// NewBorrowingService creates a new borrowing service
func NewBorrowingService(uow *repositories.UnitOfWork) *BorrowingService {
	return &BorrowingService{uow: uow}
}

// CanBorrow checks whether the member may borrow the book right now.
// Rules are evaluated in order, short-circuiting at the first failure:
// member exists, membership valid, active loans below the limit, book
// exists with a free copy. The result is advisory only; Borrow
// re-verifies everything inside its transaction.
func (s *BorrowingService) CanBorrow(ctx context.Context, memberID, bookID uuid.UUID) (bool, error) {
	member, err := s.uow.Members().GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if !member.MembershipValid() {
		return false, nil
	}

	activeCount, err := s.uow.BorrowRecords().CountActiveByMember(ctx, memberID)
	if err != nil {
		return false, err
	}
	if activeCount >= domain.MaxActiveLoans {
		return false, nil
	}

	book, err := s.uow.Books().GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return book.CanBeBorrowed(), nil
}

// Borrow lends the book to the member and returns the new record.
// Eligibility is re-validated inside the transaction; each failed rule
// yields its specific domain error, never a generic one. Taking the
// copy is a conditional decrement on available_copies: when it affects
// no row the last copy was lost to a concurrent borrow and the whole
// transaction rolls back.
func (s *BorrowingService) Borrow(ctx context.Context, memberID, bookID uuid.UUID) (*models.BorrowRecord, error) {
	var record *models.BorrowRecord

	err := s.uow.Transaction(ctx, func(tx *repositories.UnitOfWork) error {
		member, err := tx.Members().GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("Member", memberID.String())
			}
			return err
		}

		if !member.MembershipValid() {
			return domain.NewMemberCannotBorrow("membership is not valid or expired")
		}

		activeCount, err := tx.BorrowRecords().CountActiveByMember(ctx, memberID)
		if err != nil {
			return err
		}
		if activeCount >= domain.MaxActiveLoans {
			return domain.NewBorrowLimitReached(int(activeCount), domain.MaxActiveLoans)
		}

		book, err := tx.Books().GetByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("Book", bookID.String())
			}
			return err
		}

		// The decrement is the availability check. A plain read here
		// would reopen the write-skew window the guard closes.
		taken, err := tx.Books().DecrementAvailable(ctx, bookID)
		if err != nil {
			return err
		}
		if !taken {
			return domain.NewBookNotAvailable(book.Title, "no available copies")
		}

		now := time.Now()
		record = &models.BorrowRecord{
			BookID:     bookID,
			MemberID:   memberID,
			BorrowDate: now,
			DueDate:    now.Add(domain.LoanPeriod),
			Status:     domain.StatusBorrowed,
			Notes:      "Book borrowed successfully",
		}
		return tx.BorrowRecords().Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Return processes the return of a borrowed copy. Returning an
// already-returned record fails with an invalid-operation error so a
// repeated call can never increment availability twice. The record
// update and the count increment commit atomically.
func (s *BorrowingService) Return(ctx context.Context, recordID uuid.UUID) error {
	return s.uow.Transaction(ctx, func(tx *repositories.UnitOfWork) error {
		record, err := tx.BorrowRecords().GetByID(ctx, recordID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("BorrowRecord", recordID.String())
			}
			return err
		}

		if record.Status == domain.StatusReturned {
			return domain.NewInvalidOperation("return", "book is already returned")
		}
		if !record.Status.CanTransitionTo(domain.StatusReturned) {
			return domain.NewInvalidOperation("return", "record is in terminal status "+string(record.Status))
		}

		now := time.Now()
		record.ReturnDate = &now
		record.Status = domain.StatusReturned
		record.Notes = "Book returned successfully"
		if err := tx.BorrowRecords().Update(ctx, record); err != nil {
			return err
		}

		// A soft-deleted book keeps no shelf count; the return itself
		// still succeeds for the record's sake.
		if _, err := tx.Books().GetByID(ctx, record.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		restored, err := tx.Books().IncrementAvailable(ctx, record.BookID)
		if err != nil {
			return err
		}
		if !restored {
			return domain.NewInvalidOperation("return", "available copies cannot exceed total copies")
		}
		return nil
	})
}

// CalculateFine computes the fine owed on the record: zero when the
// record is missing, already returned, or not yet due, otherwise full
// days overdue times the daily rate. One deliberate side effect is
// preserved from the legacy behavior: the first post-due computation
// moves the record to OVERDUE and persists the amount, via the
// explicitly named markOverdue step.
func (s *BorrowingService) CalculateFine(ctx context.Context, recordID uuid.UUID) (float64, error) {
	record, err := s.uow.BorrowRecords().GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if record.Status == domain.StatusReturned {
		return 0, nil
	}

	now := time.Now()
	if !now.After(record.DueDate) {
		return 0, nil
	}

	daysOverdue := int(now.Sub(record.DueDate).Hours() / 24)
	amount := float64(daysOverdue) * domain.DailyFineRate

	if record.Status != domain.StatusOverdue && record.Status.CanTransitionTo(domain.StatusOverdue) {
		if err := s.markOverdue(ctx, record, amount); err != nil {
			return 0, err
		}
	}

	return amount, nil
}

// markOverdue is the status mutation hiding behind fine computation.
// It is kept as its own step so the write is impossible to mistake for
// part of a pure query.
func (s *BorrowingService) markOverdue(ctx context.Context, record *models.BorrowRecord, amount float64) error {
	record.Status = domain.StatusOverdue
	record.FineAmount = &amount
	return s.uow.BorrowRecords().Update(ctx, record)
}

// SetStatus is the administrative escape hatch for marking a copy LOST
// or DAMAGED. The borrowing flow never produces these states itself;
// returns and overdue flips go through Return and CalculateFine.
func (s *BorrowingService) SetStatus(ctx context.Context, recordID uuid.UUID, status domain.BorrowStatus, notes string) error {
	if status != domain.StatusLost && status != domain.StatusDamaged {
		return domain.NewInvalidOperation("set status", "only LOST and DAMAGED can be set administratively")
	}

	record, err := s.uow.BorrowRecords().GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("BorrowRecord", recordID.String())
		}
		return err
	}

	if !record.Status.CanTransitionTo(status) {
		return domain.NewInvalidOperation("set status",
			"cannot transition from "+string(record.Status)+" to "+string(status))
	}

	record.Status = status
	if notes != "" {
		record.Notes = notes
	}
	return s.uow.BorrowRecords().Update(ctx, record)
}

// GetByID gets a borrow record
func (s *BorrowingService) GetByID(ctx context.Context, recordID uuid.UUID) (*models.BorrowRecord, error) {
	record, err := s.uow.BorrowRecords().GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("BorrowRecord", recordID.String())
		}
		return nil, err
	}
	return record, nil
}

// GetAll lists all borrow records
func (s *BorrowingService) GetAll(ctx context.Context) ([]*models.BorrowRecord, error) {
	return s.uow.BorrowRecords().GetAll(ctx)
}

// GetByMember lists a member's borrow records
func (s *BorrowingService) GetByMember(ctx context.Context, memberID uuid.UUID) ([]*models.BorrowRecord, error) {
	return s.uow.BorrowRecords().GetByMemberID(ctx, memberID)
}

// GetByBook lists a book's borrow records
func (s *BorrowingService) GetByBook(ctx context.Context, bookID uuid.UUID) ([]*models.BorrowRecord, error) {
	return s.uow.BorrowRecords().GetByBookID(ctx, bookID)
}

// GetActive lists records whose copies are still out
func (s *BorrowingService) GetActive(ctx context.Context) ([]*models.BorrowRecord, error) {
	return s.uow.BorrowRecords().GetActive(ctx)
}

// GetOverdue lists records past their due date and not returned
func (s *BorrowingService) GetOverdue(ctx context.Context) ([]*models.BorrowRecord, error) {
	return s.uow.BorrowRecords().GetOverdue(ctx)
}

// Delete soft deletes a borrow record (audit retention, no cascade)
func (s *BorrowingService) Delete(ctx context.Context, recordID uuid.UUID) error {
	return s.uow.BorrowRecords().Delete(ctx, recordID)
}
