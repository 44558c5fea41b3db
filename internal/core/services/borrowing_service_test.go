package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBorrow(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a record and takes a copy", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-0001", 3)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusBorrowed, record.Status)
		assert.Equal(t, book.ID, record.BookID)
		assert.Equal(t, member.ID, record.MemberID)
		assert.WithinDuration(t, record.BorrowDate.Add(domain.LoanPeriod), record.DueDate, time.Second)

		fresh, err := uow.Books().GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, fresh.AvailableCopies)
	})

	t.Run("unknown member", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-0002", 1)
		svc := NewBorrowingService(uow)

		_, err := svc.Borrow(ctx, newUUID(), book.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown book", func(t *testing.T) {
		uow, db := setupUOW(t)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		_, err := svc.Borrow(ctx, member.ID, newUUID())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("inactive member cannot borrow", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-0003", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		require.NoError(t, db.Model(member).Update("is_active", false).Error)
		svc := NewBorrowingService(uow)

		_, err := svc.Borrow(ctx, member.ID, book.ID)
		assert.ErrorIs(t, err, domain.ErrCannotBorrow)
	})

	t.Run("expired membership cannot borrow", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-0004", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		expired := time.Now().Add(-24 * time.Hour)
		require.NoError(t, db.Model(member).Update("expiration_date", expired).Error)
		svc := NewBorrowingService(uow)

		_, err := svc.Borrow(ctx, member.ID, book.ID)
		assert.ErrorIs(t, err, domain.ErrCannotBorrow)
	})

	t.Run("no available copies", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-0005", 1)
		require.NoError(t, db.Model(book).Update("available_copies", 0).Error)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		_, err := svc.Borrow(ctx, member.ID, book.ID)
		assert.ErrorIs(t, err, domain.ErrNotAvailable)

		// The failed borrow leaves no record behind
		records, err := uow.BorrowRecords().GetByMemberID(ctx, member.ID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestBorrowLoanLimit(t *testing.T) {
	ctx := context.Background()
	uow, db := setupUOW(t)
	member := createMember(t, db, "ada@example.org", "0800-0001")
	svc := NewBorrowingService(uow)

	for i := 0; i < domain.MaxActiveLoans; i++ {
		book := createBook(t, db, fmt.Sprintf("978-1%03d", i), 1)
		_, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)
	}

	book := createBook(t, db, "978-1999", 1)
	_, err := svc.Borrow(ctx, member.ID, book.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCannotBorrow)

	var limitErr *domain.MemberCannotBorrowError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, domain.MaxActiveLoans, limitErr.Current)
	assert.Equal(t, domain.MaxActiveLoans, limitErr.Max)
}

func TestConcurrentBorrow(t *testing.T) {
	const (
		copies    = 3
		borrowers = 10
	)

	ctx := context.Background()
	uow, db := setupUOW(t)
	book := createBook(t, db, "978-2000", copies)
	svc := NewBorrowingService(uow)

	members := make([]*models.Member, borrowers)
	for i := range members {
		members[i] = createMember(t, db,
			fmt.Sprintf("m%d@example.org", i), fmt.Sprintf("0800-2%03d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, borrowers)
	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Borrow(ctx, members[i].ID, book.ID)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, domain.ErrNotAvailable)
		}
	}
	assert.Equal(t, copies, won, "exactly one borrow per copy must win")

	fresh, err := uow.Books().GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.AvailableCopies)

	active, err := uow.BorrowRecords().CountActiveByBook(ctx, book.ID)
	require.NoError(t, err)
	assert.EqualValues(t, copies, active)
}

func TestReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip restores the copy", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-3000", 2)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Return(ctx, record.ID))

		fresh, err := uow.Books().GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, fresh.AvailableCopies)

		returned, err := svc.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusReturned, returned.Status)
		require.NotNil(t, returned.ReturnDate)
	})

	t.Run("double return increments only once", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-3001", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Return(ctx, record.ID))

		err = svc.Return(ctx, record.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)

		fresh, err := uow.Books().GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, fresh.AvailableCopies)
	})

	t.Run("unknown record", func(t *testing.T) {
		uow, _ := setupUOW(t)
		svc := NewBorrowingService(uow)

		err := svc.Return(ctx, newUUID())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("lost record cannot be returned", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-3002", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, svc.SetStatus(ctx, record.ID, domain.StatusLost, "reported lost"))

		err = svc.Return(ctx, record.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})

	t.Run("returning to a deleted book still closes the record", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-3003", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, uow.Books().Delete(ctx, book.ID))

		require.NoError(t, svc.Return(ctx, record.ID))

		returned, err := svc.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusReturned, returned.Status)
	})
}

func TestCalculateFine(t *testing.T) {
	ctx := context.Background()

	t.Run("ten days overdue", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-4000", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)
		backdate(t, db, record.ID, 10)

		amount, err := svc.CalculateFine(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, 10*domain.DailyFineRate, amount)

		// First post-due computation persists the fine and flips status
		fresh, err := svc.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOverdue, fresh.Status)
		require.NotNil(t, fresh.FineAmount)
		assert.Equal(t, amount, *fresh.FineAmount)
	})

	t.Run("not yet due", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-4001", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)

		amount, err := svc.CalculateFine(ctx, record.ID)
		require.NoError(t, err)
		assert.Zero(t, amount)

		fresh, err := svc.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusBorrowed, fresh.Status)
		assert.Nil(t, fresh.FineAmount)
	})

	t.Run("returned record owes nothing", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-4002", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Return(ctx, record.ID))
		backdate(t, db, record.ID, 10)

		amount, err := svc.CalculateFine(ctx, record.ID)
		require.NoError(t, err)
		assert.Zero(t, amount)
	})

	t.Run("missing record owes nothing", func(t *testing.T) {
		uow, _ := setupUOW(t)
		svc := NewBorrowingService(uow)

		amount, err := svc.CalculateFine(ctx, newUUID())
		require.NoError(t, err)
		assert.Zero(t, amount)
	})

	t.Run("lost record keeps its status", func(t *testing.T) {
		uow, db := setupUOW(t)
		book := createBook(t, db, "978-4003", 1)
		member := createMember(t, db, "ada@example.org", "0800-0001")
		svc := NewBorrowingService(uow)

		record, err := svc.Borrow(ctx, member.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, svc.SetStatus(ctx, record.ID, domain.StatusLost, ""))
		backdate(t, db, record.ID, 10)

		amount, err := svc.CalculateFine(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, 10*domain.DailyFineRate, amount)

		fresh, err := svc.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusLost, fresh.Status)
	})
}

func TestCanBorrow(t *testing.T) {
	ctx := context.Background()
	uow, db := setupUOW(t)
	book := createBook(t, db, "978-5000", 1)
	member := createMember(t, db, "ada@example.org", "0800-0001")
	svc := NewBorrowingService(uow)

	ok, err := svc.CanBorrow(ctx, member.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanBorrow(ctx, newUUID(), book.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanBorrow(ctx, member.ID, newUUID())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Model(book).Update("available_copies", 0).Error)
	ok, err = svc.CanBorrow(ctx, member.ID, book.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	uow, db := setupUOW(t)
	book := createBook(t, db, "978-6000", 1)
	member := createMember(t, db, "ada@example.org", "0800-0001")
	svc := NewBorrowingService(uow)

	record, err := svc.Borrow(ctx, member.ID, book.ID)
	require.NoError(t, err)

	t.Run("only loss states are administrative", func(t *testing.T) {
		err := svc.SetStatus(ctx, record.ID, domain.StatusReturned, "")
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})

	t.Run("marks a copy damaged", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(ctx, record.ID, domain.StatusDamaged, "water damage"))

		fresh, err := svc.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDamaged, fresh.Status)
		assert.Equal(t, "water damage", fresh.Notes)
	})

	t.Run("terminal records stay terminal", func(t *testing.T) {
		err := svc.SetStatus(ctx, record.ID, domain.StatusLost, "")
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})
}

// backdate moves a record's due date n days into the past
func backdate(t *testing.T, db *gorm.DB, recordID uuid.UUID, days int) {
	t.Helper()
	due := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	require.NoError(t, db.Model(&models.BorrowRecord{}).
		Where("id = ?", recordID).
		UpdateColumn("due_date", due).Error)
}
