package repositories

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork exposes the five repositories over one database handle and
// coordinates transactions across them. Repositories obtained from a
// transactional UnitOfWork are bound to the same transaction, so a
// borrow or return writes its BorrowRecord and its Book count change
// atomically: both commit, or neither is visible.
type UnitOfWork struct {
	db *gorm.DB

	authors       AuthorRepository
	categories    CategoryRepository
	books         BookRepository
	members       MemberRepository
	borrowRecords BorrowRecordRepository
}

// NewUnitOfWork creates a unit of work over the given database handle
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:            db,
		authors:       NewAuthorRepository(db),
		categories:    NewCategoryRepository(db),
		books:         NewBookRepository(db),
		members:       NewMemberRepository(db),
		borrowRecords: NewBorrowRecordRepository(db),
	}
}

// Authors returns the author repository
func (u *UnitOfWork) Authors() AuthorRepository { return u.authors }

// Categories returns the category repository
func (u *UnitOfWork) Categories() CategoryRepository { return u.categories }

// Books returns the book repository
func (u *UnitOfWork) Books() BookRepository { return u.books }

// Members returns the member repository
func (u *UnitOfWork) Members() MemberRepository { return u.members }

// BorrowRecords returns the borrow record repository
func (u *UnitOfWork) BorrowRecords() BorrowRecordRepository { return u.borrowRecords }

// Transaction runs fn inside a database transaction. fn receives a
// UnitOfWork whose repositories are bound to that transaction. If fn
// returns an error the transaction is rolled back and no partial state
// is visible to subsequent reads; otherwise it is committed. Audit
// timestamps are assigned by the ORM as each write is flushed.
func (u *UnitOfWork) Transaction(ctx context.Context, fn func(tx *UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}

// Begin starts an explicit transaction and returns a UnitOfWork bound
// to it. The caller must finish with Commit or Rollback.
func (u *UnitOfWork) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return NewUnitOfWork(tx), nil
}

// Commit commits an explicit transaction started with Begin
func (u *UnitOfWork) Commit() error {
	return u.db.Commit().Error
}

// Rollback rolls back an explicit transaction started with Begin
func (u *UnitOfWork) Rollback() error {
	return u.db.Rollback().Error
}
