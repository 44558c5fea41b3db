package repositories

import (
	"context"

	"libralend/internal/adapters/persistence/models"

	"github.com/google/uuid"
)

// AuthorRepository defines author data access
type AuthorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Author, error)
	GetAll(ctx context.Context) ([]*models.Author, error)
	List(ctx context.Context, offset, limit int) ([]*models.Author, int64, error)
	Create(ctx context.Context, author *models.Author) error
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, firstName, lastName string) (bool, error)
}

// CategoryRepository defines category data access
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetAll(ctx context.Context) ([]*models.Category, error)
	List(ctx context.Context, offset, limit int) ([]*models.Category, int64, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByName(ctx context.Context, name string) (*models.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// BookRepository defines book data access. DecrementAvailable and
// IncrementAvailable are guarded single-statement updates; they report
// whether a row was actually changed so callers can detect a lost race
// without a read-then-write.
type BookRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	GetAll(ctx context.Context) ([]*models.Book, error)
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	DecrementAvailable(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementAvailable(ctx context.Context, id uuid.UUID) (bool, error)
	SetAvailableCopies(ctx context.Context, id uuid.UUID, count int) (bool, error)
}

// MemberRepository defines member data access
type MemberRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	GetAll(ctx context.Context) ([]*models.Member, error)
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// BorrowRecordRepository defines borrow record data access
type BorrowRecordRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.BorrowRecord, error)
	GetAll(ctx context.Context) ([]*models.BorrowRecord, error)
	List(ctx context.Context, offset, limit int) ([]*models.BorrowRecord, int64, error)
	Create(ctx context.Context, record *models.BorrowRecord) error
	Update(ctx context.Context, record *models.BorrowRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByMemberID(ctx context.Context, memberID uuid.UUID) ([]*models.BorrowRecord, error)
	GetByBookID(ctx context.Context, bookID uuid.UUID) ([]*models.BorrowRecord, error)
	GetActive(ctx context.Context) ([]*models.BorrowRecord, error)
	GetOverdue(ctx context.Context) ([]*models.BorrowRecord, error)
	CountActiveByMember(ctx context.Context, memberID uuid.UUID) (int64, error)
	CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int64, error)
}
